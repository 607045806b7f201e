// Package steps implements the pipeline stages: domain validation,
// scraping, LLM extraction, and playbook synthesis. Every stage follows
// the same contract: validate inputs, validate upstream dependencies
// through the result store, do the work, and return a halting error
// result on any failure.
package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zen-systems/dealbook/pkg/agent"
	"github.com/zen-systems/dealbook/pkg/firecrawl"
	"github.com/zen-systems/dealbook/pkg/intel"
)

// Params is the pipeline's original input: the two domains under
// investigation.
type Params struct {
	VendorDomain   string
	ProspectDomain string
}

// Deps carries the collaborators stages need. Constructed once by the
// caller and injected; stages hold no global state.
type Deps struct {
	Scraper *firecrawl.Client
	LLM     *agent.Runtime
	Models  intel.ModelConfig

	MaxURLsToScrape          int
	MaxURLsForPrioritization int

	// Logf receives progress lines. Nil disables progress output.
	Logf func(format string, args ...any)
}

func (d *Deps) logf(format string, args ...any) {
	if d.Logf != nil {
		d.Logf(format, args...)
	}
}

// Stage and group names. Downstream stages address upstream results by
// these names, so they are part of each stage's contract.
const (
	StageValidateVendor   = "validate_vendor"
	StageValidateProspect = "validate_prospect"
	GroupValidation       = "parallel_validation"

	StageScrapeVendorHome   = "scrape_vendor_home"
	StageScrapeProspectHome = "scrape_prospect_home"
	GroupHomepageScraping   = "parallel_homepage_scraping"

	StageAnalyzeVendorHome   = "analyze_vendor_home"
	StageAnalyzeProspectHome = "analyze_prospect_home"
	GroupHomepageAnalysis    = "parallel_homepage_analysis"

	StagePrioritizeURLs = "prioritize_urls"
	StageBatchScrape    = "batch_scrape"

	GroupVendorExtraction        = "vendor_element_extraction"
	StageExtractOfferings        = "extract_offerings"
	StageExtractCaseStudies      = "extract_case_studies"
	StageExtractValueProps       = "extract_value_props"
	StageExtractUseCases         = "extract_use_cases"
	StageExtractPersonas         = "extract_personas"
	StageExtractDifferentiators  = "extract_differentiators"
	StageExtractProofPoints      = "extract_proof_points"
	StageExtractCustomers        = "extract_customers"

	GroupProspectContext       = "prospect_context_analysis"
	StageAnalyzeCompany        = "analyze_company"
	StageAnalyzePainPoints     = "analyze_pain_points"
	StageIdentifyBuyerPersonas = "identify_buyer_personas"

	StagePlaybookSummary    = "generate_playbook_summary"
	GroupPlaybookComponents = "playbook_component_generation"
	StageEmailSequences     = "generate_email_sequences"
	StageTalkTracks         = "generate_talk_tracks"
	StageBattleCards        = "generate_battle_cards"
	StageAssemblePlaybook   = "assemble_final_playbook"
)

// validateDomain checks a top-level domain parameter: present and
// carrying a URI scheme.
func validateDomain(domain, name string) error {
	if domain == "" {
		return fmt.Errorf("no %s provided", name)
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		return fmt.Errorf("%s must start with http:// or https://", name)
	}
	return nil
}

// stringSlice reads a []string value out of stage content, tolerating
// absence.
func stringSlice(content map[string]any, key string) []string {
	v, _ := content[key].([]string)
	return v
}

// pageText reads a url -> markdown map out of stage content.
func pageText(content map[string]any, key string) map[string]string {
	v, _ := content[key].(map[string]string)
	return v
}

// joinPages renders scraped pages as one document, URL-labelled, in
// deterministic order.
func joinPages(pages map[string]string) string {
	urls := make([]string, 0, len(pages))
	for url := range pages {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	sections := make([]string, 0, len(urls))
	for _, url := range urls {
		sections = append(sections, fmt.Sprintf("URL: %s\n\n%s", url, pages[url]))
	}
	return strings.Join(sections, "\n\n---\n\n")
}

// totalChars sums page content lengths for run statistics.
func totalChars(pages map[string]string) int {
	total := 0
	for _, text := range pages {
		total += len(text)
	}
	return total
}
