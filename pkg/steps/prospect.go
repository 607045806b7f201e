package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zen-systems/dealbook/pkg/agent"
	"github.com/zen-systems/dealbook/pkg/intel"
	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// vendorIntelligence packages the vendor extraction group's outputs for
// the synthesis prompts.
type vendorIntelligence struct {
	Offerings          []intel.Offering          `json:"offerings"`
	CaseStudies        []intel.CaseStudy         `json:"case_studies"`
	ValuePropositions  []intel.ValueProposition  `json:"value_propositions"`
	UseCases           []intel.UseCase           `json:"use_cases"`
	TargetPersonas     []intel.TargetPersona     `json:"target_personas"`
	Differentiators    []intel.Differentiator    `json:"differentiators"`
	ProofPoints        []intel.ProofPoint        `json:"proof_points"`
	ReferenceCustomers []intel.ReferenceCustomer `json:"reference_customers"`
}

// prospectIntelligence packages the prospect analysis outputs.
type prospectIntelligence struct {
	CompanyProfile      intel.CompanyProfile `json:"company_profile"`
	PainPoints          []intel.PainPoint    `json:"pain_points"`
	TargetBuyerPersonas []intel.BuyerPersona `json:"target_buyer_personas"`
}

// collectVendorIntel reads whatever the vendor extraction group
// produced. Individual absent elements degrade to empty lists.
func collectVendorIntel(store *pipeline.Store) vendorIntelligence {
	vi := vendorIntelligence{}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractOfferings); ok {
		vi.Offerings, _ = c["offerings"].([]intel.Offering)
	}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractCaseStudies); ok {
		vi.CaseStudies, _ = c["case_studies"].([]intel.CaseStudy)
	}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractValueProps); ok {
		vi.ValuePropositions, _ = c["value_propositions"].([]intel.ValueProposition)
	}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractUseCases); ok {
		vi.UseCases, _ = c["use_cases"].([]intel.UseCase)
	}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractPersonas); ok {
		vi.TargetPersonas, _ = c["target_personas"].([]intel.TargetPersona)
	}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractDifferentiators); ok {
		vi.Differentiators, _ = c["differentiators"].([]intel.Differentiator)
	}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractProofPoints); ok {
		vi.ProofPoints, _ = c["proof_points"].([]intel.ProofPoint)
	}
	if c, ok := store.GetFromGroup(GroupVendorExtraction, StageExtractCustomers); ok {
		vi.ReferenceCustomers, _ = c["reference_customers"].([]intel.ReferenceCustomer)
	}
	return vi
}

// AnalyzeCompanyProfile extracts the prospect's company profile from
// their scraped pages. Zero usable pages degrade to an empty profile
// rather than a halt, so later stages can still run on vendor
// intelligence alone. Emits company_profile.
func (d *Deps) AnalyzeCompanyProfile() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		upstream, err := store.Require(StageBatchScrape, "prospect_content")
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		pages := pageText(upstream, "prospect_content")
		if len(pages) == 0 {
			d.logf("no prospect content, emitting empty company profile")
			return pipeline.Success(map[string]any{"company_profile": intel.CompanyProfile{}})
		}

		d.logf("analyzing company profile from %d prospect pages", len(pages))
		result, err := agent.RunTyped[intel.CompanyProfileResult](ctx, d.LLM, intel.CompanyAnalyst(d.Models),
			"Extract the company profile from this content:\n\n"+joinPages(pages))
		if err != nil {
			return pipeline.Failf("company profile analysis failed: %v", err)
		}
		d.logf("company profile extracted: %s", result.CompanyProfile.CompanyName)

		return pipeline.Success(map[string]any{"company_profile": result.CompanyProfile})
	}
}

// AnalyzePainPoints infers prospect pain points from their content.
// Zero pages or zero inferences is a valid empty result, not an error.
// Emits pain_points.
func (d *Deps) AnalyzePainPoints() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		upstream, err := store.Require(StageBatchScrape, "prospect_content")
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		pages := pageText(upstream, "prospect_content")
		if len(pages) == 0 {
			d.logf("no prospect content, emitting empty pain point list")
			return pipeline.Success(map[string]any{"pain_points": []intel.PainPoint{}})
		}

		d.logf("inferring pain points from %d prospect pages", len(pages))
		result, err := agent.RunTyped[intel.PainPointsResult](ctx, d.LLM, intel.PainPointAnalyst(d.Models),
			"Infer pain points from this company's content:\n\n"+joinPages(pages))
		if err != nil {
			return pipeline.Failf("pain point analysis failed: %v", err)
		}
		d.logf("identified %d pain points", len(result.PainPoints))

		if result.PainPoints == nil {
			result.PainPoints = []intel.PainPoint{}
		}
		return pipeline.Success(map[string]any{"pain_points": result.PainPoints})
	}
}

// IdentifyBuyerPersonas crosses vendor and prospect intelligence to
// name the buyer roles at the prospect worth targeting. Emits
// target_buyer_personas.
func (d *Deps) IdentifyBuyerPersonas() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		if _, err := store.RequireFromGroup(GroupVendorExtraction, StageExtractValueProps, "value_propositions"); err != nil {
			return pipeline.Failure(err.Error())
		}
		companyData, err := store.RequireFromGroup(GroupProspectContext, StageAnalyzeCompany, "company_profile")
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		vi := collectVendorIntel(store)

		pi := prospectIntelligence{PainPoints: []intel.PainPoint{}}
		pi.CompanyProfile, _ = companyData["company_profile"].(intel.CompanyProfile)
		if painData, ok := store.GetFromGroup(GroupProspectContext, StageAnalyzePainPoints); ok {
			if points, ok := painData["pain_points"].([]intel.PainPoint); ok {
				pi.PainPoints = points
			}
		}

		vendorJSON, _ := json.MarshalIndent(vi, "", "  ")
		prospectJSON, _ := json.MarshalIndent(pi, "", "  ")

		d.logf("identifying buyer personas (%d pain points in context)", len(pi.PainPoints))
		prompt := fmt.Sprintf(`VENDOR INTELLIGENCE:
%s

PROSPECT INTELLIGENCE:
%s

Identify the 3-5 key buyer personas at the prospect company the vendor should target.`,
			vendorJSON, prospectJSON)

		result, err := agent.RunTyped[intel.BuyerPersonasResult](ctx, d.LLM, intel.BuyerPersonaAnalyst(d.Models), prompt)
		if err != nil {
			return pipeline.Failf("buyer persona identification failed: %v", err)
		}
		d.logf("identified %d target buyer personas", len(result.TargetBuyerPersonas))

		return pipeline.Success(map[string]any{"target_buyer_personas": result.TargetBuyerPersonas})
	}
}
