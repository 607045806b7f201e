// Package workflow assembles the pipeline configurations. All four are
// prefixes of the same stage list and share the same driver semantics.
package workflow

import (
	"fmt"

	"github.com/zen-systems/dealbook/pkg/pipeline"
	"github.com/zen-systems/dealbook/pkg/steps"
)

// Phase selects how far the pipeline runs.
type Phase int

const (
	// PhaseIntelligence validates domains, scrapes homepages,
	// prioritizes URLs, and batch scrapes content.
	PhaseIntelligence Phase = 1
	// PhaseVendorExtraction adds the vendor element extractors.
	PhaseVendorExtraction Phase = 2
	// PhaseProspectAnalysis adds prospect context analysis and buyer
	// persona identification.
	PhaseProspectAnalysis Phase = 3
	// PhasePlaybook adds playbook generation and assembly.
	PhasePlaybook Phase = 4
)

// Build returns the pipeline configuration for a phase.
func Build(phase Phase, deps *steps.Deps) (*pipeline.Pipeline[steps.Params], error) {
	if phase < PhaseIntelligence || phase > PhasePlaybook {
		return nil, fmt.Errorf("unknown phase %d (want 1-4)", phase)
	}

	all := []pipeline.Step[steps.Params]{
		// Phase 1: intelligence gathering.
		pipeline.NewGroup(steps.GroupValidation,
			pipeline.NewStage(steps.StageValidateVendor, deps.ValidateVendorDomain()),
			pipeline.NewStage(steps.StageValidateProspect, deps.ValidateProspectDomain()),
		),
		pipeline.NewGroup(steps.GroupHomepageScraping,
			pipeline.NewStage(steps.StageScrapeVendorHome, deps.ScrapeVendorHomepage()),
			pipeline.NewStage(steps.StageScrapeProspectHome, deps.ScrapeProspectHomepage()),
		),
		pipeline.NewGroup(steps.GroupHomepageAnalysis,
			pipeline.NewStage(steps.StageAnalyzeVendorHome, deps.AnalyzeVendorHomepage()),
			pipeline.NewStage(steps.StageAnalyzeProspectHome, deps.AnalyzeProspectHomepage()),
		),
		pipeline.NewStage(steps.StagePrioritizeURLs, deps.PrioritizeURLs()),
		pipeline.NewStage(steps.StageBatchScrape, deps.BatchScrapeSelectedPages()),

		// Phase 2: vendor element extraction.
		pipeline.NewGroup(steps.GroupVendorExtraction,
			pipeline.NewStage(steps.StageExtractOfferings, deps.ExtractOfferings()),
			pipeline.NewStage(steps.StageExtractCaseStudies, deps.ExtractCaseStudies()),
			pipeline.NewStage(steps.StageExtractValueProps, deps.ExtractValueProps()),
			pipeline.NewStage(steps.StageExtractUseCases, deps.ExtractUseCases()),
			pipeline.NewStage(steps.StageExtractPersonas, deps.ExtractPersonas()),
			pipeline.NewStage(steps.StageExtractDifferentiators, deps.ExtractDifferentiators()),
			pipeline.NewStage(steps.StageExtractProofPoints, deps.ExtractProofPoints()),
			pipeline.NewStage(steps.StageExtractCustomers, deps.ExtractCustomers()),
		),

		// Phase 3: prospect analysis.
		pipeline.NewGroup(steps.GroupProspectContext,
			pipeline.NewStage(steps.StageAnalyzeCompany, deps.AnalyzeCompanyProfile()),
			pipeline.NewStage(steps.StageAnalyzePainPoints, deps.AnalyzePainPoints()),
		),
		pipeline.NewStage(steps.StageIdentifyBuyerPersonas, deps.IdentifyBuyerPersonas()),

		// Phase 4: playbook generation.
		pipeline.NewStage(steps.StagePlaybookSummary, deps.GeneratePlaybookSummary()),
		pipeline.NewGroup(steps.GroupPlaybookComponents,
			pipeline.NewStage(steps.StageEmailSequences, deps.GenerateEmailSequences()),
			pipeline.NewStage(steps.StageTalkTracks, deps.GenerateTalkTracks()),
			pipeline.NewStage(steps.StageBattleCards, deps.GenerateBattleCards()),
		),
		pipeline.NewStage(steps.StageAssemblePlaybook, deps.AssembleFinalPlaybook()),
	}

	cut := map[Phase]int{
		PhaseIntelligence:     5,
		PhaseVendorExtraction: 6,
		PhaseProspectAnalysis: 8,
		PhasePlaybook:         len(all),
	}[phase]

	p := pipeline.New(phaseName(phase), all[:cut]...)
	p.Description = phaseDescription(phase)
	return p, nil
}

// OutputPrefix names the output file for a phase's run.
func OutputPrefix(phase Phase) string {
	if phase == PhasePlaybook {
		return "sales_playbook"
	}
	return fmt.Sprintf("phase%d_output", phase)
}

func phaseName(phase Phase) string {
	switch phase {
	case PhaseIntelligence:
		return "intelligence-gathering"
	case PhaseVendorExtraction:
		return "vendor-extraction"
	case PhaseProspectAnalysis:
		return "prospect-analysis"
	default:
		return "playbook-generation"
	}
}

func phaseDescription(phase Phase) string {
	switch phase {
	case PhaseIntelligence:
		return "Validate domains, scrape homepages, prioritize URLs, and batch scrape content"
	case PhaseVendorExtraction:
		return "Intelligence gathering plus vendor element extraction"
	case PhaseProspectAnalysis:
		return "Vendor extraction plus prospect context analysis and buyer personas"
	default:
		return "Full run ending in an assembled sales playbook"
	}
}
