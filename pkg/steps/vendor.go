package steps

import (
	"context"

	"github.com/zen-systems/dealbook/pkg/agent"
	"github.com/zen-systems/dealbook/pkg/intel"
	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// The vendor element extractors all share one shape: feed the scraped
// vendor pages to an extraction agent and emit its declared result
// under one key. They are data-independent and run as one concurrent
// group.

// ExtractOfferings emits offerings.
func (d *Deps) ExtractOfferings() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.OfferingExtractor(d.Models), "offerings",
		func(r intel.OfferingsResult) any { return r.Offerings })
}

// ExtractCaseStudies emits case_studies.
func (d *Deps) ExtractCaseStudies() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.CaseStudyExtractor(d.Models), "case_studies",
		func(r intel.CaseStudiesResult) any { return r.CaseStudies })
}

// ExtractValueProps emits value_propositions.
func (d *Deps) ExtractValueProps() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.ValuePropExtractor(d.Models), "value_propositions",
		func(r intel.ValuePropositionsResult) any { return r.ValuePropositions })
}

// ExtractUseCases emits use_cases.
func (d *Deps) ExtractUseCases() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.UseCaseExtractor(d.Models), "use_cases",
		func(r intel.UseCasesResult) any { return r.UseCases })
}

// ExtractPersonas emits target_personas.
func (d *Deps) ExtractPersonas() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.PersonaExtractor(d.Models), "target_personas",
		func(r intel.TargetPersonasResult) any { return r.TargetPersonas })
}

// ExtractDifferentiators emits differentiators.
func (d *Deps) ExtractDifferentiators() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.DifferentiatorExtractor(d.Models), "differentiators",
		func(r intel.DifferentiatorsResult) any { return r.Differentiators })
}

// ExtractProofPoints emits proof_points.
func (d *Deps) ExtractProofPoints() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.ProofPointExtractor(d.Models), "proof_points",
		func(r intel.ProofPointsResult) any { return r.ProofPoints })
}

// ExtractCustomers emits reference_customers.
func (d *Deps) ExtractCustomers() pipeline.StageFunc[Params] {
	return extractVendorElements(d, intel.CustomerExtractor(d.Models), "reference_customers",
		func(r intel.ReferenceCustomersResult) any { return r.ReferenceCustomers })
}

func extractVendorElements[T any](d *Deps, ag agent.Agent, key string, items func(T) any) pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		upstream, err := store.Require(StageBatchScrape, "vendor_content")
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		pages := pageText(upstream, "vendor_content")
		if len(pages) == 0 {
			// No vendor pages scraped: nothing to extract, not an error.
			var empty T
			return pipeline.Success(map[string]any{key: items(empty)})
		}

		d.logf("%s: extracting from %d vendor pages", ag.Name, len(pages))
		result, err := agent.RunTyped[T](ctx, d.LLM, ag, "VENDOR CONTENT:\n\n"+joinPages(pages))
		if err != nil {
			return pipeline.Failf("%s failed: %v", ag.Name, err)
		}

		return pipeline.Success(map[string]any{key: items(result)})
	}
}
