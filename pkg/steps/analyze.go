package steps

import (
	"context"

	"github.com/zen-systems/dealbook/pkg/intel"
	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// Homepages shorter than this carry too little signal to analyze.
const minHomepageChars = 100

// AnalyzeVendorHomepage runs the homepage analyst over the vendor
// homepage. Emits vendor_homepage_analysis.
func (d *Deps) AnalyzeVendorHomepage() pipeline.StageFunc[Params] {
	return d.analyzeHomepage(
		GroupHomepageScraping, StageScrapeVendorHome,
		"vendor_homepage_markdown", "vendor_homepage_analysis", "vendor")
}

// AnalyzeProspectHomepage runs the homepage analyst over the prospect
// homepage. Emits prospect_homepage_analysis.
func (d *Deps) AnalyzeProspectHomepage() pipeline.StageFunc[Params] {
	return d.analyzeHomepage(
		GroupHomepageScraping, StageScrapeProspectHome,
		"prospect_homepage_markdown", "prospect_homepage_analysis", "prospect")
}

func (d *Deps) analyzeHomepage(group, member, markdownKey, outputKey, label string) pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		upstream, err := store.RequireFromGroup(group, member, markdownKey)
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		markdown, _ := upstream[markdownKey].(string)
		if len(markdown) < minHomepageChars {
			return pipeline.Failf("%s homepage content is too short or empty", label)
		}

		d.logf("analyzing %s homepage", label)
		analysis, err := d.LLM.Run(ctx, intel.HomepageAnalyst(d.Models), "Analyze this homepage:\n\n"+markdown)
		if err != nil {
			return pipeline.Failf("%s homepage analysis failed: %v", label, err)
		}
		d.logf("%s homepage analyzed", label)

		return pipeline.Success(map[string]any{outputKey: analysis})
	}
}
