package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/zen-systems/dealbook/pkg/agent"
	"github.com/zen-systems/dealbook/pkg/intel"
	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// PrioritizeURLs selects the most valuable pages from both companies'
// mapped URL lists. Emits vendor_selected_urls, prospect_selected_urls,
// vendor_url_details, prospect_url_details.
func (d *Deps) PrioritizeURLs() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		vendorData, err := store.RequireFromGroup(GroupValidation, StageValidateVendor, "vendor_urls")
		if err != nil {
			return pipeline.Failure(err.Error())
		}
		prospectData, err := store.RequireFromGroup(GroupValidation, StageValidateProspect, "prospect_urls")
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		vendorURLs := stringSlice(vendorData, "vendor_urls")
		prospectURLs := stringSlice(prospectData, "prospect_urls")
		if len(vendorURLs) == 0 || len(prospectURLs) == 0 {
			return pipeline.Failure("no URLs found from domain validation")
		}

		d.logf("prioritizing %d vendor URLs and %d prospect URLs", len(vendorURLs), len(prospectURLs))

		// Cap the listings to keep the prompt inside token limits.
		prompt := fmt.Sprintf(`VENDOR URLs (%d total):
%s

PROSPECT URLs (%d total):
%s

Select the top 10-15 most valuable URLs from each company for sales intelligence gathering.`,
			len(vendorURLs), strings.Join(capList(vendorURLs, d.MaxURLsForPrioritization), "\n"),
			len(prospectURLs), strings.Join(capList(prospectURLs, d.MaxURLsForPrioritization), "\n"))

		result, err := agent.RunTyped[intel.URLPrioritization](ctx, d.LLM, intel.URLPrioritizer(d.Models), prompt)
		if err != nil {
			return pipeline.Failf("URL prioritization failed: %v", err)
		}

		vendorDetails := capDetails(result.VendorSelectedURLs, d.MaxURLsToScrape)
		prospectDetails := capDetails(result.ProspectSelectedURLs, d.MaxURLsToScrape)
		d.logf("selected %d vendor URLs and %d prospect URLs", len(vendorDetails), len(prospectDetails))

		return pipeline.Success(map[string]any{
			"vendor_selected_urls":   urlsOf(vendorDetails),
			"prospect_selected_urls": urlsOf(prospectDetails),
			"vendor_url_details":     vendorDetails,
			"prospect_url_details":   prospectDetails,
		})
	}
}

func capList(urls []string, limit int) []string {
	if limit > 0 && len(urls) > limit {
		return urls[:limit]
	}
	return urls
}

func capDetails(details []intel.PrioritizedURL, limit int) []intel.PrioritizedURL {
	if limit > 0 && len(details) > limit {
		return details[:limit]
	}
	return details
}

func urlsOf(details []intel.PrioritizedURL) []string {
	urls := make([]string, 0, len(details))
	for _, detail := range details {
		urls = append(urls, detail.URL)
	}
	return urls
}
