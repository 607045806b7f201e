package steps

import (
	"context"

	"github.com/zen-systems/dealbook/pkg/firecrawl"
	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// BatchScrapeSelectedPages scrapes the prioritized pages of both
// companies. Individual page failures are tolerated and reported in the
// stats; only a failed batch job halts. Emits vendor_content,
// prospect_content, stats.
func (d *Deps) BatchScrapeSelectedPages() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		upstream, err := store.Require(StagePrioritizeURLs, "vendor_selected_urls", "prospect_selected_urls")
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		vendorURLs := stringSlice(upstream, "vendor_selected_urls")
		prospectURLs := stringSlice(upstream, "prospect_selected_urls")

		d.logf("batch scraping %d vendor pages", len(vendorURLs))
		vendorBatch, err := d.Scraper.BatchScrape(ctx, vendorURLs, firecrawl.FormatMarkdown)
		if err != nil {
			return pipeline.Failf("vendor batch scrape failed: %v", err)
		}

		d.logf("batch scraping %d prospect pages", len(prospectURLs))
		prospectBatch, err := d.Scraper.BatchScrape(ctx, prospectURLs, firecrawl.FormatMarkdown)
		if err != nil {
			return pipeline.Failf("prospect batch scrape failed: %v", err)
		}

		vendorContent := markdownByURL(vendorBatch)
		prospectContent := markdownByURL(prospectBatch)
		d.logf("scraped %d/%d vendor pages, %d/%d prospect pages",
			len(vendorContent), len(vendorURLs), len(prospectContent), len(prospectURLs))

		return pipeline.Success(map[string]any{
			"vendor_content":   vendorContent,
			"prospect_content": prospectContent,
			"stats": map[string]int{
				"vendor_pages":    len(vendorContent),
				"prospect_pages":  len(prospectContent),
				"vendor_chars":    totalChars(vendorContent),
				"prospect_chars":  totalChars(prospectContent),
				"vendor_failed":   len(vendorBatch.Failures),
				"prospect_failed": len(prospectBatch.Failures),
			},
		})
	}
}

func markdownByURL(batch *firecrawl.BatchResult) map[string]string {
	content := make(map[string]string, len(batch.Pages))
	for url, page := range batch.Pages {
		if page.Markdown == "" {
			continue
		}
		content[url] = page.Markdown
	}
	return content
}
