package steps

import (
	"context"

	"github.com/zen-systems/dealbook/pkg/firecrawl"
	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// ScrapeVendorHomepage fetches the vendor homepage in markdown and HTML.
// Emits vendor_domain, vendor_homepage_markdown, vendor_homepage_html,
// vendor_homepage_metadata.
func (d *Deps) ScrapeVendorHomepage() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		upstream, err := store.RequireFromGroup(GroupValidation, StageValidateVendor, "vendor_domain")
		if err != nil {
			return pipeline.Failure(err.Error())
		}
		domain, _ := upstream["vendor_domain"].(string)

		d.logf("scraping vendor homepage: %s", domain)
		page, err := d.Scraper.ScrapePage(ctx, domain, firecrawl.FormatMarkdown, firecrawl.FormatHTML)
		if err != nil {
			return pipeline.Failf("failed to scrape vendor homepage: %v", err)
		}
		d.logf("scraped vendor homepage (%d chars)", len(page.Markdown))

		return pipeline.Success(map[string]any{
			"vendor_domain":            domain,
			"vendor_homepage_markdown": page.Markdown,
			"vendor_homepage_html":     page.HTML,
			"vendor_homepage_metadata": page.Metadata,
		})
	}
}

// ScrapeProspectHomepage fetches the prospect homepage in markdown and
// HTML. Emits prospect_domain, prospect_homepage_markdown,
// prospect_homepage_html, prospect_homepage_metadata.
func (d *Deps) ScrapeProspectHomepage() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		upstream, err := store.RequireFromGroup(GroupValidation, StageValidateProspect, "prospect_domain")
		if err != nil {
			return pipeline.Failure(err.Error())
		}
		domain, _ := upstream["prospect_domain"].(string)

		d.logf("scraping prospect homepage: %s", domain)
		page, err := d.Scraper.ScrapePage(ctx, domain, firecrawl.FormatMarkdown, firecrawl.FormatHTML)
		if err != nil {
			return pipeline.Failf("failed to scrape prospect homepage: %v", err)
		}
		d.logf("scraped prospect homepage (%d chars)", len(page.Markdown))

		return pipeline.Success(map[string]any{
			"prospect_domain":            domain,
			"prospect_homepage_markdown": page.Markdown,
			"prospect_homepage_html":     page.HTML,
			"prospect_homepage_metadata": page.Metadata,
		})
	}
}
