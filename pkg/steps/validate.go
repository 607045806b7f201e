package steps

import (
	"context"

	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// ValidateVendorDomain checks the vendor domain format and maps its
// discoverable URLs. Emits vendor_domain, vendor_urls, vendor_total_urls.
func (d *Deps) ValidateVendorDomain() pipeline.StageFunc[Params] {
	return func(ctx context.Context, p Params, _ *pipeline.Store) pipeline.StageResult {
		if err := validateDomain(p.VendorDomain, "vendor_domain"); err != nil {
			return pipeline.Failure(err.Error())
		}

		d.logf("mapping vendor domain: %s", p.VendorDomain)
		result, err := d.Scraper.MapSite(ctx, p.VendorDomain)
		if err != nil {
			return pipeline.Failf("failed to map vendor domain: %v", err)
		}
		d.logf("found %d URLs for vendor", result.TotalURLs)

		return pipeline.Success(map[string]any{
			"vendor_domain":     p.VendorDomain,
			"vendor_urls":       result.URLs,
			"vendor_total_urls": result.TotalURLs,
		})
	}
}

// ValidateProspectDomain checks the prospect domain format and maps its
// discoverable URLs. Emits prospect_domain, prospect_urls,
// prospect_total_urls.
func (d *Deps) ValidateProspectDomain() pipeline.StageFunc[Params] {
	return func(ctx context.Context, p Params, _ *pipeline.Store) pipeline.StageResult {
		if err := validateDomain(p.ProspectDomain, "prospect_domain"); err != nil {
			return pipeline.Failure(err.Error())
		}

		d.logf("mapping prospect domain: %s", p.ProspectDomain)
		result, err := d.Scraper.MapSite(ctx, p.ProspectDomain)
		if err != nil {
			return pipeline.Failf("failed to map prospect domain: %v", err)
		}
		d.logf("found %d URLs for prospect", result.TotalURLs)

		return pipeline.Success(map[string]any{
			"prospect_domain":     p.ProspectDomain,
			"prospect_urls":       result.URLs,
			"prospect_total_urls": result.TotalURLs,
		})
	}
}
