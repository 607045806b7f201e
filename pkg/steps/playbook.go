package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zen-systems/dealbook/pkg/agent"
	"github.com/zen-systems/dealbook/pkg/intel"
	"github.com/zen-systems/dealbook/pkg/pipeline"
	"github.com/zen-systems/dealbook/pkg/playbook"
)

// Email and talk track generation cover the top priority personas only.
const maxPlaybookPersonas = 3

// GeneratePlaybookSummary synthesizes all gathered intelligence into
// the playbook's executive summary and strategic framing. Emits
// executive_summary, priority_personas, quick_wins, success_metrics,
// vendor_intelligence, prospect_intelligence.
func (d *Deps) GeneratePlaybookSummary() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		if _, err := store.RequireFromGroup(GroupVendorExtraction, StageExtractOfferings, "offerings"); err != nil {
			return pipeline.Failure(err.Error())
		}
		personasData, err := store.Require(StageIdentifyBuyerPersonas, "target_buyer_personas")
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		vi := collectVendorIntel(store)
		pi := prospectIntelligence{PainPoints: []intel.PainPoint{}}
		pi.TargetBuyerPersonas, _ = personasData["target_buyer_personas"].([]intel.BuyerPersona)
		if companyData, ok := store.GetFromGroup(GroupProspectContext, StageAnalyzeCompany); ok {
			pi.CompanyProfile, _ = companyData["company_profile"].(intel.CompanyProfile)
		}
		if painData, ok := store.GetFromGroup(GroupProspectContext, StageAnalyzePainPoints); ok {
			if points, ok := painData["pain_points"].([]intel.PainPoint); ok {
				pi.PainPoints = points
			}
		}

		vendorName := "the vendor"
		if len(vi.Offerings) > 0 && vi.Offerings[0].Name != "" {
			vendorName = vi.Offerings[0].Name
		}
		prospectName := pi.CompanyProfile.CompanyName
		if prospectName == "" {
			prospectName = "the prospect company"
		}

		vendorJSON, _ := json.MarshalIndent(vi, "", "  ")
		prospectJSON, _ := json.MarshalIndent(pi, "", "  ")

		d.logf("generating playbook executive summary for %s -> %s", vendorName, prospectName)
		prompt := fmt.Sprintf(`VENDOR INTELLIGENCE:
%s

PROSPECT INTELLIGENCE:
%s

This playbook will help sales reps at %s engage with %s.`,
			vendorJSON, prospectJSON, vendorName, prospectName)

		summary, err := agent.RunTyped[intel.PlaybookSummary](ctx, d.LLM, intel.PlaybookOrchestrator(d.Models), prompt)
		if err != nil {
			return pipeline.Failf("playbook summary generation failed: %v", err)
		}
		d.logf("playbook summary generated (%d priority personas)", len(summary.PriorityPersonas))

		return pipeline.Success(map[string]any{
			"executive_summary":     summary.ExecutiveSummary,
			"priority_personas":     summary.PriorityPersonas,
			"quick_wins":            summary.QuickWins,
			"success_metrics":       summary.SuccessMetrics,
			"vendor_intelligence":   vi,
			"prospect_intelligence": pi,
		})
	}
}

// GenerateEmailSequences writes a 4-touch email sequence for each of
// the top priority personas. Emits email_sequences.
func (d *Deps) GenerateEmailSequences() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		summary, vi, pi, err := requireSummary(store)
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		priority := topPersonas(summary, pi, maxPlaybookPersonas)
		if len(priority) == 0 {
			return pipeline.Failure("no priority personas in playbook summary")
		}

		vendorJSON, _ := json.MarshalIndent(vi, "", "  ")
		painJSON, _ := json.MarshalIndent(pi.PainPoints, "", "  ")

		sequences := []intel.EmailSequence{}
		for _, persona := range priority {
			d.logf("generating email sequence for %s", persona.PersonaTitle)
			personaJSON, _ := json.MarshalIndent(persona, "", "  ")
			prompt := fmt.Sprintf(`TARGET PERSONA:
%s

VENDOR INTELLIGENCE:
%s

PROSPECT CONTEXT:
Company: %s
Industry: %s
Pain Points: %s

Create a 4-touch email sequence over 14 days for this persona (days 1, 3, 7, 14).`,
				personaJSON, vendorJSON, pi.CompanyProfile.CompanyName, pi.CompanyProfile.Industry, painJSON)

			result, err := agent.RunTyped[intel.EmailSequencesResult](ctx, d.LLM, intel.EmailSequenceWriter(d.Models), prompt)
			if err != nil {
				return pipeline.Failf("email sequence generation failed for %s: %v", persona.PersonaTitle, err)
			}
			sequences = append(sequences, result.EmailSequences...)
		}
		d.logf("generated %d email sequences", len(sequences))

		return pipeline.Success(map[string]any{"email_sequences": sequences})
	}
}

// GenerateTalkTracks writes call scripts for each of the top priority
// personas. Emits talk_tracks.
func (d *Deps) GenerateTalkTracks() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		summary, vi, pi, err := requireSummary(store)
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		priority := topPersonas(summary, pi, maxPlaybookPersonas)
		if len(priority) == 0 {
			return pipeline.Failure("no priority personas in playbook summary")
		}

		vendorJSON, _ := json.MarshalIndent(vi, "", "  ")
		prospectJSON, _ := json.MarshalIndent(pi, "", "  ")

		tracks := []intel.TalkTrack{}
		for _, persona := range priority {
			d.logf("generating talk tracks for %s", persona.PersonaTitle)
			personaJSON, _ := json.MarshalIndent(persona, "", "  ")
			prompt := fmt.Sprintf(`TARGET PERSONA:
%s

VENDOR INTELLIGENCE:
%s

PROSPECT CONTEXT:
%s

Create comprehensive talk tracks for this persona.`,
				personaJSON, vendorJSON, prospectJSON)

			result, err := agent.RunTyped[intel.TalkTracksResult](ctx, d.LLM, intel.TalkTrackCreator(d.Models), prompt)
			if err != nil {
				return pipeline.Failf("talk track generation failed for %s: %v", persona.PersonaTitle, err)
			}
			tracks = append(tracks, result.TalkTracks...)
		}
		d.logf("generated %d talk tracks", len(tracks))

		return pipeline.Success(map[string]any{"talk_tracks": tracks})
	}
}

// GenerateBattleCards creates the competitive battle cards. An empty
// card list is a valid result. Emits battle_cards.
func (d *Deps) GenerateBattleCards() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		_, vi, pi, err := requireSummary(store)
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		vendorJSON, _ := json.MarshalIndent(vi, "", "  ")
		prospectJSON, _ := json.MarshalIndent(pi, "", "  ")

		d.logf("generating battle cards")
		prompt := fmt.Sprintf(`VENDOR INTELLIGENCE:
%s

PROSPECT INTELLIGENCE:
%s

Create battle cards for the sales team.`, vendorJSON, prospectJSON)

		result, err := agent.RunTyped[intel.BattleCardsResult](ctx, d.LLM, intel.BattleCardBuilder(d.Models), prompt)
		if err != nil {
			return pipeline.Failf("battle card generation failed: %v", err)
		}
		d.logf("generated %d battle cards", len(result.BattleCards))

		if result.BattleCards == nil {
			result.BattleCards = []intel.BattleCard{}
		}
		return pipeline.Success(map[string]any{"battle_cards": result.BattleCards})
	}
}

// AssembleFinalPlaybook merges the summary and the component group's
// outputs into the final deliverable. The summary is required; empty
// component lists are tolerated. Emits sales_playbook.
func (d *Deps) AssembleFinalPlaybook() pipeline.StageFunc[Params] {
	return func(ctx context.Context, _ Params, store *pipeline.Store) pipeline.StageResult {
		summary, vi, pi, err := requireSummary(store)
		if err != nil {
			return pipeline.Failure(err.Error())
		}

		doc := playbook.Document{
			VendorName:       "Vendor",
			ProspectName:     "Prospect",
			ExecutiveSummary: stringOf(summary, "executive_summary"),
			PriorityPersonas: stringSlice(summary, "priority_personas"),
			QuickWins:        stringSlice(summary, "quick_wins"),
			SuccessMetrics:   stringSlice(summary, "success_metrics"),
			EmailSequences:   []intel.EmailSequence{},
			TalkTracks:       []intel.TalkTrack{},
			BattleCards:      []intel.BattleCard{},
		}
		if len(vi.Offerings) > 0 && vi.Offerings[0].Name != "" {
			doc.VendorName = vi.Offerings[0].Name
		}
		if pi.CompanyProfile.CompanyName != "" {
			doc.ProspectName = pi.CompanyProfile.CompanyName
		}

		if c, ok := store.GetFromGroup(GroupPlaybookComponents, StageEmailSequences); ok {
			if sequences, ok := c["email_sequences"].([]intel.EmailSequence); ok {
				doc.EmailSequences = sequences
			}
		}
		if c, ok := store.GetFromGroup(GroupPlaybookComponents, StageTalkTracks); ok {
			if tracks, ok := c["talk_tracks"].([]intel.TalkTrack); ok {
				doc.TalkTracks = tracks
			}
		}
		if c, ok := store.GetFromGroup(GroupPlaybookComponents, StageBattleCards); ok {
			if cards, ok := c["battle_cards"].([]intel.BattleCard); ok {
				doc.BattleCards = cards
			}
		}

		final := playbook.New(doc)
		d.logf("playbook assembled: %s -> %s (%d sequences, %d talk tracks, %d battle cards)",
			final.VendorName, final.ProspectName,
			len(final.EmailSequences), len(final.TalkTracks), len(final.BattleCards))

		return pipeline.Success(map[string]any{"sales_playbook": final})
	}
}

// requireSummary is the shared dependency gate of the playbook
// component stages.
func requireSummary(store *pipeline.Store) (map[string]any, vendorIntelligence, prospectIntelligence, error) {
	summary, err := store.Require(StagePlaybookSummary,
		"executive_summary", "priority_personas", "vendor_intelligence", "prospect_intelligence")
	if err != nil {
		return nil, vendorIntelligence{}, prospectIntelligence{}, err
	}
	vi, _ := summary["vendor_intelligence"].(vendorIntelligence)
	pi, _ := summary["prospect_intelligence"].(prospectIntelligence)
	return summary, vi, pi, nil
}

// topPersonas resolves the summary's priority persona titles back to
// their full persona records, keeping the summary's order.
func topPersonas(summary map[string]any, pi prospectIntelligence, limit int) []intel.BuyerPersona {
	titles := stringSlice(summary, "priority_personas")
	if len(titles) > limit {
		titles = titles[:limit]
	}

	var personas []intel.BuyerPersona
	for _, title := range titles {
		for _, persona := range pi.TargetBuyerPersonas {
			if persona.PersonaTitle == title {
				personas = append(personas, persona)
				break
			}
		}
	}
	return personas
}

func stringOf(content map[string]any, key string) string {
	v, _ := content[key].(string)
	return v
}
