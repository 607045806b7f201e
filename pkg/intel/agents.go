package intel

import "github.com/zen-systems/dealbook/pkg/agent"

// ModelConfig selects which model each class of agent runs on. Complex
// synthesis uses Default, URL filtering uses Fast, and the vendor
// element extractors use Extraction.
type ModelConfig struct {
	Default    string
	Fast       string
	Extraction string
}

const jsonOnly = "\n\nRespond with a single JSON object only. No prose, no markdown outside the JSON."

// HomepageAnalyst analyzes a homepage for company basics, offerings,
// trust signals, and calls to action. Free-form output.
func HomepageAnalyst(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Homepage Analyst",
		Model: m.Default,
		Instructions: `You are a B2B company analyst specializing in homepage analysis.

Analyze the homepage content and extract:
1. COMPANY BASICS: company name, tagline, primary value proposition, industry.
2. OFFERINGS: main products or services, key features, target audience indicators.
3. TRUST SIGNALS: customer logos, testimonials, statistics, notable achievements.
4. CALL TO ACTION: primary CTA and the personas it implies.

Return a structured analysis of what this company does and who they serve.
Keep it concise but comprehensive.`,
	}
}

// URLPrioritizer selects the most valuable pages from vendor and
// prospect URL lists for sales intelligence gathering.
func URLPrioritizer(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Strategic URL Selector",
		Model: m.Fast,
		Instructions: `You are a content strategist selecting the most valuable pages for B2B sales intelligence.

Given lists of URLs from vendor and prospect websites, select the TOP 10-15 most valuable pages for each.

PRIORITIZE: /about, /company, /team, /products, /solutions, /platform, /features,
/customers, /case-studies, /success-stories, /pricing, /blog, /industries, /use-cases.
AVOID: legal pages, careers, support docs, login/signup, press pages.

For each selected URL provide page_type, priority (1 highest to 10 lowest), and reasoning.` +
			jsonOnly + `
Shape: {"vendor_selected_urls": [{"url","page_type","priority","reasoning"}], "prospect_selected_urls": [...]}`,
	}
}

// OfferingExtractor pulls the vendor's products and services out of
// scraped site content.
func OfferingExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Offering Extractor",
		Model: m.Extraction,
		Instructions: `Extract ALL products and services the vendor sells from the content below.
For each offering: name, description, category, key_features, sources (URLs where found).` +
			jsonOnly + `
Shape: {"offerings": [{"name","description","category","key_features":[],"sources":[]}]}`,
	}
}

// CaseStudyExtractor pulls customer success stories.
func CaseStudyExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Case Study Extractor",
		Model: m.Extraction,
		Instructions: `Extract ALL customer case studies and success stories from the vendor content below.
For each: customer_name, industry, challenge, solution, results (quantified where possible), sources.` +
			jsonOnly + `
Shape: {"case_studies": [{"customer_name","industry","challenge","solution","results":[],"sources":[]}]}`,
	}
}

// ValuePropExtractor pulls the vendor's value claims.
func ValuePropExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Value Proposition Extractor",
		Model: m.Extraction,
		Instructions: `Extract ALL value propositions the vendor makes in the content below.
For each: statement, target_audience, supporting_evidence, sources.` +
			jsonOnly + `
Shape: {"value_propositions": [{"statement","target_audience","supporting_evidence","sources":[]}]}`,
	}
}

// UseCaseExtractor pulls documented product use cases.
func UseCaseExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Use Case Extractor",
		Model: m.Extraction,
		Instructions: `Extract ALL use cases described in the vendor content below: how customers apply the product.
For each: title, description, target_persona, outcomes, sources.` +
			jsonOnly + `
Shape: {"use_cases": [{"title","description","target_persona","outcomes":[],"sources":[]}]}`,
	}
}

// PersonaExtractor identifies the vendor's ideal-customer-profile
// personas: the buyer roles the vendor typically sells to, not specific
// people at any prospect.
func PersonaExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Vendor ICP Persona Extractor",
		Model: m.Extraction,
		Instructions: `You are an expert at identifying a vendor's ideal customer profile personas.

IMPORTANT: extract the types of buyers the VENDOR typically sells to — their target
market profile, NOT personas at a particular prospect company.

Look for persona-specific landing pages, "For [Role]" sections, testimonial titles,
use cases by role, and department-specific messaging. Extract both explicit and
implied personas.

For each: title, department, responsibilities, pain_points, sources.` +
			jsonOnly + `
Shape: {"target_personas": [{"title","department","responsibilities":[],"pain_points":[],"sources":[]}]}`,
	}
}

// DifferentiatorExtractor pulls competitive differentiation claims.
func DifferentiatorExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Differentiator Extractor",
		Model: m.Extraction,
		Instructions: `Extract ALL competitive differentiators the vendor claims in the content below.
For each: claim, evidence, sources.` +
			jsonOnly + `
Shape: {"differentiators": [{"claim","evidence","sources":[]}]}`,
	}
}

// ProofPointExtractor pulls quantified results and credentials.
func ProofPointExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Proof Point Extractor",
		Model: m.Extraction,
		Instructions: `Extract ALL proof points from the vendor content below: statistics, customer results,
awards, certifications, quantified claims. For each: statement, metric, source.` +
			jsonOnly + `
Shape: {"proof_points": [{"statement","metric","source"}]}`,
	}
}

// CustomerExtractor pulls named reference customers.
func CustomerExtractor(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Reference Customer Extractor",
		Model: m.Extraction,
		Instructions: `Extract ALL named customers of the vendor from the content below: logo walls,
testimonials, case studies. For each: name, industry, sources.` +
			jsonOnly + `
Shape: {"reference_customers": [{"name","industry","sources":[]}]}`,
	}
}

// CompanyAnalyst builds a minimal profile of the prospect company.
func CompanyAnalyst(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Prospect Company Analyst",
		Model: m.Default,
		Instructions: `Build a company profile of the prospect from their website content below:
company_name, industry, description, company_size (estimate), products, target_market,
recent_news (if any appears in the content).` +
			jsonOnly + `
Shape: {"company_profile": {"company_name","industry","description","company_size","products":[],"target_market","recent_news":[]}}`,
	}
}

// PainPointAnalyst infers problems the prospect likely has from their
// own published content.
func PainPointAnalyst(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Pain Point Analyst",
		Model: m.Default,
		Instructions: `Infer the pain points this company likely experiences, based on what they say about
themselves: growth signals, hiring focus, product gaps, market pressures.
For each pain point: description, category (operational/growth/technical/market),
severity (high/medium/low), evidence (quote or paraphrase), source URL.
If the content supports no inferences, return an empty list.` +
			jsonOnly + `
Shape: {"pain_points": [{"description","category","severity","evidence","source"}]}`,
	}
}

// BuyerPersonaAnalyst identifies the buyer roles at the prospect that
// the vendor should target, by crossing vendor and prospect intelligence.
func BuyerPersonaAnalyst(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Buyer Persona Analyst",
		Model: m.Default,
		Instructions: `Based on what the vendor offers and what the prospect company does and needs,
identify the 3-5 KEY BUYER PERSONAS at the prospect company for sales outreach.

For each persona: persona_title (specific job title), department, why_they_care,
pain_points (grounded in the prospect's business), goals, talking_points (connect
vendor value props to their needs), priority_score (1-10).
Rank by priority, highest first. Make this actionable for sales reps.` +
			jsonOnly + `
Shape: {"target_buyer_personas": [{"persona_title","department","why_they_care","pain_points":[],"goals":[],"talking_points":[],"priority_score"}]}`,
	}
}

// PlaybookOrchestrator synthesizes all intelligence into the playbook's
// executive summary and strategic framing.
func PlaybookOrchestrator(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Playbook Orchestrator",
		Model: m.Default,
		Instructions: `Create the strategic executive summary for a sales playbook from the vendor and
prospect intelligence below. Provide:
1. executive_summary: 2-3 paragraphs.
2. priority_personas: ordered list of persona titles, highest priority first.
3. quick_wins: top 5 immediate actions for the sales team.
4. success_metrics: metrics to track the engagement.` +
			jsonOnly + `
Shape: {"executive_summary","priority_personas":[],"quick_wins":[],"success_metrics":[]}`,
	}
}

// EmailSequenceWriter writes a 4-touch outreach cadence for one persona.
func EmailSequenceWriter(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Email Sequence Specialist",
		Model: m.Default,
		Instructions: `You write account-based B2B outreach emails from the vendor's sales reps to a
specific persona at the prospect company.

Create a 4-touch sequence over 14 days:
- Day 1: pain point punch. Subject 6-8 words about THEIR pain. Body 25-50 words.
- Day 3: value bomb. Insight, one-sentence solution, social proof, lead magnet offer.
- Day 7: low-friction follow-up. Three sentences, zero-friction CTA.
- Day 14: respectful breakup. Leave the door open.

Personalize with the persona's pain points and the prospect's business context.` +
			jsonOnly + `
Shape: {"email_sequences": [{"persona_title","emails":[{"day","subject","body","cta"}]}]}`,
	}
}

// TalkTrackCreator writes call scripts for one persona.
func TalkTrackCreator(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Talk Track Specialist",
		Model: m.Default,
		Instructions: `Create comprehensive talk tracks for the persona below:
- elevator_pitch: 30 seconds.
- cold_call_script: opener, hook, qualifying question, close.
- discovery_questions: 5-8 questions tied to the persona's pain points.
- demo_points: what to show and why it matters to this persona.
- value_mapping: vendor capability -> persona pain point connections.` +
			jsonOnly + `
Shape: {"talk_tracks": [{"persona_title","elevator_pitch","cold_call_script","discovery_questions":[],"demo_points":[],"value_mapping":[]}]}`,
	}
}

// BattleCardBuilder creates competitive battle cards.
func BattleCardBuilder(m ModelConfig) agent.Agent {
	return agent.Agent{
		Name:  "Battle Card Specialist",
		Model: m.Default,
		Instructions: `Create sales battle cards from the vendor and prospect intelligence below, using the
Fact -> Impact -> Act framework:
1. "Why We Win": top differentiators connected to prospect pain points, with proof points.
2. "Objection Handling": 7-10 objections across price/timing/authority/need/competitor,
   each with acknowledge, reframe, proof, and an exact talk_track.
3. "Competitive Positioning": when to engage, when not to engage, trap questions.
   Position against manual processes or in-house solutions if no competitor intel exists.
Be specific, quantify where possible, keep it usable in real time.` +
			jsonOnly + `
Shape: {"battle_cards": [{"title","card_type","differentiators":[],"proof_points":[],"objections":[{"objection","category","acknowledge","reframe","proof","talk_track"}],"when_to_engage","when_not_to_engage","trap_questions":[]}]}`,
	}
}
