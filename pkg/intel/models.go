// Package intel defines the structured records the extraction and
// synthesis agents produce, and the agent configurations themselves.
package intel

// PrioritizedURL is one page selected for scraping.
type PrioritizedURL struct {
	URL       string `json:"url"`
	PageType  string `json:"page_type"`
	Priority  int    `json:"priority"`
	Reasoning string `json:"reasoning"`
}

// URLPrioritization holds the selected pages for both companies.
type URLPrioritization struct {
	VendorSelectedURLs   []PrioritizedURL `json:"vendor_selected_urls"`
	ProspectSelectedURLs []PrioritizedURL `json:"prospect_selected_urls"`
}

// Offering is a vendor product or service.
type Offering struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	KeyFeatures []string `json:"key_features"`
	Sources     []string `json:"sources"`
}

// CaseStudy is a vendor customer success story.
type CaseStudy struct {
	CustomerName string   `json:"customer_name"`
	Industry     string   `json:"industry"`
	Challenge    string   `json:"challenge"`
	Solution     string   `json:"solution"`
	Results      []string `json:"results"`
	Sources      []string `json:"sources"`
}

// ValueProposition is one vendor value claim.
type ValueProposition struct {
	Statement          string   `json:"statement"`
	TargetAudience     string   `json:"target_audience"`
	SupportingEvidence string   `json:"supporting_evidence"`
	Sources            []string `json:"sources"`
}

// UseCase describes how vendor customers apply the product.
type UseCase struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TargetPersona string   `json:"target_persona"`
	Outcomes      []string `json:"outcomes"`
	Sources       []string `json:"sources"`
}

// TargetPersona is a buyer role in the vendor's ideal customer profile.
type TargetPersona struct {
	Title            string   `json:"title"`
	Department       string   `json:"department"`
	Responsibilities []string `json:"responsibilities"`
	PainPoints       []string `json:"pain_points"`
	Sources          []string `json:"sources"`
}

// Differentiator is a vendor claim of competitive advantage.
type Differentiator struct {
	Claim    string   `json:"claim"`
	Evidence string   `json:"evidence"`
	Sources  []string `json:"sources"`
}

// ProofPoint is a quantified vendor result or credential.
type ProofPoint struct {
	Statement string `json:"statement"`
	Metric    string `json:"metric"`
	Source    string `json:"source"`
}

// ReferenceCustomer is a named vendor customer.
type ReferenceCustomer struct {
	Name     string   `json:"name"`
	Industry string   `json:"industry"`
	Sources  []string `json:"sources"`
}

// CompanyProfile summarizes the prospect company.
type CompanyProfile struct {
	CompanyName  string   `json:"company_name"`
	Industry     string   `json:"industry"`
	Description  string   `json:"description"`
	CompanySize  string   `json:"company_size"`
	Products     []string `json:"products"`
	TargetMarket string   `json:"target_market"`
	RecentNews   []string `json:"recent_news"`
}

// PainPoint is a problem inferred from the prospect's content.
type PainPoint struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Evidence    string `json:"evidence"`
	Source      string `json:"source"`
}

// BuyerPersona is a target buyer role at the prospect company.
type BuyerPersona struct {
	PersonaTitle  string   `json:"persona_title"`
	Department    string   `json:"department"`
	WhyTheyCare   string   `json:"why_they_care"`
	PainPoints    []string `json:"pain_points"`
	Goals         []string `json:"goals"`
	TalkingPoints []string `json:"talking_points"`
	PriorityScore int      `json:"priority_score"`
}

// Email is one touch of an outreach sequence.
type Email struct {
	Day     int    `json:"day"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	CTA     string `json:"cta"`
}

// EmailSequence is a multi-touch outreach cadence for one persona.
type EmailSequence struct {
	PersonaTitle string  `json:"persona_title"`
	Emails       []Email `json:"emails"`
}

// TalkTrack is a set of call scripts for one persona.
type TalkTrack struct {
	PersonaTitle       string   `json:"persona_title"`
	ElevatorPitch      string   `json:"elevator_pitch"`
	ColdCallScript     string   `json:"cold_call_script"`
	DiscoveryQuestions []string `json:"discovery_questions"`
	DemoPoints         []string `json:"demo_points"`
	ValueMapping       []string `json:"value_mapping"`
}

// ObjectionResponse handles one sales objection with an
// acknowledge/reframe/proof structure.
type ObjectionResponse struct {
	Objection   string `json:"objection"`
	Category    string `json:"category"`
	Acknowledge string `json:"acknowledge"`
	Reframe     string `json:"reframe"`
	Proof       string `json:"proof"`
	TalkTrack   string `json:"talk_track"`
}

// BattleCard is one competitive sales reference card.
type BattleCard struct {
	Title           string              `json:"title"`
	CardType        string              `json:"card_type"`
	Differentiators []string            `json:"differentiators"`
	ProofPoints     []string            `json:"proof_points"`
	Objections      []ObjectionResponse `json:"objections"`
	WhenToEngage    string              `json:"when_to_engage"`
	WhenNotToEngage string              `json:"when_not_to_engage"`
	TrapQuestions   []string            `json:"trap_questions"`
}

// PlaybookSummary is the strategic synthesis produced before the
// individual playbook components are generated.
type PlaybookSummary struct {
	ExecutiveSummary string   `json:"executive_summary"`
	PriorityPersonas []string `json:"priority_personas"`
	QuickWins        []string `json:"quick_wins"`
	SuccessMetrics   []string `json:"success_metrics"`
}

// Per-agent result envelopes. Each is the declared output shape of
// exactly one agent.

type OfferingsResult struct {
	Offerings []Offering `json:"offerings"`
}

type CaseStudiesResult struct {
	CaseStudies []CaseStudy `json:"case_studies"`
}

type ValuePropositionsResult struct {
	ValuePropositions []ValueProposition `json:"value_propositions"`
}

type UseCasesResult struct {
	UseCases []UseCase `json:"use_cases"`
}

type TargetPersonasResult struct {
	TargetPersonas []TargetPersona `json:"target_personas"`
}

type DifferentiatorsResult struct {
	Differentiators []Differentiator `json:"differentiators"`
}

type ProofPointsResult struct {
	ProofPoints []ProofPoint `json:"proof_points"`
}

type ReferenceCustomersResult struct {
	ReferenceCustomers []ReferenceCustomer `json:"reference_customers"`
}

type CompanyProfileResult struct {
	CompanyProfile CompanyProfile `json:"company_profile"`
}

type PainPointsResult struct {
	PainPoints []PainPoint `json:"pain_points"`
}

type BuyerPersonasResult struct {
	TargetBuyerPersonas []BuyerPersona `json:"target_buyer_personas"`
}

type EmailSequencesResult struct {
	EmailSequences []EmailSequence `json:"email_sequences"`
}

type TalkTracksResult struct {
	TalkTracks []TalkTrack `json:"talk_tracks"`
}

type BattleCardsResult struct {
	BattleCards []BattleCard `json:"battle_cards"`
}
