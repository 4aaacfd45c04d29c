package types

// ApplyRecommendation is the model's verdict on a posting.
type ApplyRecommendation string

// Recommendation values the analysis contract allows.
const (
	RecommendApply      ApplyRecommendation = "apply"
	RecommendMaybe      ApplyRecommendation = "maybe_apply"
	RecommendDoNotApply ApplyRecommendation = "do_not_apply"
)

// Valid reports whether r is one of the allowed recommendation values.
func (r ApplyRecommendation) Valid() bool {
	switch r {
	case RecommendApply, RecommendMaybe, RecommendDoNotApply:
		return true
	}
	return false
}

// JobInput is the request payload assembled for a job analysis: the active
// profile, the account-wide context and the verbatim pasted posting.
type JobInput struct {
	RawText           string          `json:"raw_text"`
	ActiveProfile     *Profile        `json:"active_profile,omitempty"`
	PreviousProposals string          `json:"previous_proposals,omitempty"`
	PortfolioLinks    []PortfolioLink `json:"portfolio_links,omitempty"`
	PreferredTone     ProposalTone    `json:"preferred_tone,omitempty"`
}

// RedFlag is a warning sign the model found in a posting.
type RedFlag struct {
	Title       string `json:"title"`
	Severity    string `json:"severity"` // low, medium, high
	Explanation string `json:"explanation"`
}

// GreenFlag is a positive signal the model found in a posting.
type GreenFlag struct {
	Title       string `json:"title"`
	Importance  string `json:"importance"` // low, medium, high
	Explanation string `json:"explanation"`
}

// Proposal is the drafted application attached to an analysis.
type Proposal struct {
	CoverLetter           string   `json:"cover_letter"`
	ProposedBudget        *float64 `json:"proposed_budget,omitempty"`
	ProposedRateText      string   `json:"proposed_rate_text,omitempty"`
	SuggestedFirstMessage string   `json:"suggested_first_message,omitempty"`
}

// FlagCounts summarizes how many red and green flags were raised.
type FlagCounts struct {
	Red   int `json:"red"`
	Green int `json:"green"`
}

// RiskFactor is one scored risk dimension. Scores are producer-determined on
// an implied 0-100 scale.
type RiskFactor struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
	Notes  string  `json:"notes"`
}

// SkillMatch scores one of the freelancer's skills against the posting.
type SkillMatch struct {
	Skill      string  `json:"skill"`
	MatchScore float64 `json:"match_score"`
	Status     string  `json:"status"` // expert, proficient, missing
}

// ClientMetrics are the model's estimates of the client's behavior, 0-100.
type ClientMetrics struct {
	Responsiveness float64 `json:"responsiveness"`
	Generosity     float64 `json:"generosity"`
	Clarity        float64 `json:"clarity"`
}

// Analytics groups the numeric scores of an analysis.
type Analytics struct {
	FlagCounts    FlagCounts    `json:"flag_counts"`
	RiskFactors   []RiskFactor  `json:"risk_factors"`
	SkillMatch    []SkillMatch  `json:"skill_match"`
	ClientMetrics ClientMetrics `json:"client_metrics"`
}

// MissingInfo describes a gap in the posting and how it affects the verdict.
type MissingInfo struct {
	MissingField    string `json:"missing_field"`
	ImpactIfMissing string `json:"impact_if_missing"`
	HowToResolve    string `json:"how_to_resolve"`
}

// AnalysisResult is the structured payload returned by the analysis
// operation. The application treats it as opaque beyond the declared shape:
// it is validated against the response schema once, stored immutably on the
// lead, and rendered as-is.
type AnalysisResult struct {
	ApplyRecommendation ApplyRecommendation `json:"apply_recommendation"`
	Confidence          float64             `json:"confidence"` // 0-1
	OpportunityScore    float64             `json:"opportunity_score"`
	JobTitle            string              `json:"job_title"`
	RedFlags            []RedFlag           `json:"red_flags,omitempty"`
	GreenFlags          []GreenFlag         `json:"green_flags,omitempty"`
	DetailedReport      string              `json:"detailed_report"`
	Opinion             string              `json:"opinion,omitempty"`
	Proposal            *Proposal           `json:"proposal,omitempty"`
	Analytics           Analytics           `json:"analytics"`
	StructuredReasons   []string            `json:"structured_reasons"`
	MissingInfo         []MissingInfo       `json:"missing_info_sensitivity,omitempty"`
}

// CoverLetter returns the drafted cover letter, or "" when the analysis
// carried no proposal.
func (a *AnalysisResult) CoverLetter() string {
	if a == nil || a.Proposal == nil {
		return ""
	}
	return a.Proposal.CoverLetter
}

// ProfileDetails is the structured payload returned by profile extraction.
// All fields are required in the response schema; empty values are
// acceptable when nothing could be inferred.
type ProfileDetails struct {
	Name     string   `json:"name"`
	Headline string   `json:"headline"`
	Skills   []string `json:"skills"`
	Rate     string   `json:"rate"`
}
