package model

// RiskLevel classifies the overall score into an underwriting tier.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskVeryHigh RiskLevel = "VERY HIGH"
)

// Recommendation is the underwriting action, in 1:1 correspondence with
// RiskLevel.
type Recommendation string

const (
	RecommendAutoBind       Recommendation = "AUTO-BIND ELIGIBLE"
	RecommendStandardReview Recommendation = "STANDARD REVIEW"
	RecommendReferSenior    Recommendation = "REFER TO SENIOR UNDERWRITER"
	RecommendDecline        Recommendation = "DECLINE OR SPECIAL REVIEW"
)

// RiskScoreResult is the immutable output of scoring a single property.
// Sub-scores and the overall score are stored rounded to one decimal;
// the tier classification uses the unrounded overall.
type RiskScoreResult struct {
	PropertyRisk   float64 `json:"property_risk"`
	ClaimsRisk     float64 `json:"claims_risk"`
	GeographicRisk float64 `json:"geographic_risk"`
	ProtectionRisk float64 `json:"protection_risk"`

	OverallScore   float64        `json:"overall_score"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Recommendation Recommendation `json:"recommendation"`

	// TopFactors is the first five notable factors in fixed calculator
	// order (property, claims, geographic, protection), truncated at
	// five and never re-sorted by severity.
	TopFactors []string `json:"top_factors"`

	// Notable factors per category, populated only when a component
	// crossed its risk threshold.
	PropertyNotable   []string `json:"property_notable,omitempty"`
	ClaimsNotable     []string `json:"claims_notable,omitempty"`
	GeographicNotable []string `json:"geographic_notable,omitempty"`
	ProtectionNotable []string `json:"protection_notable,omitempty"`

	// Unconditional per-component breakdown lines showing the raw value
	// and its mapped score.
	PropertyBreakdown   []string `json:"property_breakdown"`
	ClaimsBreakdown     []string `json:"claims_breakdown"`
	GeographicBreakdown []string `json:"geographic_breakdown"`
	ProtectionBreakdown []string `json:"protection_breakdown"`
}

// SubScores returns the four category scores keyed by category name,
// in calculator order. Used by the narrative builder and reports.
func (r RiskScoreResult) SubScores() []CategoryScore {
	return []CategoryScore{
		{Name: "Property", Score: r.PropertyRisk, Breakdown: r.PropertyBreakdown},
		{Name: "Claims History", Score: r.ClaimsRisk, Breakdown: r.ClaimsBreakdown},
		{Name: "Geographic", Score: r.GeographicRisk, Breakdown: r.GeographicBreakdown},
		{Name: "Protection", Score: r.ProtectionRisk, Breakdown: r.ProtectionBreakdown},
	}
}

// CategoryScore pairs a category name with its sub-score and breakdown.
type CategoryScore struct {
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	Breakdown []string `json:"breakdown"`
}
