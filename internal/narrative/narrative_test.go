package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

func highRiskResult() model.RiskScoreResult {
	return model.RiskScoreResult{
		PropertyRisk:    78.8,
		ClaimsRisk:      86.7,
		GeographicRisk:  55.0,
		ProtectionRisk:  48.3,
		OverallScore:    70.2,
		RiskLevel:       model.RiskHigh,
		Recommendation:  model.RecommendReferSenior,
		TopFactors:      []string{"Construction Type: Frame (High Risk)", "Low Sprinkler Coverage: 10.0%", "High Claim Count: 20 claims"},
		PropertyNotable: []string{"Construction Type: Frame (High Risk)", "Low Sprinkler Coverage: 10.0%"},
		ClaimsNotable:   []string{"High Claim Count: 20 claims"},
		PropertyBreakdown: []string{
			"**Construction Type:** Frame (80%)",
			"**Year Built:** 1960 (Age: 65 yrs, Score: 80%)",
			"**Roof Condition:** Poor (80%)",
			"**Sprinkler Coverage:** 10.0% (75%)",
		},
		ClaimsBreakdown: []string{
			"**Claim Count:** 20 (90%)",
			"**Total Loss Amount:** $6,000,000 (90%)",
			"**Loss Types:** Fire, Theft (80%)",
		},
	}
}

func TestBuildHighRisk(t *testing.T) {
	summary := Build(highRiskResult())

	assert.Contains(t, summary, "**high claim likelihood** with an overall score of **70%**")
	assert.Contains(t, summary, "The primary risk drivers are **property characteristics, claims history**.")
	assert.Contains(t, summary, "**referred to a senior underwriter**")
	assert.Contains(t, summary, "**Suggested Actions:**")
	assert.Contains(t, summary, "proof of upgraded fire protection systems")
	assert.Contains(t, summary, "sprinkler system installation")
	assert.Contains(t, summary, "minimum deductible of $5,000+")
}

func TestBuildRiskLevelPhrasing(t *testing.T) {
	tests := []struct {
		name  string
		level model.RiskLevel
		want  string
	}{
		{"very high", model.RiskVeryHigh, "very high claim likelihood"},
		{"high", model.RiskHigh, "high claim likelihood"},
		{"medium", model.RiskMedium, "moderate claim likelihood"},
		{"low", model.RiskLow, "low claim likelihood"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := model.RiskScoreResult{RiskLevel: tt.level, OverallScore: 50}
			assert.Contains(t, Build(res), tt.want)
		})
	}
}

func TestBuildBalancedProfile(t *testing.T) {
	res := model.RiskScoreResult{
		PropertyRisk: 40, ClaimsRisk: 30, GeographicRisk: 45, ProtectionRisk: 50,
		OverallScore: 40.5,
		RiskLevel:    model.RiskLow,
	}
	summary := Build(res)

	assert.Contains(t, summary, "relatively balanced across all categories")
	// No notable factors, so general guidance applies.
	assert.Contains(t, summary, "**Approve** with standard policy terms")
	assert.Contains(t, summary, "preferred risk tier")
}

func TestBuildGeneralGuidanceHighTier(t *testing.T) {
	res := model.RiskScoreResult{
		OverallScore: 82,
		RiskLevel:    model.RiskVeryHigh,
	}
	summary := Build(res)
	assert.Contains(t, summary, "**Escalate** to senior underwriter")
	assert.Contains(t, summary, "declination or require substantial risk improvements")
}

func TestBuildCapsSuggestedActions(t *testing.T) {
	res := model.RiskScoreResult{
		PropertyRisk: 80, ClaimsRisk: 80, GeographicRisk: 80, ProtectionRisk: 80,
		OverallScore: 80,
		RiskLevel:    model.RiskVeryHigh,
		TopFactors: []string{
			"Construction Type: Frame (High Risk)",
			"Low Sprinkler Coverage: 5.0%",
			"High Claim Count: 20 claims",
		},
		PropertyBreakdown: []string{
			"**Construction Type:** Frame (80%)",
			"**Year Built:** 1955 (Age: 70 yrs, Score: 80%)",
			"**Roof Condition:** Poor (80%)",
			"**Sprinkler Coverage:** 5.0% (75%)",
		},
		ClaimsBreakdown: []string{
			"**Claim Count:** 20 (90%)",
			"**Total Loss Amount:** $6,000,000 (90%)",
			"**Loss Types:** Fire (80%)",
		},
		GeographicBreakdown: []string{
			"**Wildfire Risk:** 90.0 (90%)",
			"**FEMA Flood Zone:** VE (90%)",
			"**Earthquake Zone:** Zone 4 (85%)",
			"**Crime Score:** 85.0 (85%)",
		},
		ProtectionBreakdown: []string{
			"**Fire Protection Class:** 9 (80%)",
			"**Burglar Alarm Type:** None (80%)",
			"**Fire Station Distance:** 20.0 mi (75%)",
		},
	}
	summary := Build(res)

	bullets := 0
	for _, line := range strings.Split(summary, "\n") {
		if strings.HasPrefix(line, "- ") {
			bullets++
		}
	}
	assert.Equal(t, 5, bullets)
}

func TestBuildDeductibleWithoutCountFactor(t *testing.T) {
	// Claims risk driven by amount alone still carries the frequency and
	// severity actions: the category pass scans the breakdown lines, and
	// those always include the claim count.
	res := model.RiskScoreResult{
		ClaimsRisk:   65,
		OverallScore: 48,
		RiskLevel:    model.RiskMedium,
		ClaimsBreakdown: []string{
			"**Claim Count:** 6 (60%)",
			"**Total Loss Amount:** $2,500,000 (65%)",
			"**Loss Types:** Water Damage (30%)",
		},
	}
	summary := Build(res)

	assert.Contains(t, summary, "minimum deductible of $5,000+")
	assert.Contains(t, summary, "sub-limits on high-severity perils")
}

func TestRiskDrivers(t *testing.T) {
	res := model.RiskScoreResult{
		PropertyRisk: 60, ClaimsRisk: 59.9, GeographicRisk: 70, ProtectionRisk: 10,
	}
	assert.Equal(t, []string{"property characteristics", "geographic location"}, RiskDrivers(res))
}

func TestAggregate(t *testing.T) {
	results := []model.RiskScoreResult{
		{RiskLevel: model.RiskLow, OverallScore: 30},
		{RiskLevel: model.RiskLow, OverallScore: 40},
		{RiskLevel: model.RiskMedium, OverallScore: 50},
		{RiskLevel: model.RiskVeryHigh, OverallScore: 88},
	}
	stats := Aggregate(results, []float64{1_000_000, 2_000_000, 500_000, 4_500_000})

	assert.Equal(t, 4, stats.TotalProperties)
	assert.Equal(t, 2, stats.LowRiskCount)
	assert.Equal(t, 1, stats.MediumRiskCount)
	assert.Equal(t, 0, stats.HighRiskCount)
	assert.Equal(t, 1, stats.VeryHighRiskCount)
	assert.InDelta(t, 8_000_000, stats.TotalTIV, 0.0001)
	assert.InDelta(t, 52.0, stats.AverageScore, 0.0001)
}

func TestAggregateRoundsAverage(t *testing.T) {
	results := []model.RiskScoreResult{
		{RiskLevel: model.RiskLow, OverallScore: 30},
		{RiskLevel: model.RiskLow, OverallScore: 40.25},
	}
	stats := Aggregate(results, nil)
	// (30 + 40.25) / 2 = 35.125
	assert.InDelta(t, 35.1, stats.AverageScore, 0.0001)
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil, nil)
	assert.Equal(t, 0, stats.TotalProperties)
	assert.Zero(t, stats.AverageScore)
}

func TestAggregateShortTIVs(t *testing.T) {
	results := []model.RiskScoreResult{
		{RiskLevel: model.RiskLow, OverallScore: 30},
		{RiskLevel: model.RiskLow, OverallScore: 30},
	}
	stats := Aggregate(results, []float64{1_000_000})
	assert.InDelta(t, 1_000_000, stats.TotalTIV, 0.0001)
}

func TestProfilePrompt(t *testing.T) {
	p := profilePrompt(highRiskResult())
	assert.Contains(t, p, "Risk Level: HIGH (70%)")
	assert.Contains(t, p, "P:78% C:86% G:55% S:48%")
	assert.Contains(t, p, "Construction Type: Frame (High Risk)")

	empty := profilePrompt(model.RiskScoreResult{RiskLevel: model.RiskLow})
	assert.Contains(t, empty, "Critical Factors: None")
}
