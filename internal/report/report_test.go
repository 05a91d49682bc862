package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/internal/narrative"
)

func sampleRecord() model.PropertyRecord {
	return model.PropertyRecord{
		NamedInsured:        "Acme Warehousing",
		StreetAddress:       "123 Main St",
		City:                "Springfield",
		State:               "IL",
		Zip:                 "62701",
		ConstructionType:    "Frame",
		YearBuilt:           "1985",
		RoofCondition:       "Poor",
		SprinkleredPct:      "25",
		Stories:             "2",
		TotalArea:           "48000",
		FireProtectionClass: "8",
		BurglarAlarmType:    "None",
		NAICSCode:           "493110",
		TIV:                 "4500000",
	}
}

func sampleScore() model.RiskScoreResult {
	return model.RiskScoreResult{
		PropertyRisk:   78.8,
		ClaimsRisk:     86.7,
		GeographicRisk: 55.0,
		ProtectionRisk: 71.7,
		OverallScore:   73.9,
		RiskLevel:      model.RiskHigh,
		Recommendation: model.RecommendReferSenior,
		TopFactors: []string{
			"Construction: Frame (High Risk)",
			"Roof Condition: Poor",
			"3 claims in loss history",
		},
		PropertyBreakdown:   []string{"**Construction Type:** Frame (80%)", "**Roof Condition:** Poor (80%)"},
		ClaimsBreakdown:     []string{"**Claim Count:** 3 (60%)"},
		GeographicBreakdown: []string{"**FEMA Flood Zone:** AE (60%)"},
		ProtectionBreakdown: []string{"**Fire Protection Class:** 8 (80%)"},
	}
}

func TestSeverityBar(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "⬜⬜⬜⬜⬜"},
		{25, "🟩⬜⬜⬜⬜"},
		{45, "🟨🟨⬜⬜⬜"},
		{70, "🟥🟥🟥⬜⬜"},
		{100, "🟥🟥🟥🟥🟥"},
		{120, "🟥🟥🟥🟥🟥"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, severityBar(tt.score), "score %.0f", tt.score)
	}
}

func TestProperty_Markdown(t *testing.T) {
	out := Property(sampleRecord(), sampleScore(), "Summary paragraph here.")

	assert.Contains(t, out, "### 🏢 Acme Warehousing")
	assert.Contains(t, out, "**Address:** 123 Main St")
	assert.Contains(t, out, "**City:** Springfield, **State:** IL, **Zip:** 62701")
	assert.Contains(t, out, "**💰 TIV:** $4,500,000.00")
	assert.Contains(t, out, "73% - HIGH Likelihood")
	assert.Contains(t, out, "🟧🟧🟧")
	assert.Contains(t, out, "- Construction: Frame (High Risk)")
	assert.Contains(t, out, "**Construction Type:** Frame (80%)<br>**Roof Condition:** Poor (80%)")
	assert.Contains(t, out, "#### 📋 Recommendation: REFER TO SENIOR UNDERWRITER")
	assert.Contains(t, out, "Summary paragraph here.")
}

func TestProperty_MissingAddress(t *testing.T) {
	rec := model.PropertyRecord{NamedInsured: "Acme"}
	out := Property(rec, sampleScore(), "s")
	assert.Contains(t, out, "**Address:** Not available in data")
}

func TestProperty_NoTopFactors(t *testing.T) {
	res := sampleScore()
	res.TopFactors = nil
	out := Property(sampleRecord(), res, "s")
	assert.Contains(t, out, "- No major claim likelihood factors")
}

func TestPortfolio_Markdown(t *testing.T) {
	stats := narrative.PortfolioStats{
		TotalProperties:   4,
		LowRiskCount:      1,
		MediumRiskCount:   1,
		HighRiskCount:     1,
		VeryHighRiskCount: 1,
		TotalTIV:          12_500_000,
		AverageScore:      58.25,
	}

	out := Portfolio(stats, "Acme Warehousing")
	assert.Contains(t, out, "**Client Name:** Acme Warehousing")
	assert.Contains(t, out, "**Total Properties Analyzed:** 4")
	assert.Contains(t, out, "| 🟢 Low (Auto-Bind) | 1 | 25.0% |")
	assert.Contains(t, out, "| **Total Insured Value (TIV)** | $12,500,000.00 |")
	assert.Contains(t, out, "| **Average Claim Likelihood** | 58.2% |")
}

func TestPortfolio_NoClientName(t *testing.T) {
	out := Portfolio(narrative.PortfolioStats{TotalProperties: 1, LowRiskCount: 1, AverageScore: 30}, "")
	assert.NotContains(t, out, "Client Name")
	assert.Contains(t, out, "| 🟢 Low (Auto-Bind) | 1 | 100.0% |")
}

func TestWriteHTML(t *testing.T) {
	var sb strings.Builder
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	require.NoError(t, WriteHTML(&sb, sampleRecord(), sampleScore(), now))
	out := sb.String()

	assert.Contains(t, out, "<title>Underwriting Report - Acme Warehousing</title>")
	assert.Contains(t, out, "March 15, 2026")
	assert.Contains(t, out, "123 Main St")
	assert.Contains(t, out, "Springfield, IL")
	assert.Contains(t, out, "$4,500,000.00")
	assert.Contains(t, out, "73.9%")
	assert.Contains(t, out, "REFER TO SENIOR UNDERWRITER")
	// HIGH tier colors the badge orange.
	assert.Contains(t, out, "#fd7e14")
	// Markdown bold markers are stripped for the HTML surface.
	assert.Contains(t, out, "Construction Type: Frame (80%)")
	assert.NotContains(t, out, "**Construction Type:**")
	assert.Contains(t, out, "referred to senior underwriting")
}

func TestWriteHTML_EmptyRecord(t *testing.T) {
	var sb strings.Builder
	res := sampleScore()
	res.RiskLevel = model.RiskLow

	require.NoError(t, WriteHTML(&sb, model.PropertyRecord{}, res, time.Now()))
	out := sb.String()

	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "favorable risk profile")
}

func TestFinalRecommendationText(t *testing.T) {
	assert.Contains(t, finalRecommendationText(model.RiskLow), "auto-bind")
	assert.Contains(t, finalRecommendationText(model.RiskMedium), "standard underwriting review")
	assert.Contains(t, finalRecommendationText(model.RiskHigh), "senior underwriting")
	assert.Contains(t, finalRecommendationText(model.RiskVeryHigh), "decline")
}
