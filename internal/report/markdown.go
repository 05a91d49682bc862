// Package report renders underwriting assessments as markdown and HTML.
// Markdown is the chat/CLI surface; HTML is the formal report handed to
// brokers.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/internal/narrative"
	"github.com/meridian-specialty/underwriting-cli/internal/risk"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// Currency formats a dollar amount with thousands separators and cents.
func Currency(v float64) string {
	return currencyPrinter.Sprintf("$%.2f", v)
}

// severityBar renders a five-segment bar, one segment per 20 points, colored
// green below 40, yellow below 70, red above.
func severityBar(score float64) string {
	filled := int(score / 20)
	if filled > 5 {
		filled = 5
	}
	var block string
	switch {
	case score < 40:
		block = "\U0001F7E9" // green square
	case score < 70:
		block = "\U0001F7E8" // yellow square
	default:
		block = "\U0001F7E5" // red square
	}
	return strings.Repeat(block, filled) + strings.Repeat("⬜", 5-filled)
}

func levelBadge(level model.RiskLevel) (colorBlock, emoji string) {
	switch level {
	case model.RiskVeryHigh:
		return strings.Repeat("\U0001F7E5", 3), "\U0001F534"
	case model.RiskHigh:
		return strings.Repeat("\U0001F7E7", 3), "\U0001F7E0"
	case model.RiskMedium:
		return strings.Repeat("\U0001F7E8", 3), "\U0001F7E1"
	default:
		return strings.Repeat("\U0001F7E9", 3), "\U0001F7E2"
	}
}

// addressSection renders the address lines of the property header, omitting
// whatever the submission did not carry.
func addressSection(rec model.PropertyRecord) string {
	var lines []string
	street := rec.StreetAddress
	if street == "" {
		street = rec.MailingAddress
	}
	if street != "" {
		lines = append(lines, fmt.Sprintf("**Address:** %s", street))
	}

	var parts []string
	if rec.City != "" {
		parts = append(parts, fmt.Sprintf("**City:** %s", rec.City))
	}
	if rec.State != "" {
		parts = append(parts, fmt.Sprintf("**State:** %s", rec.State))
	}
	if rec.Zip != "" {
		parts = append(parts, fmt.Sprintf("**Zip:** %s", rec.Zip))
	}
	if len(parts) > 0 {
		lines = append(lines, strings.Join(parts, ", "))
	}

	if len(lines) == 0 {
		return "**Address:** Not available in data"
	}
	return strings.Join(lines, "\n")
}

// Property renders a single assessment as markdown: address header, severity
// table with per-category contributing factors, the overall badge, top
// factors, and the analysis summary (LLM-written or template fallback).
func Property(rec model.PropertyRecord, res model.RiskScoreResult, summary string) string {
	factorsText := "- No major claim likelihood factors"
	if len(res.TopFactors) > 0 {
		items := make([]string, len(res.TopFactors))
		for i, f := range res.TopFactors {
			items[i] = "- " + f
		}
		factorsText = strings.Join(items, "\n")
	}

	colorBlock, _ := levelBadge(res.RiskLevel)
	tiv := risk.ParseNumeric(rec.TIV, 0)

	return fmt.Sprintf(`
### 🏢 %s

**📍 Property Details**
%s

**💰 TIV:** %s

**🔍 Risk Breakdown**

| **Category** | **Severity** | **Contributing Factors** |
|----------|----------|----------------------|
| **Property** | %s | %s |
| **Claims History** | %s | %s |
| **Geographic** | %s | %s |
| **Protection** | %s | %s |

**📊 Overall Claim Likelihood:**
%s %d%% - %s Likelihood


**⚠️ Top Factors Contributing to Score:**
%s

---
#### 📋 Recommendation: %s

#### 📝 Analysis Summary & Recommendations

%s
`,
		displayName(rec),
		addressSection(rec),
		Currency(tiv),
		severityBar(res.PropertyRisk), strings.Join(res.PropertyBreakdown, "<br>"),
		severityBar(res.ClaimsRisk), strings.Join(res.ClaimsBreakdown, "<br>"),
		severityBar(res.GeographicRisk), strings.Join(res.GeographicBreakdown, "<br>"),
		severityBar(res.ProtectionRisk), strings.Join(res.ProtectionBreakdown, "<br>"),
		colorBlock, int(res.OverallScore), res.RiskLevel,
		factorsText,
		res.Recommendation,
		summary,
	)
}

func displayName(rec model.PropertyRecord) string {
	if rec.NamedInsured != "" {
		return rec.NamedInsured
	}
	return "Unnamed Property"
}

// Portfolio renders the aggregate tier distribution and financial summary.
func Portfolio(stats narrative.PortfolioStats, namedInsured string) string {
	header := "#### 📊 PORTFOLIO CLAIM LIKELIHOOD SUMMARY"
	if namedInsured != "" {
		header += fmt.Sprintf("\n\n**Client Name:** %s", namedInsured)
	}

	pct := func(count int) string {
		if stats.TotalProperties == 0 {
			return "0.0%"
		}
		return fmt.Sprintf("%.1f%%", float64(count)/float64(stats.TotalProperties)*100)
	}

	return fmt.Sprintf(`
%s

**Total Properties Analyzed:** %d

**Claim Likelihood Distribution**

| Claim Likelihood Level | Count | Percentage |
|------------------------|-------|------------|
| 🟢 Low (Auto-Bind) | %d | %s |
| 🟡 Medium (Standard) | %d | %s |
| 🟠 High (Refer) | %d | %s |
| 🔴 Very High (Decline) | %d | %s |

**Financial Summary**

| Metric | Value |
|--------|-------|
| **Total Insured Value (TIV)** | %s |
| **Average Claim Likelihood** | %.1f%% |
`,
		header,
		stats.TotalProperties,
		stats.LowRiskCount, pct(stats.LowRiskCount),
		stats.MediumRiskCount, pct(stats.MediumRiskCount),
		stats.HighRiskCount, pct(stats.HighRiskCount),
		stats.VeryHighRiskCount, pct(stats.VeryHighRiskCount),
		Currency(stats.TotalTIV),
		stats.AverageScore,
	)
}
