// Package narrative turns a scored assessment into underwriter-facing prose:
// a deterministic rule-based summary that always works offline, and an
// optional model-backed generator that falls back to the deterministic path
// on any failure.
package narrative

import (
	"fmt"
	"strings"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

const maxSuggestedActions = 5

// Build renders the deterministic analysis summary: a risk-level paragraph,
// the primary drivers, the underwriting action, and up to five suggested
// actions keyed off the notable factors.
func Build(res model.RiskScoreResult) string {
	overall := int(res.OverallScore)

	var base, action string
	switch res.RiskLevel {
	case model.RiskVeryHigh:
		base = fmt.Sprintf("This property presents a **very high claim likelihood** with an overall score of **%d%%**. ", overall)
		action = "This property requires **immediate senior underwriter review** or should be considered for **declination**. "
	case model.RiskHigh:
		base = fmt.Sprintf("This property shows a **high claim likelihood** with an overall score of **%d%%**. ", overall)
		action = "This property should be **referred to a senior underwriter** for detailed evaluation before binding. "
	case model.RiskMedium:
		base = fmt.Sprintf("This property has a **moderate claim likelihood** with an overall score of **%d%%**. ", overall)
		action = "This property can proceed through **standard underwriting review** with careful attention to the identified risk factors. "
	default:
		base = fmt.Sprintf("This property demonstrates a **low claim likelihood** with an overall score of **%d%%**. ", overall)
		action = "This property is **eligible for auto-bind** subject to standard policy terms and conditions. "
	}

	drivers := RiskDrivers(res)
	var driversText string
	if len(drivers) > 0 {
		driversText = fmt.Sprintf("The primary risk drivers are **%s**. ", strings.Join(drivers, ", "))
	} else {
		driversText = "The risk profile is relatively balanced across all categories. "
	}

	recs := suggestedActions(res)
	var recText string
	if len(recs) > 0 {
		if len(recs) > maxSuggestedActions {
			recs = recs[:maxSuggestedActions]
		}
		var b strings.Builder
		b.WriteString("\n\n**Suggested Actions:**\n")
		for i, r := range recs {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- " + r)
		}
		recText = b.String()
	}

	return base + driversText + action + recText
}

// RiskDrivers names the categories whose sub-score crossed the driver
// threshold, in calculator order.
func RiskDrivers(res model.RiskScoreResult) []string {
	var drivers []string
	if res.PropertyRisk >= 60 {
		drivers = append(drivers, "property characteristics")
	}
	if res.ClaimsRisk >= 60 {
		drivers = append(drivers, "claims history")
	}
	if res.GeographicRisk >= 60 {
		drivers = append(drivers, "geographic location")
	}
	if res.ProtectionRisk >= 60 {
		drivers = append(drivers, "protection systems")
	}
	return drivers
}

// suggestedActions builds the recommendation list. The top three factors are
// scanned first and may append duplicates; the per-category passes then scan
// that category's breakdown lines, deduplicating by substring against what
// is already present.
func suggestedActions(res model.RiskScoreResult) []string {
	var recs []string

	top := res.TopFactors
	if len(top) > 3 {
		top = top[:3]
	}
	for _, factor := range top {
		f := strings.ToLower(factor)
		if strings.Contains(f, "construction type") && strings.Contains(f, "frame") {
			recs = append(recs, actionFireProtection)
		}
		if strings.Contains(f, "sprinkler") {
			recs = append(recs, actionSprinkler)
		}
		if strings.Contains(f, "claim count") || strings.Contains(f, "high claim") {
			recs = append(recs, actionDeductible)
		}
		if strings.Contains(f, "loss amount") {
			recs = append(recs, actionSubLimits)
		}
		if strings.Contains(f, "fire") && strings.Contains(f, "loss") {
			recs = append(recs, actionFireInspection)
		}
		if strings.Contains(f, "wildfire") {
			recs = append(recs, actionWildfire)
		}
		if strings.Contains(f, "flood") {
			recs = append(recs, actionFloodExclusion)
		}
		if strings.Contains(f, "crime") {
			recs = append(recs, actionSecuritySystem)
		}
		if strings.Contains(f, "age") || strings.Contains(f, "year built") {
			recs = append(recs, actionBuildingInspection)
		}
		if strings.Contains(f, "roof") {
			recs = append(recs, actionRoofCertification)
		}
	}

	if res.PropertyRisk >= 60 {
		if anyFactor(res.PropertyBreakdown, func(f string) bool {
			return strings.Contains(f, "Construction") && (strings.Contains(f, "Frame") || strings.Contains(f, "Wood"))
		}) && !anyRec(recs, "fire protection") {
			recs = append(recs, actionFireProtection)
		}
		if anyFactor(res.PropertyBreakdown, func(f string) bool {
			return strings.Contains(f, "Age") || strings.Contains(f, "Year Built")
		}) && !anyRec(recs, "inspection") {
			recs = append(recs, actionBuildingInspection)
		}
		if anyFactor(res.PropertyBreakdown, contains("Roof")) && !anyRec(recs, "roof") {
			recs = append(recs, actionRoofCertification)
		}
		if anyFactor(res.PropertyBreakdown, contains("Sprinkler")) && !anyRec(recs, "sprinkler") {
			recs = append(recs, actionSprinkler)
		}
	}

	if res.ClaimsRisk >= 60 {
		if anyFactor(res.ClaimsBreakdown, contains("Count")) && !anyRec(recs, "deductible") {
			recs = append(recs, actionDeductible)
		}
		if anyFactor(res.ClaimsBreakdown, func(f string) bool {
			return strings.Contains(f, "Amount") || strings.Contains(f, "Total")
		}) && !anyRec(recs, "sub-limit") {
			recs = append(recs, actionSubLimits)
		}
		if anyFactor(res.ClaimsBreakdown, contains("Fire")) && !anyRec(recs, "fire protection systems") {
			recs = append(recs, actionFireInspection)
		}
	}

	if res.GeographicRisk >= 60 {
		if anyFactor(res.GeographicBreakdown, contains("Wildfire")) && !anyRec(recs, "wildfire") {
			recs = append(recs, actionWildfire)
		}
		if anyFactor(res.GeographicBreakdown, contains("Flood")) && !anyRec(recs, "flood") {
			recs = append(recs, actionFloodExclusion)
		}
		if anyFactor(res.GeographicBreakdown, contains("Earthquake")) && !anyRec(recs, "earthquake") {
			recs = append(recs, actionEarthquake)
		}
		if anyFactor(res.GeographicBreakdown, contains("Crime")) && !anyRec(recs, "security") {
			recs = append(recs, actionSecuritySystem)
		}
	}

	if res.ProtectionRisk >= 60 {
		if anyFactor(res.ProtectionBreakdown, contains("Fire Protection Class")) && !anyRec(recs, "limited fire protection") {
			recs = append(recs, actionClassSurcharge)
		}
		if anyFactor(res.ProtectionBreakdown, contains("Burglar Alarm")) && !hasAlarmRec(recs) {
			recs = append(recs, actionBurglarAlarm)
		}
		if anyFactor(res.ProtectionBreakdown, contains("Fire Station")) && !anyRec(recs, "premium") {
			recs = append(recs, actionStationSurcharge)
		}
	}

	if len(recs) == 0 {
		switch res.RiskLevel {
		case model.RiskLow, model.RiskMedium:
			recs = append(recs,
				"**Approve** with standard policy terms and competitive pricing",
				"**Consider** for preferred risk tier with enhanced coverage options",
			)
		default:
			recs = append(recs,
				"**Escalate** to senior underwriter for comprehensive risk assessment",
				"**Consider** declination or require substantial risk improvements before binding",
			)
		}
	}

	return recs
}

const (
	actionFireProtection     = "**Require** proof of upgraded fire protection systems as a condition of binding"
	actionSprinkler          = "**Mandate** sprinkler system installation or apply **premium surcharge** for inadequate protection"
	actionDeductible         = "**Impose** minimum deductible of $5,000+ to discourage claim frequency"
	actionSubLimits          = "**Apply** sub-limits on high-severity perils and consider **co-insurance clause**"
	actionFireInspection     = "**Obtain** current fire protection system inspection certificate before binding"
	actionWildfire           = "**Require** defensible space certification and consider **wildfire exclusion** if non-compliant"
	actionFloodExclusion     = "**Exclude** flood coverage and advise separate NFIP or private flood policy"
	actionSecuritySystem     = "**Require** central station monitored security system as binding condition"
	actionBuildingInspection = "**Order** professional building inspection to assess structural integrity and systems"
	actionRoofCertification  = "**Require** roof certification or **exclude** wind/hail coverage until roof is replaced"
	actionEarthquake         = "**Offer** earthquake coverage as **optional endorsement** with separate premium"
	actionClassSurcharge     = "**Apply** premium surcharge due to poor fire protection class; consider **coverage restrictions**"
	actionBurglarAlarm       = "**Require** installation of central station burglar alarm before policy issuance"
	actionStationSurcharge   = "**Apply** distance-to-fire-station premium surcharge per rating guidelines"
)

func contains(sub string) func(string) bool {
	return func(f string) bool { return strings.Contains(f, sub) }
}

func anyFactor(factors []string, pred func(string) bool) bool {
	for _, f := range factors {
		if pred(f) {
			return true
		}
	}
	return false
}

func anyRec(recs []string, sub string) bool {
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r), sub) {
			return true
		}
	}
	return false
}

// hasAlarmRec reports whether an alarm-specific recommendation is already
// present, ignoring the broader security-system action.
func hasAlarmRec(recs []string) bool {
	for _, r := range recs {
		lower := strings.ToLower(r)
		if strings.Contains(lower, "burglar alarm") && !strings.Contains(lower, "security") {
			return true
		}
	}
	return false
}
