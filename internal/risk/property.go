package risk

import (
	"fmt"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// PropertyRisk scores construction type, building age, roof condition, and
// sprinkler coverage. Each component maps independently; the category score
// is their unweighted mean.
func (s *Scorer) PropertyRisk(rec model.PropertyRecord) CategoryResult {
	var res CategoryResult
	var scores []float64

	construction := rec.ConstructionType
	constructionScore := lookupScore(constructionRisk, construction, defaultCategoryScore)
	scores = append(scores, constructionScore)
	if constructionScore >= 60 {
		res.Notable = append(res.Notable, fmt.Sprintf("Construction Type: %s (High Risk)", construction))
	}

	yearBuilt := ParseInteger(rec.YearBuilt, defaultYearBuilt)
	age := s.referenceYear - yearBuilt
	var ageScore float64
	switch {
	case age > 50:
		ageScore = 80
		res.Notable = append(res.Notable, fmt.Sprintf("Building Age: %d years (High Risk)", age))
	case age > 25:
		ageScore = 50
	default:
		ageScore = 20
	}
	scores = append(scores, ageScore)

	roof := rec.RoofCondition
	roofScore := lookupScore(roofConditionRisk, roof, defaultCategoryScore)
	scores = append(scores, roofScore)
	if roofScore >= 60 {
		res.Notable = append(res.Notable, fmt.Sprintf("Roof Condition: %s (High Risk)", roof))
	}

	sprinklerPct := ParseNumeric(rec.SprinkleredPct, defaultSprinklerPct)
	var sprinklerScore float64
	switch {
	case sprinklerPct > 70:
		sprinklerScore = 20
	case sprinklerPct > 30:
		sprinklerScore = 45
	default:
		sprinklerScore = 75
		res.Notable = append(res.Notable, fmt.Sprintf("Low Sprinkler Coverage: %.1f%%", sprinklerPct))
	}
	scores = append(scores, sprinklerScore)

	res.Breakdown = []string{
		fmt.Sprintf("**Construction Type:** %s (%.0f%%)", displayOr(construction, "Unknown"), constructionScore),
		fmt.Sprintf("**Year Built:** %d (Age: %d yrs, Score: %.0f%%)", yearBuilt, age, ageScore),
		fmt.Sprintf("**Roof Condition:** %s (%.0f%%)", displayOr(roof, "Unknown"), roofScore),
		fmt.Sprintf("**Sprinkler Coverage:** %.1f%% (%.0f%%)", sprinklerPct, sprinklerScore),
	}
	res.Score = mean(scores)
	return res
}

func displayOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
