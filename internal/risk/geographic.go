package risk

import (
	"fmt"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// GeographicRisk scores location-driven perils: wildfire exposure, FEMA
// flood zone, seismic zone, and crime. Wildfire and crime are pre-scaled
// 0-100 indices and pass through unmapped.
func (s *Scorer) GeographicRisk(rec model.PropertyRecord) CategoryResult {
	var res CategoryResult
	var scores []float64

	wildfire := ParseNumeric(rec.WildfireScore, defaultWildfireScore)
	scores = append(scores, wildfire)
	if wildfire > 70 {
		res.Notable = append(res.Notable, fmt.Sprintf("High Wildfire Risk: %.1f", wildfire))
	}

	floodZone := rec.FloodZone
	floodScore := lookupScore(femaFloodZoneRisk, floodZone, defaultCategoryScore)
	scores = append(scores, floodScore)
	if floodScore >= 60 {
		res.Notable = append(res.Notable, fmt.Sprintf("FEMA Flood Zone: %s", floodZone))
	}

	quakeZone := rec.EarthquakeZone
	quakeScore := lookupScore(earthquakeZoneRisk, quakeZone, defaultEarthquakeScore)
	scores = append(scores, quakeScore)
	if quakeScore >= 60 {
		res.Notable = append(res.Notable, fmt.Sprintf("Earthquake Zone: %s", quakeZone))
	}

	crime := ParseNumeric(rec.CrimeScore, defaultCrimeScore)
	scores = append(scores, crime)
	if crime > 70 {
		res.Notable = append(res.Notable, fmt.Sprintf("High Crime Score: %.1f", crime))
	}

	res.Breakdown = []string{
		fmt.Sprintf("**Wildfire Risk:** %.1f (%.0f%%)", wildfire, wildfire),
		fmt.Sprintf("**FEMA Flood Zone:** %s (%.0f%%)", displayOr(floodZone, "Unknown"), floodScore),
		fmt.Sprintf("**Earthquake Zone:** %s (%.0f%%)", displayOr(quakeZone, "Unknown"), quakeScore),
		fmt.Sprintf("**Crime Score:** %.1f (%.0f%%)", crime, crime),
	}
	res.Score = mean(scores)
	return res
}
