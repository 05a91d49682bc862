package risk

import (
	"fmt"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// ProtectionRisk scores loss-mitigation capability: ISO fire protection
// class, burglar alarm type, and distance to the responding fire station.
func (s *Scorer) ProtectionRisk(rec model.PropertyRecord) CategoryResult {
	var res CategoryResult
	var scores []float64

	class := ParseInteger(rec.FireProtectionClass, defaultProtectionClass)
	var classScore float64
	switch {
	case class >= 8:
		classScore = 80
		res.Notable = append(res.Notable, fmt.Sprintf("Poor Fire Protection Class: %d", class))
	case class >= 5:
		classScore = 50
	default:
		classScore = 20
	}
	scores = append(scores, classScore)

	alarm := rec.BurglarAlarmType
	alarmScore := lookupScore(burglarAlarmRisk, alarm, defaultCategoryScore)
	scores = append(scores, alarmScore)
	if alarmScore >= 60 {
		res.Notable = append(res.Notable, fmt.Sprintf("Burglar Alarm: %s", alarm))
	}

	distance := ParseNumeric(rec.FireStationDistance, defaultStationDistance)
	var distanceScore float64
	switch {
	case distance > 15:
		distanceScore = 75
		res.Notable = append(res.Notable, fmt.Sprintf("Far from Fire Station: %.1f mi", distance))
	case distance > 5:
		distanceScore = 45
	default:
		distanceScore = 20
	}
	scores = append(scores, distanceScore)

	res.Breakdown = []string{
		fmt.Sprintf("**Fire Protection Class:** %d (%.0f%%)", class, classScore),
		fmt.Sprintf("**Burglar Alarm Type:** %s (%.0f%%)", displayOr(alarm, "Unknown"), alarmScore),
		fmt.Sprintf("**Fire Station Distance:** %.1f mi (%.0f%%)", distance, distanceScore),
	}
	res.Score = mean(scores)
	return res
}
