package narrative

import (
	"math"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// PortfolioStats aggregates a batch of scored properties.
type PortfolioStats struct {
	TotalProperties   int     `json:"total_properties"`
	LowRiskCount      int     `json:"low_risk_count"`
	MediumRiskCount   int     `json:"medium_risk_count"`
	HighRiskCount     int     `json:"high_risk_count"`
	VeryHighRiskCount int     `json:"very_high_risk_count"`
	TotalTIV float64 `json:"total_tiv"`
	// AverageScore is rounded to one decimal like the stored sub-scores.
	AverageScore float64 `json:"average_score"`
}

// Aggregate computes portfolio statistics over scored results. tivs pairs
// with results by index; a shorter slice reads as zero TIV for the
// remainder.
func Aggregate(results []model.RiskScoreResult, tivs []float64) PortfolioStats {
	stats := PortfolioStats{TotalProperties: len(results)}
	if len(results) == 0 {
		return stats
	}

	var sum float64
	for i, r := range results {
		switch r.RiskLevel {
		case model.RiskLow:
			stats.LowRiskCount++
		case model.RiskMedium:
			stats.MediumRiskCount++
		case model.RiskHigh:
			stats.HighRiskCount++
		case model.RiskVeryHigh:
			stats.VeryHighRiskCount++
		}
		sum += r.OverallScore
		if i < len(tivs) {
			stats.TotalTIV += tivs[i]
		}
	}
	stats.AverageScore = math.Round(sum/float64(len(results))*10) / 10
	return stats
}
