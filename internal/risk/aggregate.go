package risk

import (
	"math"

	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// Category weights. Claims history is the strongest loss predictor and
// carries the largest weight; the four must sum to 1.
const (
	weightProperty   = 0.25
	weightClaims     = 0.30
	weightGeographic = 0.25
	weightProtection = 0.20
)

const maxTopFactors = 5

// Classify maps an overall score to its risk tier and underwriting
// recommendation. Boundaries are half-open: a score exactly on a boundary
// takes the higher tier.
func Classify(overall float64) (model.RiskLevel, model.Recommendation) {
	switch {
	case overall < 45:
		return model.RiskLow, model.RecommendAutoBind
	case overall < 60:
		return model.RiskMedium, model.RecommendStandardReview
	case overall < 80:
		return model.RiskHigh, model.RecommendReferSenior
	default:
		return model.RiskVeryHigh, model.RecommendDecline
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Score runs all four category calculators and combines them into the
// weighted overall assessment. Classification happens on the unrounded
// overall; stored scores are rounded to one decimal afterward.
func (s *Scorer) Score(rec model.PropertyRecord, claims *ledger.Table) model.RiskScoreResult {
	property := s.PropertyRisk(rec)
	claimsRes := s.ClaimsRisk(rec, claims)
	geographic := s.GeographicRisk(rec)
	protection := s.ProtectionRisk(rec)

	overall := property.Score*weightProperty +
		claimsRes.Score*weightClaims +
		geographic.Score*weightGeographic +
		protection.Score*weightProtection

	level, recommendation := Classify(overall)

	factors := make([]string, 0, maxTopFactors)
	for _, group := range [][]string{property.Notable, claimsRes.Notable, geographic.Notable, protection.Notable} {
		for _, f := range group {
			if len(factors) == maxTopFactors {
				break
			}
			factors = append(factors, f)
		}
	}

	return model.RiskScoreResult{
		PropertyRisk:        round1(property.Score),
		ClaimsRisk:          round1(claimsRes.Score),
		GeographicRisk:      round1(geographic.Score),
		ProtectionRisk:      round1(protection.Score),
		OverallScore:        round1(overall),
		RiskLevel:           level,
		Recommendation:      recommendation,
		TopFactors:          factors,
		PropertyNotable:     property.Notable,
		ClaimsNotable:       claimsRes.Notable,
		GeographicNotable:   geographic.Notable,
		ProtectionNotable:   protection.Notable,
		PropertyBreakdown:   property.Breakdown,
		ClaimsBreakdown:     claimsRes.Breakdown,
		GeographicBreakdown: geographic.Breakdown,
		ProtectionBreakdown: protection.Breakdown,
	}
}
