package risk

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-specialty/underwriting-cli/internal/acord"
	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

// Result columns appended to a scored property schedule.
const (
	ColPropertyRiskScore   = "Property_Risk_Score"
	ColClaimsRiskScore     = "Claims_Risk_Score"
	ColGeographicRiskScore = "Geographic_Risk_Score"
	ColProtectionRiskScore = "Protection_Risk_Score"
	ColOverallRiskScore    = "Overall_Risk_Score"
	ColRiskLevel           = "Risk_Level"
	ColRecommendation      = "Recommendation"
	ColTopRiskFactors      = "Top_Risk_Factors"
)

var resultColumns = []string{
	ColPropertyRiskScore,
	ColClaimsRiskScore,
	ColGeographicRiskScore,
	ColProtectionRiskScore,
	ColOverallRiskScore,
	ColRiskLevel,
	ColRecommendation,
	ColTopRiskFactors,
}

const topFactorSeparator = " | "

// ScoreTable scores every row of a property schedule against the shared
// claims ledger and returns a copy with the eight result columns appended.
// The input table is never mutated. Row order is preserved.
func (s *Scorer) ScoreTable(properties, claims *ledger.Table) (*ledger.Table, []model.RiskScoreResult, error) {
	if err := properties.Validate(); err != nil {
		return nil, nil, err
	}

	results := make([]model.RiskScoreResult, properties.Len())
	for i := 0; i < properties.Len(); i++ {
		results[i] = s.Score(acord.RecordFromRow(properties, i), claims)
	}
	return appendResults(properties, results), results, nil
}

// ScoreTableParallel is ScoreTable with rows fanned out across workers.
// Scoring is pure, so results are identical to the sequential path; only
// wall time differs. workers <= 0 means one goroutine per row.
func (s *Scorer) ScoreTableParallel(ctx context.Context, properties, claims *ledger.Table, workers int) (*ledger.Table, []model.RiskScoreResult, error) {
	if err := properties.Validate(); err != nil {
		return nil, nil, err
	}

	results := make([]model.RiskScoreResult, properties.Len())
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := 0; i < properties.Len(); i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Score(acord.RecordFromRow(properties, i), claims)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return appendResults(properties, results), results, nil
}

func appendResults(properties *ledger.Table, results []model.RiskScoreResult) *ledger.Table {
	out := properties.Clone()
	cols := make(map[string][]string, len(resultColumns))
	for _, r := range results {
		cols[ColPropertyRiskScore] = append(cols[ColPropertyRiskScore], formatScore(r.PropertyRisk))
		cols[ColClaimsRiskScore] = append(cols[ColClaimsRiskScore], formatScore(r.ClaimsRisk))
		cols[ColGeographicRiskScore] = append(cols[ColGeographicRiskScore], formatScore(r.GeographicRisk))
		cols[ColProtectionRiskScore] = append(cols[ColProtectionRiskScore], formatScore(r.ProtectionRisk))
		cols[ColOverallRiskScore] = append(cols[ColOverallRiskScore], formatScore(r.OverallScore))
		cols[ColRiskLevel] = append(cols[ColRiskLevel], string(r.RiskLevel))
		cols[ColRecommendation] = append(cols[ColRecommendation], string(r.Recommendation))
		cols[ColTopRiskFactors] = append(cols[ColTopRiskFactors], strings.Join(r.TopFactors, topFactorSeparator))
	}
	for _, name := range resultColumns {
		out.AddColumn(name, cols[name])
	}
	return out
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
