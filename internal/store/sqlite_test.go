package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-specialty/underwriting-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func saveSample(t *testing.T, st *SQLiteStore, policyID string, level model.RiskLevel, score float64) *model.Assessment {
	t.Helper()
	res := sampleResult()
	res.RiskLevel = level
	res.OverallScore = score
	saved, err := st.SaveAssessment(context.Background(), model.Assessment{
		PolicyID:     policyID,
		NamedInsured: "Acme Warehousing",
		Address:      "123 Main Street, Springfield, IL",
		TIV:          4_500_000,
		Result:       res,
	})
	require.NoError(t, err)
	return saved
}

func TestSQLite_SaveAndGetAssessment(t *testing.T) {
	st := newTestSQLiteStore(t)

	saved := saveSample(t, st, "POL-1001", model.RiskLow, 41.5)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := st.GetAssessment(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "POL-1001", got.PolicyID)
	assert.Equal(t, "Acme Warehousing", got.NamedInsured)
	assert.InDelta(t, 4_500_000, got.TIV, 0.0001)
	assert.Equal(t, model.RiskLow, got.Result.RiskLevel)
	assert.InDelta(t, 41.5, got.Result.OverallScore, 0.0001)
}

func TestSQLite_GetAssessment_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetAssessment(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListAssessments_FilterByPolicy(t *testing.T) {
	st := newTestSQLiteStore(t)
	saveSample(t, st, "POL-1001", model.RiskLow, 40)
	saveSample(t, st, "POL-1001", model.RiskMedium, 50)
	saveSample(t, st, "POL-2002", model.RiskHigh, 70)

	out, err := st.ListAssessments(context.Background(), AssessmentFilter{PolicyID: "POL-1001"})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	for _, a := range out {
		assert.Equal(t, "POL-1001", a.PolicyID)
	}
}

func TestSQLite_ListAssessments_FilterByRiskLevel(t *testing.T) {
	st := newTestSQLiteStore(t)
	saveSample(t, st, "POL-1001", model.RiskLow, 40)
	saveSample(t, st, "POL-2002", model.RiskVeryHigh, 85)

	out, err := st.ListAssessments(context.Background(), AssessmentFilter{RiskLevel: model.RiskVeryHigh})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "POL-2002", out[0].PolicyID)
}

func TestSQLite_ListAssessments_LimitOffset(t *testing.T) {
	st := newTestSQLiteStore(t)
	for i := 0; i < 5; i++ {
		saveSample(t, st, "POL-1001", model.RiskLow, 40)
	}

	page, err := st.ListAssessments(context.Background(), AssessmentFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := st.ListAssessments(context.Background(), AssessmentFilter{Limit: 10, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}

func TestSQLite_DeleteAssessment(t *testing.T) {
	st := newTestSQLiteStore(t)
	saved := saveSample(t, st, "POL-1001", model.RiskLow, 40)

	require.NoError(t, st.DeleteAssessment(context.Background(), saved.ID))

	_, err := st.GetAssessment(context.Background(), saved.ID)
	assert.Error(t, err)
}

func TestSQLite_DeleteAssessment_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.DeleteAssessment(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Migrate(context.Background()))
	require.NoError(t, st.Migrate(context.Background()))
}
