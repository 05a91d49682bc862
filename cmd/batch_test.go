package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
)

func scoredTable() *ledger.Table {
	t := ledger.New("Named Insured", "TIV (Total Insurable Value)", "Overall_Risk_Score")
	t.Append("Acme Warehousing", "2500000", "73.9")
	t.Append("Acme Warehousing", "4000000", "41.5")
	return t
}

func TestWriteTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")
	require.NoError(t, writeTable(path, scoredTable()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Named Insured", "TIV (Total Insurable Value)", "Overall_Risk_Score"}, records[0])
	assert.Equal(t, "73.9", records[1][2])
}

func TestWriteTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.xlsx")
	require.NoError(t, writeTable(path, scoredTable()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	sheet := f.Sheets[0]
	assert.Equal(t, "Scored Schedule", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Overall_Risk_Score", sheet.Rows[0].Cells[2].String())
	assert.Equal(t, "41.5", sheet.Rows[2].Cells[2].String())
}

func TestWriteTable_UnsupportedExtension(t *testing.T) {
	err := writeTable(filepath.Join(t.TempDir(), "scored.parquet"), scoredTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output type")
}

func TestScheduleTIVs(t *testing.T) {
	tivs := scheduleTIVs(scoredTable())
	assert.Equal(t, []float64{2_500_000, 4_000_000}, tivs)
}

func TestPortfolioClient(t *testing.T) {
	assert.Equal(t, "Acme Warehousing", portfolioClient(scoredTable()))

	mixed := ledger.New("Named Insured")
	mixed.Append("Acme Warehousing")
	mixed.Append("Other Client")
	assert.Equal(t, "", portfolioClient(mixed))
}

func TestLoadSubmission(t *testing.T) {
	dir := t.TempDir()
	schedulePath := filepath.Join(dir, "schedule.csv")
	require.NoError(t, os.WriteFile(schedulePath, []byte(
		"Named Insured,Street Address,Construction Type,Year Built\n"+
			"Acme Warehousing,123 Main St,Frame,1985\n"+
			"Acme Warehousing,456 Oak Ave,Fire Resistive,2015\n"), 0o644))
	claimsPath := filepath.Join(dir, "lossrun.csv")
	require.NoError(t, os.WriteFile(claimsPath, []byte(
		"Claim Number,Loss Location Address,Total Incurred,Cause of Loss\n"+
			"C-1,123 Main St,125000,Fire\n"), 0o644))

	rec, claims, err := loadSubmission(schedulePath, claimsPath, 1)
	require.NoError(t, err)
	assert.Equal(t, "456 Oak Ave", rec.StreetAddress)
	assert.Equal(t, "Fire Resistive", rec.ConstructionType)
	require.NotNil(t, claims)
	assert.Equal(t, 1, claims.Len())
}

func TestLoadSubmission_RowOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Street Address,Construction Type\n123 Main St,Frame\n"), 0o644))

	_, _, err := loadSubmission(path, "", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
