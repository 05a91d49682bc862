package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/meridian-specialty/underwriting-cli/internal/acord"
	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWorkbook(t *testing.T, name string, sheets map[string][][]string, order []string) string {
	t.Helper()
	f := xlsx.NewFile()
	for _, sheetName := range order {
		sheet, err := f.AddSheet(sheetName)
		require.NoError(t, err)
		for _, row := range sheets[sheetName] {
			r := sheet.AddRow()
			for _, cell := range row {
				r.AddCell().SetString(cell)
			}
		}
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.Save(path))
	return path
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    DataKind
	}{
		{
			name:    "property schedule",
			columns: []string{"Street Address", "Construction Type", "Year Built", "TIV (Total Insurable Value)"},
			want:    KindProperty,
		},
		{
			name:    "claims loss run",
			columns: []string{"Claim Number", "Date of Loss", "Total Incurred", "Cause of Loss"},
			want:    KindClaims,
		},
		{
			name:    "ambiguous",
			columns: []string{"ID", "Notes"},
			want:    KindUnknown,
		},
		{
			name:    "repeated keyword counts once",
			columns: []string{"Claim Number", "Claim Status", "Claim Handler", "Building", "Address"},
			want:    KindProperty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(ledger.New(tt.columns...)))
		})
	}
	assert.Equal(t, KindUnknown, DetectKind(nil))
}

func TestSheetKind(t *testing.T) {
	assert.Equal(t, KindClaims, sheetKind("Loss Run 2024"))
	assert.Equal(t, KindClaims, sheetKind("Claims"))
	assert.Equal(t, KindProperty, sheetKind("SOV"))
	assert.Equal(t, KindProperty, sheetKind("Property Schedule"))
	assert.Equal(t, KindProperty, sheetKind("Locations"))
	assert.Equal(t, KindUnknown, sheetKind("Sheet1"))
	// Claims naming wins when a sheet name mentions both vocabularies.
	assert.Equal(t, KindClaims, sheetKind("Property Loss Summary"))
}

func TestLoad_CSVPropertySchedule(t *testing.T) {
	path := writeFile(t, "schedule.csv",
		"Street Address,Construction Type,Year Built,TIV (Total Insurable Value)\n"+
			"123 Main St,Frame,1995,2500000\n"+
			"\n"+
			"456 Oak Ave,Masonry Non-Combustible,2010,4000000\n")

	b, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, b.Properties)
	assert.Nil(t, b.Claims)
	assert.Equal(t, 2, b.Properties.Len())
	assert.Equal(t, "Frame", b.Properties.Get(0, "Construction Type"))
	assert.Equal(t, "456 Oak Ave", b.Properties.Get(1, "Street Address"))
}

func TestLoad_CSVClaimsLedger(t *testing.T) {
	path := writeFile(t, "lossrun.csv",
		"Claim Number,Date of Loss,Total Incurred,Cause of Loss\n"+
			"C-1,2023-01-15,125000,Fire\n")

	b, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, b.Properties)
	require.NotNil(t, b.Claims)
	assert.Equal(t, "Fire", b.Claims.Get(0, "Cause of Loss"))
}

func TestLoad_CSVAmbiguousDefaultsToProperty(t *testing.T) {
	path := writeFile(t, "misc.csv", "ID,Notes\n1,hello\n")

	b, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, b.Properties)
	assert.Nil(t, b.Claims)
}

func TestLoad_WorkbookRoutesSheetsByName(t *testing.T) {
	path := writeWorkbook(t, "submission.xlsx", map[string][][]string{
		"Property Schedule": {
			{"Street Address", "Construction Type", "Year Built"},
			{"123 Main St", "Frame", "1995"},
		},
		"Loss Run": {
			{"Claim Number", "Total Incurred", "Cause of Loss"},
			{"C-1", "125000", "Fire"},
			{"C-2", "40000", "Theft"},
		},
	}, []string{"Property Schedule", "Loss Run"})

	b, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, b.Properties)
	require.NotNil(t, b.Claims)
	assert.Equal(t, 1, b.Properties.Len())
	assert.Equal(t, 2, b.Claims.Len())
	assert.Equal(t, "Theft", b.Claims.Get(1, "Cause of Loss"))
}

func TestLoad_WorkbookUnnamedSheetFallsBackToColumns(t *testing.T) {
	path := writeWorkbook(t, "unnamed.xlsx", map[string][][]string{
		"Sheet1": {
			{"Claim Number", "Date of Loss", "Total Incurred"},
			{"C-1", "2023-01-15", "125000"},
		},
	}, []string{"Sheet1"})

	b, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, b.Properties)
	require.NotNil(t, b.Claims)
	assert.Equal(t, "125000", b.Claims.Get(0, "Total Incurred"))
}

func TestLoad_JSONFieldMap(t *testing.T) {
	path := writeFile(t, "acord.json", `{
		"Named Insured": "Acme Warehousing",
		"Street Address": "123 Main St",
		"Construction Type": "Joisted Masonry",
		"Year Built": 1988,
		"Sprinklered %": 85.5,
		"TIV (Total Insurable Value)": 4500000,
		"Inspection Notes": "roof replaced 2019",
		"Loss History": [
			{"Date of Occurrence": "2022-06-01", "Type": "Fire", "Amount Paid": "150000"},
			{"Date of Occurrence": "2023-02-10", "Type": "Theft", "Amount Paid": "20000"}
		]
	}`)

	b, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, b.Properties)
	require.NotNil(t, b.Claims)

	require.Equal(t, 1, b.Properties.Len())
	assert.Equal(t, "Acme Warehousing", b.Properties.Get(0, acord.FieldNamedInsured))
	assert.Equal(t, "1988", b.Properties.Get(0, acord.FieldYearBuilt))
	assert.Equal(t, "85.5", b.Properties.Get(0, acord.FieldSprinkleredPct))
	assert.Equal(t, "4500000", b.Properties.Get(0, acord.FieldTIV))
	// Non-canonical fields survive as extra columns after the canonical set.
	assert.Equal(t, "roof replaced 2019", b.Properties.Get(0, "Inspection Notes"))
	// The loss-type union derived from the history list lands in the summary column.
	assert.Equal(t, "Fire, Theft", b.Properties.Get(0, acord.FieldLossTypes))

	assert.Equal(t, 2, b.Claims.Len())
	assert.Equal(t, "Fire", b.Claims.Get(0, acord.LossType))
	assert.Equal(t, "123 Main St", b.Claims.Get(0, acord.FieldStreetAddress))
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "doc.txt", "hello")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestLoad_EmptyCSV(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty csv")
}
