package ingest

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
)

// loadCSV reads a single-table CSV file: header row first, variable field
// counts tolerated. The table's kind is decided by column heuristics.
func loadCSV(path string) (Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bundle{}, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Bundle{}, eris.Wrapf(err, "ingest: parse csv %s", path)
	}
	if len(records) == 0 {
		return Bundle{}, eris.Errorf("ingest: empty csv %s", path)
	}

	t := tableFromRows(records)
	return routeTable(t, path), nil
}

// loadWorkbook reads an XLSX file. Sheets named for claims or property data
// are routed by name; otherwise the first sheet is classified by its
// columns. A single workbook may carry both a schedule and a loss run.
func loadWorkbook(path string) (Bundle, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return Bundle{}, eris.Wrapf(err, "ingest: open workbook %s", path)
	}
	if len(f.Sheets) == 0 {
		return Bundle{}, eris.Errorf("ingest: workbook %s has no sheets", path)
	}

	var b Bundle
	routed := false
	for _, sheet := range f.Sheets {
		kind := sheetKind(sheet.Name)
		if kind == KindUnknown {
			continue
		}
		t := tableFromSheet(sheet)
		if t.Empty() {
			continue
		}
		switch kind {
		case KindClaims:
			if b.Claims == nil {
				b.Claims = t
				routed = true
			}
		case KindProperty:
			if b.Properties == nil {
				b.Properties = t
				routed = true
			}
		}
	}
	if routed {
		return b, nil
	}

	// No sheet name matched; fall back to classifying the first sheet.
	t := tableFromSheet(f.Sheets[0])
	return routeTable(t, path), nil
}

// routeTable places a classified table in the right Bundle slot. Unknown
// tables are treated as property schedules, which keeps loosely named
// schedules scoreable with defaults.
func routeTable(t *ledger.Table, path string) Bundle {
	switch DetectKind(t) {
	case KindClaims:
		return Bundle{Claims: t}
	case KindProperty:
		return Bundle{Properties: t}
	default:
		zap.L().Warn("data kind ambiguous, treating as property schedule",
			zap.String("path", path),
			zap.Strings("columns", t.Columns),
		)
		return Bundle{Properties: t}
	}
}

func tableFromRows(records [][]string) *ledger.Table {
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	t := ledger.New(header...)
	for _, row := range records[1:] {
		if blankRow(row) {
			continue
		}
		t.Append(row...)
	}
	return t
}

func tableFromSheet(sheet *xlsx.Sheet) *ledger.Table {
	if len(sheet.Rows) == 0 {
		return ledger.New()
	}
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.TrimSpace(cell.String())
		}
		rows = append(rows, cells)
	}
	return tableFromRows(rows)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
