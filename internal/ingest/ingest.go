// Package ingest loads underwriting submissions from disk: CSV and XLSX
// property schedules and loss runs, and JSON field maps produced by the
// ACORD form extraction boundary. Workbook sheets are routed by name, then
// by column heuristics, so a single submission file can carry both the
// schedule and its loss run.
package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-specialty/underwriting-cli/internal/acord"
	"github.com/meridian-specialty/underwriting-cli/internal/ledger"
)

// Bundle is the outcome of loading one submission file. Either table may be
// nil when the file carried only the other kind.
type Bundle struct {
	Properties *ledger.Table
	Claims     *ledger.Table
}

// Load reads a submission file, routing by extension. Returns an error when
// the file yields neither a property schedule nor a claims ledger.
func Load(path string) (Bundle, error) {
	var (
		b   Bundle
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		b, err = loadJSON(path)
	case ".xlsx":
		b, err = loadWorkbook(path)
	case ".csv":
		b, err = loadCSV(path)
	default:
		return Bundle{}, eris.Errorf("ingest: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return Bundle{}, err
	}
	if b.Properties.Empty() && b.Claims.Empty() {
		return Bundle{}, eris.Errorf("ingest: no usable data in %s", path)
	}

	zap.L().Info("submission loaded",
		zap.String("path", path),
		zap.Int("property_rows", b.Properties.Len()),
		zap.Int("claims_rows", b.Claims.Len()),
	)
	return b, nil
}

// loadJSON reads an extracted ACORD field map: a single property plus its
// optional Loss History list.
func loadJSON(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, eris.Wrapf(err, "ingest: read %s", path)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return Bundle{}, eris.Wrapf(err, "ingest: parse field map %s", path)
	}

	rec, claims := acord.RecordFromMap(fields)
	return Bundle{
		Properties: propertyTable(fields, rec.LossTypes),
		Claims:     claims,
	}, nil
}

// propertyTable builds a one-row schedule from the field map, canonical
// fields first in form order, then any extra fields sorted by name. The
// Loss History list itself stays out of the table; its derived type union
// is written to the summary column instead.
func propertyTable(fields map[string]any, derivedTypes string) *ledger.Table {
	canonical := acord.CanonicalFields()
	known := make(map[string]bool, len(canonical))
	for _, f := range canonical {
		known[f] = true
	}

	var columns, values []string
	add := func(col, val string) {
		columns = append(columns, col)
		values = append(values, val)
	}

	for _, f := range canonical {
		v, ok := fields[f]
		if !ok {
			continue
		}
		add(f, stringValue(v))
	}

	var extras []string
	for k := range fields {
		if !known[k] && k != acord.FieldLossHistory {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		add(k, stringValue(fields[k]))
	}

	t := ledger.New(columns...)
	t.Append(values...)

	if derivedTypes != "" && t.ColumnIndex(acord.FieldLossTypes) < 0 {
		t.AddColumn(acord.FieldLossTypes, []string{derivedTypes})
	}
	return t
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		// JSON numbers arrive as float64; keep integer values unadorned.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
