// Package ledger provides a loosely-typed tabular dataset used for property
// schedules and claims loss runs, where column names vary by carrier and are
// discovered by predicate rather than fixed schema.
package ledger

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Table holds a header row plus string cells. Cell values keep whatever the
// upstream extraction produced; numeric coercion happens at read time.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Append adds a row, padding or truncating to the column count.
func (t *Table) Append(row ...string) {
	cells := make([]string, len(t.Columns))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table is nil or has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the index of the named column (case-insensitive),
// or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// FindColumn returns the first column (in stable declaration order) whose
// name satisfies pred. Ambiguity resolves to the first candidate.
func (t *Table) FindColumn(pred func(name string) bool) (int, bool) {
	if t == nil {
		return -1, false
	}
	for i, c := range t.Columns {
		if pred(c) {
			return i, true
		}
	}
	return -1, false
}

// FindColumns returns all column indices whose name satisfies pred,
// in declaration order.
func (t *Table) FindColumns(pred func(name string) bool) []int {
	if t == nil {
		return nil
	}
	var idxs []int
	for i, c := range t.Columns {
		if pred(c) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Cell returns the cell at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}

// Get returns the cell in the named column for the given row, or "" when
// the column is absent.
func (t *Table) Get(row int, name string) string {
	return t.Cell(row, t.ColumnIndex(name))
}

// Clone returns a deep copy. Callers that append score columns work on the
// copy so the input table is never mutated.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

// AddColumn appends a column with the given per-row values. Missing values
// fill with "".
func (t *Table) AddColumn(name string, values []string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		t.Rows[i] = append(t.Rows[i], v)
	}
}

// SetCell writes a cell value, growing the row if a column was added after
// the row was appended.
func (t *Table) SetCell(row, col int, value string) error {
	if t == nil || row < 0 || row >= len(t.Rows) {
		return eris.Errorf("ledger: row %d out of range", row)
	}
	if col < 0 || col >= len(t.Columns) {
		return eris.Errorf("ledger: column %d out of range", col)
	}
	for len(t.Rows[row]) < len(t.Columns) {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
	return nil
}

// Validate reports a structural contract violation: a table that exists but
// has no columns cannot be scored and indicates a broken upstream loader.
func (t *Table) Validate() error {
	if t == nil {
		return eris.New("ledger: nil table")
	}
	if len(t.Columns) == 0 {
		return eris.New("ledger: table has no columns")
	}
	return nil
}
