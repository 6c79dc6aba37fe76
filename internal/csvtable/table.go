// Package csvtable parses delimited text into a row/column table.
//
// Rows are separated by newlines and columns by ',' or ';'. Fields may be
// wrapped in double quotes, with "" standing for a literal quote; quoted
// fields may span lines. When the delimiter is not given it is guessed from
// the first line.
package csvtable

import (
	"errors"
	"slices"
)

// ErrMalformed marks input that cannot be read as a table.
var ErrMalformed = errors.New("malformed csv")

// Table is parsed CSV content. With a header row, every record has exactly
// len(Header()) fields.
type Table struct {
	header []string
	rows   [][]string
	col    map[string]int
}

// NewTable builds a table from a header and rows. A nil header means the
// table has no named columns.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{header: slices.Clone(header), col: map[string]int{}}
	for i, h := range t.header {
		if _, dup := t.col[h]; !dup {
			t.col[h] = i
		}
	}
	t.rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		t.rows = append(t.rows, slices.Clone(r))
	}
	return t
}

func (t *Table) Header() []string { return slices.Clone(t.header) }

func (t *Table) HasHeader() bool { return t.header != nil }

// Rows returns data rows, excluding the header.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = slices.Clone(r)
	}
	return out
}

func (t *Table) Len() int { return len(t.rows) }

// Cell returns the field at row/column index.
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.rows[row]) {
		return "", false
	}
	return t.rows[row][col], true
}

// Get returns the field in row under the named column.
func (t *Table) Get(row int, column string) (string, bool) {
	i, ok := t.col[column]
	if !ok {
		return "", false
	}
	return t.Cell(row, i)
}

// Column returns every value of the named column, or nil if it is unknown.
func (t *Table) Column(name string) []string {
	i, ok := t.col[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		if i < len(r) {
			out = append(out, r[i])
		} else {
			out = append(out, "")
		}
	}
	return out
}

// Record maps column name to value for one row. Returns nil when the row is
// out of range or the table has no header.
func (t *Table) Record(row int) map[string]string {
	if t.header == nil || row < 0 || row >= len(t.rows) {
		return nil
	}
	rec := make(map[string]string, len(t.header))
	for name, i := range t.col {
		if i < len(t.rows[row]) {
			rec[name] = t.rows[row][i]
		}
	}
	return rec
}

func (t *Table) Records() []map[string]string {
	if t.header == nil {
		return nil
	}
	out := make([]map[string]string, 0, len(t.rows))
	for i := range t.rows {
		out = append(out, t.Record(i))
	}
	return out
}
