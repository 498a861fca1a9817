// Package table holds the string-celled tables produced by the pipeline and the
// writers, reader and joiner that move them to and from disk.
package table

import (
	"fmt"
	"slices"
	"strings"
)

// Table is a column-named set of rows. Rows are expected, but not required, to
// have len(Columns) cells; permissive joins may produce ragged rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Append adds a row. It does not check the row width.
func (t *Table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

// Select returns a new table with the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, n := range names {
		idx[i] = t.ColumnIndex(n)
		if idx[i] < 0 {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("columns not found: %s", strings.Join(missing, ", "))
	}
	out := New(names...)
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		sel := make([]string, len(idx))
		for i, j := range idx {
			if j < len(row) {
				sel[i] = row[j]
			}
		}
		out.Rows[r] = sel
	}
	return out, nil
}

// SameColumns reports whether both tables have identical column lists.
func SameColumns(a, b *Table) bool {
	return slices.Equal(a.Columns, b.Columns)
}
