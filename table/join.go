package table

import (
	"fmt"
	"strings"

	"github.com/Aarondulong/EH804Project/qaerrors"
)

// JoinMode controls how Join treats inputs whose columns differ.
type JoinMode string

const (
	// JoinStrict rejects the join before any row is copied.
	JoinStrict JoinMode = "strict"
	// JoinPermissive keeps the first input's header and appends every row
	// unchanged, even when that leaves rows misaligned.
	JoinPermissive JoinMode = "permissive"
)

// ParseJoinMode accepts "strict" or "permissive". Empty means strict.
func ParseJoinMode(s string) (JoinMode, error) {
	switch JoinMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", JoinStrict:
		return JoinStrict, nil
	case JoinPermissive:
		return JoinPermissive, nil
	default:
		return "", fmt.Errorf("unknown join mode %q", s)
	}
}

// Join concatenates tables row-wise in input order.
func Join(tables []*Table, mode JoinMode) (*Table, error) {
	if len(tables) == 0 {
		return nil, qaerrors.NewValidationError("join needs at least one table", nil)
	}
	first := tables[0]
	if mode != JoinPermissive {
		for i, t := range tables[1:] {
			if !SameColumns(first, t) {
				return nil, qaerrors.NewSchemaMismatchError("input columns differ", nil).
					WithContext("input", i+1).
					WithContext("want", strings.Join(first.Columns, ",")).
					WithContext("got", strings.Join(t.Columns, ","))
			}
		}
	}

	total := 0
	for _, t := range tables {
		total += t.Len()
	}
	out := New(first.Columns...)
	out.Rows = make([][]string, 0, total)
	for _, t := range tables {
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out, nil
}

// JoinFiles reads each CSV input, joins them and writes the master table to
// PathFor(out, format), so the file extension always matches its contents.
// Nothing is written when any input fails to read or the join is rejected.
func JoinFiles(out string, inputs []string, mode JoinMode, format Format) (*Table, error) {
	tables := make([]*Table, 0, len(inputs))
	for _, in := range inputs {
		t, err := ReadCSV(in)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	joined, err := Join(tables, mode)
	if err != nil {
		return nil, fmt.Errorf("join %d tables: %w", len(inputs), err)
	}
	if err := Write(PathFor(out, format), joined, format); err != nil {
		return nil, err
	}
	return joined, nil
}
