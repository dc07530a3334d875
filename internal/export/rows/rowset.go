// Package rows flattens aggregator output into fixed-column row sets, the
// shape every export format consumes.
package rows

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRowSet = errors.New("invalid_row_set")

// Cell is one display value. Numeric cells keep their integer value so the
// workbook can store real numbers.
type Cell struct {
	Text    string
	Number  int64
	Numeric bool
}

func Text(s string) Cell { return Cell{Text: s} }

func Int(n int64) Cell { return Cell{Number: n, Numeric: true} }

func (c Cell) String() string {
	if c.Numeric {
		return strconv.FormatInt(c.Number, 10)
	}
	return c.Text
}

// Value returns the cell as an int64 or a string.
func (c Cell) Value() any {
	if c.Numeric {
		return c.Number
	}
	return c.Text
}

// MetricRow holds cells aligned with the owning RowSet's columns.
type MetricRow []Cell

type RowSet struct {
	Name    string
	Columns []string
	Rows    []MetricRow
}

// NewRowSet validates that every row carries exactly one cell per column.
func NewRowSet(name string, columns []string, rows []MetricRow) (RowSet, error) {
	if strings.TrimSpace(name) == "" {
		return RowSet{}, fmt.Errorf("%w: name is required", ErrInvalidRowSet)
	}
	if len(columns) == 0 {
		return RowSet{}, fmt.Errorf("%w: %s has no columns", ErrInvalidRowSet, name)
	}

	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if strings.TrimSpace(col) == "" {
			return RowSet{}, fmt.Errorf("%w: %s has a blank column", ErrInvalidRowSet, name)
		}
		if _, dup := seen[col]; dup {
			return RowSet{}, fmt.Errorf("%w: %s repeats column %q", ErrInvalidRowSet, name, col)
		}
		seen[col] = struct{}{}
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return RowSet{}, fmt.Errorf("%w: %s row %d has %d cells, want %d", ErrInvalidRowSet, name, i, len(row), len(columns))
		}
	}

	return RowSet{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Rows:    rows,
	}, nil
}

func (s RowSet) Empty() bool { return len(s.Rows) == 0 }

// Strings renders each row as display strings.
func (s RowSet) Strings() [][]string {
	out := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		line := make([]string, len(row))
		for i, c := range row {
			line[i] = c.String()
		}
		out = append(out, line)
	}
	return out
}
