// ABOUTME: Frame type for small in-memory tables with named columns
// ABOUTME: Constructors from rows, int columns and random normal draws

package frame

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
)

var (
	// ErrRaggedRow is returned when a row does not have one cell per column
	ErrRaggedRow = errors.New("row length does not match column count")

	// ErrUnknownColumn is returned when a named column does not exist
	ErrUnknownColumn = errors.New("unknown column")
)

// Frame is an immutable table of named columns.
type Frame struct {
	columns []string
	rows    [][]string
}

// New creates a frame from column names and row-major cells.
// The slices are copied.
func New(columns []string, rows [][]string) (*Frame, error) {
	f := &Frame{
		columns: append([]string(nil), columns...),
		rows:    make([][]string, 0, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), len(columns), ErrRaggedRow)
		}
		f.rows = append(f.rows, append([]string(nil), row...))
	}
	return f, nil
}

// FromInts creates a frame from column-major integer data.
// All columns must have the same length.
func FromInts(columns []string, values [][]int) (*Frame, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("%d column names for %d columns", len(columns), len(values))
	}

	n := 0
	if len(values) > 0 {
		n = len(values[0])
	}

	rows := make([][]string, n)
	for i := range rows {
		rows[i] = make([]string, len(columns))
	}
	for c, col := range values {
		if len(col) != n {
			return nil, fmt.Errorf("column %q has %d values, want %d: %w", columns[c], len(col), n, ErrRaggedRow)
		}
		for r, v := range col {
			rows[r][c] = strconv.Itoa(v)
		}
	}

	return New(columns, rows)
}

// RandomNormal creates a rows×len(columns) frame of independent standard
// normal draws from rng. A nil rng uses the unseeded global source.
func RandomNormal(rng *rand.Rand, rows int, columns []string) (*Frame, error) {
	if rows < 0 {
		return nil, fmt.Errorf("negative row count %d", rows)
	}

	norm := rand.NormFloat64
	if rng != nil {
		norm = rng.NormFloat64
	}

	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, len(columns))
		for c := range columns {
			cells[r][c] = strconv.FormatFloat(norm(), 'f', -1, 64)
		}
	}

	return New(columns, cells)
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Row returns a copy of row i.
func (f *Frame) Row(i int) []string {
	return append([]string(nil), f.rows[i]...)
}

// Rows returns a copy of all rows.
func (f *Frame) Rows() [][]string {
	out := make([][]string, len(f.rows))
	for i := range f.rows {
		out[i] = f.Row(i)
	}
	return out
}

// Column returns the cells of the named column.
func (f *Frame) Column(name string) ([]string, error) {
	idx := f.columnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}

	out := make([]string, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Floats parses the named column as float64 values.
func (f *Frame) Floats(name string) ([]float64, error) {
	cells, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (f *Frame) columnIndex(name string) int {
	for i, c := range f.columns {
		if c == name {
			return i
		}
	}
	return -1
}
