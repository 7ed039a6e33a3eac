// Copyright (c) 2023 Colin McRae

// Package bigmatrix holds the row-addressable containers the GSO engine
// mutates in place: IntMatrix for the basis and its transforms, FloatMatrix
// for the scaled float image and the mu/r tables, and GramInt/GramFloat for
// the triangular Gram companion in either representation.
package bigmatrix

import (
	"fmt"

	"github.com/fplll-go/gso/bignumber"
)

// IntMatrix is a row-major, row-addressable matrix of bignumber.Int,
// grounded on the teacher's BigMatrix row-major layout (bigmatrix.go), but
// specialized to exact integers and extended with the row-shuffling
// primitives (SwapRows, RotateRight, RotateLeft, Resize) the engine's row
// operations need.
type IntMatrix struct {
	values  []*bignumber.Int
	numRows int
	numCols int
}

// NewIntEmpty returns a numRows x numCols matrix of zeros.
func NewIntEmpty(numRows, numCols int) *IntMatrix {
	if numRows < 0 {
		numRows = 0
	}
	if numCols < 0 {
		numCols = 0
	}
	m := &IntMatrix{numRows: numRows, numCols: numCols}
	if numRows*numCols == 0 {
		return m
	}
	m.values = make([]*bignumber.Int, numRows*numCols)
	for i := range m.values {
		m.values[i] = bignumber.NewIntFromInt64(0)
	}
	return m
}

// NewIntIdentity returns a dim x dim identity matrix.
func NewIntIdentity(dim int) (*IntMatrix, error) {
	if dim < 1 {
		return nil, fmt.Errorf("NewIntIdentity: dimension %d < 1", dim)
	}
	m := NewIntEmpty(dim, dim)
	for i := 0; i < dim; i++ {
		m.values[i*dim+i] = bignumber.NewIntFromInt64(1)
	}
	return m, nil
}

// NewIntFromInt64Array builds a numRows x numCols matrix from a row-major
// []int64.
func NewIntFromInt64Array(input []int64, numRows, numCols int) (*IntMatrix, error) {
	if len(input) != numRows*numCols {
		return nil, fmt.Errorf("NewIntFromInt64Array: length %d does not match %dx%d", len(input), numRows, numCols)
	}
	m := NewIntEmpty(numRows, numCols)
	for i, v := range input {
		m.values[i] = bignumber.NewIntFromInt64(v)
	}
	return m, nil
}

// NumRows returns the number of rows.
func (m *IntMatrix) NumRows() int { return m.numRows }

// NumCols returns the number of columns.
func (m *IntMatrix) NumCols() int { return m.numCols }

// Get returns the entry at (i,j).
func (m *IntMatrix) Get(i, j int) (*bignumber.Int, error) {
	if err := m.checkIndex(i, j); err != nil {
		return nil, err
	}
	return m.values[i*m.numCols+j], nil
}

// Set sets the entry at (i,j) to a deep copy of x.
func (m *IntMatrix) Set(i, j int, x *bignumber.Int) error {
	if err := m.checkIndex(i, j); err != nil {
		return err
	}
	m.values[i*m.numCols+j] = bignumber.NewIntFromInt64(0).Set(x)
	return nil
}

func (m *IntMatrix) checkIndex(i, j int) error {
	if i < 0 || i >= m.numRows || j < 0 || j >= m.numCols {
		return fmt.Errorf("IntMatrix: index (%d,%d) out of range for %dx%d matrix", i, j, m.numRows, m.numCols)
	}
	return nil
}

// Row returns the backing slice for row i, suitable for the engine's
// prefix-limited in-place row operations (add/sub/addmul). The slice aliases
// the matrix's storage; callers must not retain it across a Resize or
// RotateLeft/RotateRight, which reallocate or reorder storage.
func (m *IntMatrix) Row(i int) ([]*bignumber.Int, error) {
	if i < 0 || i >= m.numRows {
		return nil, fmt.Errorf("IntMatrix.Row: row %d out of range for %d rows", i, m.numRows)
	}
	return m.values[i*m.numCols : (i+1)*m.numCols], nil
}

// SwapRows exchanges rows i and j in place.
func (m *IntMatrix) SwapRows(i, j int) error {
	if err := m.checkIndex(i, 0); err != nil {
		return err
	}
	if err := m.checkIndex(j, 0); err != nil {
		return err
	}
	ri, _ := m.Row(i)
	rj, _ := m.Row(j)
	for k := 0; k < m.numCols; k++ {
		ri[k], rj[k] = rj[k], ri[k]
	}
	return nil
}

// RotateRight right-rotates the slice of rows [first, last] by one: the row
// at last moves to first, and every other row in the range shifts down by
// one. Grounded on move_row's "new < old" case in spec §4.4.
func (m *IntMatrix) RotateRight(first, last int) error {
	if first < 0 || last >= m.numRows || first > last {
		return fmt.Errorf("IntMatrix.RotateRight: invalid range [%d,%d] for %d rows", first, last, m.numRows)
	}
	lastRow, _ := m.Row(last)
	saved := make([]*bignumber.Int, m.numCols)
	copy(saved, lastRow)
	for i := last; i > first; i-- {
		src, _ := m.Row(i - 1)
		dst, _ := m.Row(i)
		copy(dst, src)
	}
	dst, _ := m.Row(first)
	copy(dst, saved)
	return nil
}

// RotateLeft left-rotates the slice of rows [first, last] by one: the row at
// first moves to last, and every other row in the range shifts up by one.
// Grounded on move_row's "new > old" case in spec §4.4.
func (m *IntMatrix) RotateLeft(first, last int) error {
	if first < 0 || last >= m.numRows || first > last {
		return fmt.Errorf("IntMatrix.RotateLeft: invalid range [%d,%d] for %d rows", first, last, m.numRows)
	}
	firstRow, _ := m.Row(first)
	saved := make([]*bignumber.Int, m.numCols)
	copy(saved, firstRow)
	for i := first; i < last; i++ {
		src, _ := m.Row(i + 1)
		dst, _ := m.Row(i)
		copy(dst, src)
	}
	dst, _ := m.Row(last)
	copy(dst, saved)
	return nil
}

// Resize grows (never shrinks in place — callers truncate separately via
// Shrink) the matrix to newRows x newCols, zero-filling new entries and
// preserving existing ones. Pointers obtained from Row before Resize are
// invalidated, per the engine's resource model (spec §5).
func (m *IntMatrix) Resize(newRows, newCols int) {
	if newRows < m.numRows {
		newRows = m.numRows
	}
	if newCols < m.numCols {
		newCols = m.numCols
	}
	if newRows == m.numRows && newCols == m.numCols {
		return
	}
	replacement := NewIntEmpty(newRows, newCols)
	for i := 0; i < m.numRows; i++ {
		for j := 0; j < m.numCols; j++ {
			replacement.values[i*newCols+j] = m.values[i*m.numCols+j]
		}
	}
	m.values = replacement.values
	m.numRows = newRows
	m.numCols = newCols
}

// Shrink drops the last numRows-newRows rows of the matrix.
func (m *IntMatrix) Shrink(newRows int) error {
	if newRows < 0 || newRows > m.numRows {
		return fmt.Errorf("IntMatrix.Shrink: invalid newRows %d for %d rows", newRows, m.numRows)
	}
	m.values = m.values[:newRows*m.numCols]
	m.numRows = newRows
	return nil
}

// AppendZeroRows appends n zero rows at the end of the matrix.
func (m *IntMatrix) AppendZeroRows(n int) {
	for k := 0; k < n; k++ {
		for j := 0; j < m.numCols; j++ {
			m.values = append(m.values, bignumber.NewIntFromInt64(0))
		}
	}
	m.numRows += n
}
