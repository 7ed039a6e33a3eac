package bigmatrix

import (
	"fmt"

	"github.com/fplll-go/gso/bignumber"
)

// FloatMatrix is the float counterpart of IntMatrix, used for the scaled
// basis image bf and the mu/r triangular tables.
type FloatMatrix struct {
	values  []*bignumber.Float
	numRows int
	numCols int
}

// NewFloatEmpty returns a numRows x numCols matrix of zeros.
func NewFloatEmpty(numRows, numCols int) *FloatMatrix {
	if numRows < 0 {
		numRows = 0
	}
	if numCols < 0 {
		numCols = 0
	}
	m := &FloatMatrix{numRows: numRows, numCols: numCols}
	if numRows*numCols == 0 {
		return m
	}
	m.values = make([]*bignumber.Float, numRows*numCols)
	for i := range m.values {
		m.values[i] = bignumber.NewFloat()
	}
	return m
}

// NewFloatNaN returns a numRows x numCols matrix where every entry is the
// NaN sentinel. The engine's gf is a GramFloat, which fills its own
// discovered rows with NaN; this constructor is not used for it.
func NewFloatNaN(numRows, numCols int) *FloatMatrix {
	m := NewFloatEmpty(numRows, numCols)
	for i := range m.values {
		m.values[i] = bignumber.NaN()
	}
	return m
}

func (m *FloatMatrix) NumRows() int { return m.numRows }
func (m *FloatMatrix) NumCols() int { return m.numCols }

func (m *FloatMatrix) checkIndex(i, j int) error {
	if i < 0 || i >= m.numRows || j < 0 || j >= m.numCols {
		return fmt.Errorf("FloatMatrix: index (%d,%d) out of range for %dx%d matrix", i, j, m.numRows, m.numCols)
	}
	return nil
}

// Get returns the entry at (i,j).
func (m *FloatMatrix) Get(i, j int) (*bignumber.Float, error) {
	if err := m.checkIndex(i, j); err != nil {
		return nil, err
	}
	return m.values[i*m.numCols+j], nil
}

// Set sets the entry at (i,j) to a deep copy of x.
func (m *FloatMatrix) Set(i, j int, x *bignumber.Float) error {
	if err := m.checkIndex(i, j); err != nil {
		return err
	}
	m.values[i*m.numCols+j] = bignumber.NewFloat().Set(x)
	return nil
}

// SetNaN marks entry (i,j) as the NaN sentinel, invalidating it.
func (m *FloatMatrix) SetNaN(i, j int) error {
	if err := m.checkIndex(i, j); err != nil {
		return err
	}
	m.values[i*m.numCols+j] = bignumber.NaN()
	return nil
}

// Row returns the backing slice for row i. See IntMatrix.Row for aliasing
// caveats.
func (m *FloatMatrix) Row(i int) ([]*bignumber.Float, error) {
	if i < 0 || i >= m.numRows {
		return nil, fmt.Errorf("FloatMatrix.Row: row %d out of range for %d rows", i, m.numRows)
	}
	return m.values[i*m.numCols : (i+1)*m.numCols], nil
}

// SwapRows exchanges rows i and j in place.
func (m *FloatMatrix) SwapRows(i, j int) error {
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

// RotateRight mirrors IntMatrix.RotateRight.
func (m *FloatMatrix) RotateRight(first, last int) error {
	if first < 0 || last >= m.numRows || first > last {
		return fmt.Errorf("FloatMatrix.RotateRight: invalid range [%d,%d] for %d rows", first, last, m.numRows)
	}
	lastRow, _ := m.Row(last)
	saved := make([]*bignumber.Float, m.numCols)
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

// RotateLeft mirrors IntMatrix.RotateLeft.
func (m *FloatMatrix) RotateLeft(first, last int) error {
	if first < 0 || last >= m.numRows || first > last {
		return fmt.Errorf("FloatMatrix.RotateLeft: invalid range [%d,%d] for %d rows", first, last, m.numRows)
	}
	firstRow, _ := m.Row(first)
	saved := make([]*bignumber.Float, m.numCols)
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

// Resize grows the matrix to newRows x newCols, zero-filling new entries.
func (m *FloatMatrix) Resize(newRows, newCols int) {
	if newRows < m.numRows {
		newRows = m.numRows
	}
	if newCols < m.numCols {
		newCols = m.numCols
	}
	if newRows == m.numRows && newCols == m.numCols {
		return
	}
	replacement := NewFloatEmpty(newRows, newCols)
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
func (m *FloatMatrix) Shrink(newRows int) error {
	if newRows < 0 || newRows > m.numRows {
		return fmt.Errorf("FloatMatrix.Shrink: invalid newRows %d for %d rows", newRows, m.numRows)
	}
	m.values = m.values[:newRows*m.numCols]
	m.numRows = newRows
	return nil
}

// AppendZeroRows appends n zero rows at the end of the matrix.
func (m *FloatMatrix) AppendZeroRows(n int) {
	for k := 0; k < n; k++ {
		for j := 0; j < m.numCols; j++ {
			m.values = append(m.values, bignumber.NewFloat())
		}
	}
	m.numRows += n
}
