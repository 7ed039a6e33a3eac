package engine

import (
	"github.com/fplll-go/gso/bigmatrix"
	"github.com/fplll-go/gso/bignumber"
	"github.com/fplll-go/gso/gsoerr"
)

// ApplyTransform implements spec §4.6's apply_transform(T, src_base,
// target_base): it appends rows(T) scratch rows at the current dimension,
// computes scratch row t as Σ_k T(t,k)·b[src_base+k] via repeated
// row_addmul, row-swaps the scratch rows into [target_base,
// target_base+rows(T)), and removes the now-relocated originals from the
// trailing scratch positions.
func (e *Engine) ApplyTransform(t *bigmatrix.IntMatrix, srcBase, targetBase int) error {
	rowsT := t.NumRows()
	if rowsT == 0 {
		return nil
	}
	colsT := t.NumCols()
	if srcBase < 0 || srcBase+colsT > e.D() {
		return gsoerr.NewPreconditionError("ApplyTransform", "src_base=%d, cols(T)=%d out of range for d=%d", srcBase, colsT, e.D())
	}
	if targetBase < 0 || targetBase+rowsT > e.D() {
		return gsoerr.NewPreconditionError("ApplyTransform", "target_base=%d, rows(T)=%d out of range for d=%d", targetBase, rowsT, e.D())
	}

	scratchStart := e.D()
	e.sizeIncreased(scratchStart + rowsT)

	if err := e.RowOpBegin(scratchStart, scratchStart+rowsT); err != nil {
		return err
	}
	for row := 0; row < rowsT; row++ {
		dst := scratchStart + row
		for k := 0; k < colsT; k++ {
			x, err := t.Get(row, k)
			if err != nil {
				return err
			}
			if x.IsZero() {
				continue
			}
			if err := e.RowAddMul2Exp(dst, srcBase+k, x, 0); err != nil {
				return err
			}
		}
	}
	if err := e.RowOpEnd(scratchStart, scratchStart+rowsT); err != nil {
		return err
	}

	for i := 0; i < rowsT; i++ {
		if err := e.RowSwap(targetBase+i, scratchStart+i); err != nil {
			return err
		}
	}
	return e.RemoveLastRows(rowsT)
}

// BabaiRound implements the standard Babai nearest-plane size-reduction
// step, not named in spec.md's row-operation table: it size-reduces row i
// against every already-orthogonalized row below it by subtracting
// round(mu(i,k))*b[k], descending from k=i-1 to 0 so each step sees mu
// recomputed against the updated row. The rounding itself is grounded on
// the teacher's RoundTowardsZero/Int64RoundTowardsZero helpers on BigNumber
// (bignumber.go:647).
func (e *Engine) BabaiRound(i int) error {
	if err := e.checkRowIndex("BabaiRound", i); err != nil {
		return err
	}
	for k := i - 1; k >= 0; k-- {
		mu, err := e.GetMu(i, k)
		if err != nil {
			return err
		}
		rounded, ok := mu.RoundToInt()
		if !ok {
			return gsoerr.NewNumericNonFiniteError(i, k)
		}
		if rounded.IsZero() {
			continue
		}
		neg := bignumber.NewIntFromInt64(0).Neg(rounded)
		if err := e.RowOpBegin(i, i+1); err != nil {
			return err
		}
		if err := e.RowAddMul2Exp(i, k, neg, 0); err != nil {
			return err
		}
		if err := e.RowOpEnd(i, i+1); err != nil {
			return err
		}
	}
	return nil
}
