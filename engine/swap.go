package engine

import "github.com/fplll-go/gso/gsoerr"

// RowSwap implements spec §4.4's row_swap(i,j), i<j: physically swaps rows
// i and j of b (and u, bf, row_expo), mirrors the exact Gram rearrangement
// when int_gram, and invalidates exactly the GSO state that depends on the
// swapped identities — rows i and j lose their own validity entirely (the
// vector occupying each position changed), and every other row beyond i
// loses validity from column i onward (spec §9's minimum-write
// convention, applied row-wise here since row_swap is not itself a
// row_op-bracketed mutation).
//
// Forbidden when inv_transform_enabled: spec §4.4 and §9's second Open
// Question leave no supported alternative, so this returns a
// PreconditionError rather than silently skipping u_inv_t.
func (e *Engine) RowSwap(i, j int) error {
	if e.cfg.InvTransformEnabled {
		return gsoerr.NewPreconditionError("RowSwap", "forbidden when inv_transform_enabled")
	}
	if i >= j {
		return gsoerr.NewPreconditionError("RowSwap", "requires i<j, got i=%d j=%d", i, j)
	}
	if err := e.checkRowIndex("RowSwap", i); err != nil {
		return err
	}
	if err := e.checkRowIndex("RowSwap", j); err != nil {
		return err
	}
	e.ensureDiscovered(j)

	if err := e.b.SwapRows(i, j); err != nil {
		return err
	}
	if e.cfg.TransformEnabled {
		if err := e.u.SwapRows(i, j); err != nil {
			return err
		}
	}
	if e.cfg.IntGram {
		if err := e.g.SwapRows(i, j); err != nil {
			return err
		}
	} else {
		if err := e.bf.SwapRows(i, j); err != nil {
			return err
		}
		if e.rowExpo != nil {
			e.rowExpo[i], e.rowExpo[j] = e.rowExpo[j], e.rowExpo[i]
		}
		if err := e.gf.InvalidateRow(i); err != nil {
			return err
		}
		if err := e.gf.InvalidateRow(j); err != nil {
			return err
		}
	}

	e.gsoValidCols[i] = 0
	e.gsoValidCols[j] = 0
	for k := i + 1; k < e.nKnownRows; k++ {
		if k == j {
			continue
		}
		if e.gsoValidCols[k] > i {
			e.gsoValidCols[k] = i
		}
	}
	return nil
}
