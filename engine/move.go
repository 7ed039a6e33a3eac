package engine

import "github.com/fplll-go/gso/gsoerr"

func rotateIntSliceRight(s []int, first, last int) {
	saved := s[last]
	copy(s[first+1:last+1], s[first:last])
	s[first] = saved
}

func rotateIntSliceLeft(s []int, first, last int) {
	saved := s[first]
	copy(s[first:last], s[first+1:last+1])
	s[last] = saved
}

func rotateInt64SliceRight(s []int64, first, last int) {
	saved := s[last]
	copy(s[first+1:last+1], s[first:last])
	s[first] = saved
}

func rotateInt64SliceLeft(s []int64, first, last int) {
	saved := s[first]
	copy(s[first:last], s[first+1:last+1])
	s[last] = saved
}

// nzWidth returns 1 + the index of the last nonzero entry of row, or 1 if
// row is entirely zero — the init_row_size refresh move_row performs on a
// row retracted to unknown (spec §4.4).
func (e *Engine) nzWidth(i int) int {
	row, err := e.b.Row(i)
	if err != nil {
		return 1
	}
	for k := len(row) - 1; k >= 0; k-- {
		if !row[k].IsZero() {
			return k + 1
		}
	}
	return 1
}

// MoveRow implements spec §4.4's move_row(old,new): a logical rotation of
// all row-indexed state. old must already be a known row; new may extend
// past the currently known range, in which case the moved row becomes
// unknown again (V6's explicit retraction escape hatch).
func (e *Engine) MoveRow(old, new int) error {
	d := e.D()
	if old < 0 || old >= e.nKnownRows {
		return gsoerr.NewPreconditionError("MoveRow", "old=%d must be a known row (< %d)", old, e.nKnownRows)
	}
	if new < 0 || new > d {
		return gsoerr.NewPreconditionError("MoveRow", "new=%d out of range [0,%d]", new, d)
	}
	if new == old {
		return nil
	}
	e.sizeIncreased(max(d, new+1))

	if new < old {
		if err := e.rotateRowState(new, old, old, true); err != nil {
			return err
		}
		for i := new; i < e.nKnownRows; i++ {
			if e.gsoValidCols[i] > new {
				e.gsoValidCols[i] = new
			}
		}
		return nil
	}

	// new > old
	priorKnownRows := e.nKnownRows
	gramLast := new
	if gramLast > priorKnownRows-1 {
		gramLast = priorKnownRows - 1
	}
	if err := e.rotateRowState(old, new, gramLast, false); err != nil {
		return err
	}
	for i := old; i < priorKnownRows; i++ {
		if e.gsoValidCols[i] > old {
			e.gsoValidCols[i] = old
		}
	}
	if new >= priorKnownRows {
		e.nKnownRows = old
		if !e.colsLocked {
			e.nSourceRows = e.nKnownRows
		}
		e.initRowSize[new] = e.nzWidth(new)
	}
	return nil
}

// rotateRowState rotates every row-indexed container over [first,last],
// except the Gram companion (g or gf), which only ever holds entries for
// known rows and is instead rotated over [first,gramLast] — gramLast is
// clamped by the caller to nKnownRows-1 for the "new > old, new beyond
// known rows" case, where the destination slot has no Gram row to carry.
func (e *Engine) rotateRowState(first, last, gramLast int, right bool) error {
	if right {
		if err := e.b.RotateRight(first, last); err != nil {
			return err
		}
		if e.cfg.TransformEnabled {
			if err := e.u.RotateRight(first, last); err != nil {
				return err
			}
		}
		if e.cfg.InvTransformEnabled {
			if err := e.uInvT.RotateRight(first, last); err != nil {
				return err
			}
		}
		if err := e.mu.RotateRight(first, last); err != nil {
			return err
		}
		if err := e.r.RotateRight(first, last); err != nil {
			return err
		}
		if e.cfg.IntGram {
			if gramLast > first {
				if err := e.g.RotateRight(first, gramLast); err != nil {
					return err
				}
			}
		} else {
			if err := e.bf.RotateRight(first, last); err != nil {
				return err
			}
			if gramLast > first {
				if err := e.gf.RotateRight(first, gramLast); err != nil {
					return err
				}
			}
			if e.rowExpo != nil {
				rotateInt64SliceRight(e.rowExpo, first, last)
			}
		}
		rotateIntSliceRight(e.initRowSize, first, last)
		rotateIntSliceRight(e.gsoValidCols, first, last)
		return nil
	}

	if err := e.b.RotateLeft(first, last); err != nil {
		return err
	}
	if e.cfg.TransformEnabled {
		if err := e.u.RotateLeft(first, last); err != nil {
			return err
		}
	}
	if e.cfg.InvTransformEnabled {
		if err := e.uInvT.RotateLeft(first, last); err != nil {
			return err
		}
	}
	if err := e.mu.RotateLeft(first, last); err != nil {
		return err
	}
	if err := e.r.RotateLeft(first, last); err != nil {
		return err
	}
	if e.cfg.IntGram {
		if gramLast > first {
			if err := e.g.RotateLeft(first, gramLast); err != nil {
				return err
			}
		}
	} else {
		if err := e.bf.RotateLeft(first, last); err != nil {
			return err
		}
		if gramLast > first {
			if err := e.gf.RotateLeft(first, gramLast); err != nil {
				return err
			}
		}
		if e.rowExpo != nil {
			rotateInt64SliceLeft(e.rowExpo, first, last)
		}
	}
	rotateIntSliceLeft(e.initRowSize, first, last)
	rotateIntSliceLeft(e.gsoValidCols, first, last)
	return nil
}

// RemoveLastRows implements spec §6's remove_last_rows(k): shrinks d by k,
// dropping the trailing k rows entirely (they are not merely marked
// unknown — their storage is released, unlike move_row's retraction).
func (e *Engine) RemoveLastRows(k int) error {
	d := e.D()
	if k < 0 || k > d {
		return gsoerr.NewPreconditionError("RemoveLastRows", "k=%d out of range [0,%d]", k, d)
	}
	newD := d - k
	if err := e.b.Shrink(newD); err != nil {
		return err
	}
	if e.cfg.TransformEnabled {
		if err := e.u.Shrink(newD); err != nil {
			return err
		}
	}
	if e.cfg.InvTransformEnabled {
		if err := e.uInvT.Shrink(newD); err != nil {
			return err
		}
	}
	if e.cfg.IntGram {
		if e.g.NumRows() > newD {
			if err := e.g.Shrink(newD); err != nil {
				return err
			}
		}
	} else {
		if err := e.bf.Shrink(newD); err != nil {
			return err
		}
		if e.gf.NumRows() > newD {
			if err := e.gf.Shrink(newD); err != nil {
				return err
			}
		}
		if e.rowExpo != nil {
			e.rowExpo = e.rowExpo[:newD]
		}
	}
	if err := e.mu.Shrink(newD); err != nil {
		return err
	}
	if err := e.r.Shrink(newD); err != nil {
		return err
	}
	e.initRowSize = e.initRowSize[:newD]
	e.gsoValidCols = e.gsoValidCols[:newD]
	e.allocDim = newD
	if e.nKnownRows > newD {
		e.nKnownRows = newD
	}
	if e.nSourceRows > newD {
		e.nSourceRows = newD
	}
	return nil
}
