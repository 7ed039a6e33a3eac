package engine

import (
	"github.com/fplll-go/gso/bignumber"
	"github.com/fplll-go/gso/gsoerr"
)

// gram returns t = gram(i,j): the exact integer Gram entry (converted to
// Float) when int_gram, or the float Gram entry gf(i,j), recomputed from bf
// if the NaN sentinel is present. This is the scaled-domain inner product
// spec §4.3 step 1 describes.
func (e *Engine) gram(i, j int) (*bignumber.Float, error) {
	if e.cfg.IntGram {
		v, err := e.g.Get(i, j)
		if err != nil {
			return nil, err
		}
		mant, expo := v.ToFloatWithExponent()
		return bignumber.NewFloat().ScaleBy2(mant, expo), nil
	}
	v, err := e.gf.Get(i, j)
	if err != nil {
		return nil, err
	}
	if !v.IsNaN() {
		return v, nil
	}
	bi, _ := e.bf.Row(i)
	bj, _ := e.bf.Row(j)
	acc := bignumber.NewFloat()
	for k := 0; k < e.bf.NumCols(); k++ {
		acc.MulAdd(bi[k], bj[k])
	}
	if err := e.gf.Set(i, j, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// UpdateGSORow implements spec §4.3's update_gso_row(i, lastJ): brings
// mu(i,0..lastJ] and r(i,0..lastJ] up to date. Returns false (without error)
// exactly when a non-finite mu was encountered — spec §7's NumericNonFinite
// kind, surfaced as a bool per the external interface table in spec §6 —
// and leaves gso_valid_cols[i] at the last successfully completed column.
func (e *Engine) UpdateGSORow(i, lastJ int) (bool, error) {
	if i < 0 {
		return false, gsoerr.NewPreconditionError("UpdateGSORow", "i=%d < 0", i)
	}
	e.ensureDiscovered(i)
	if lastJ < 0 || lastJ >= e.nSourceRows {
		return false, gsoerr.NewPreconditionError(
			"UpdateGSORow", "last_j=%d out of range [0,%d)", lastJ, e.nSourceRows,
		)
	}

	start := e.gsoValidCols[i]
	if start < 0 {
		start = 0
	}
	for j := start; j <= lastJ; j++ {
		if i > j && e.gsoValidCols[j] < j+1 {
			// mu(j,0..j) and r(j,j) feed this row's own computation; bring
			// row j's own diagonal up to date first. Reentrant per spec
			// §4.3, so this is a no-op if already valid.
			if ok, err := e.UpdateGSORow(j, j); err != nil {
				return false, err
			} else if !ok {
				e.gsoValidCols[i] = j
				return false, nil
			}
		}
		t, err := e.gram(i, j)
		if err != nil {
			return false, err
		}
		for k := 0; k < j; k++ {
			muJK, err := e.mu.Get(j, k)
			if err != nil {
				return false, err
			}
			rIK, err := e.r.Get(i, k)
			if err != nil {
				return false, err
			}
			term := bignumber.NewFloat().Mul(muJK, rIK)
			t = bignumber.NewFloat().Sub(t, term)
		}
		if err := e.r.Set(i, j, t); err != nil {
			return false, err
		}
		if i > j {
			rJJ, err := e.r.Get(j, j)
			if err != nil {
				return false, err
			}
			muIJ := bignumber.NewFloat().Quo(t, rJJ)
			if muIJ.IsNaN() {
				e.gsoValidCols[i] = j
				return false, nil
			}
			if err := e.mu.Set(i, j, muIJ); err != nil {
				return false, err
			}
		}
	}
	if e.gsoValidCols[i] < lastJ+1 {
		e.gsoValidCols[i] = lastJ + 1
	}
	return true, nil
}

// GetMu returns mu(i,j) in the scaled domain (no row-exponent folded in),
// lazily extending the GSO prefix as needed.
func (e *Engine) GetMu(i, j int) (*bignumber.Float, error) {
	if j >= i {
		return nil, gsoerr.NewPreconditionError("GetMu", "mu(%d,%d) requires j<i", i, j)
	}
	if ok, err := e.UpdateGSORow(i, j); err != nil {
		return nil, err
	} else if !ok {
		return nil, gsoerr.NewNumericNonFiniteError(i, j)
	}
	return e.mu.Get(i, j)
}

// GetR returns r(i,j), lazily extending the GSO prefix as needed.
func (e *Engine) GetR(i, j int) (*bignumber.Float, error) {
	if j > i {
		return nil, gsoerr.NewPreconditionError("GetR", "r(%d,%d) requires j<=i", i, j)
	}
	if ok, err := e.UpdateGSORow(i, j); err != nil {
		return nil, err
	} else if !ok {
		return nil, gsoerr.NewNumericNonFiniteError(i, j)
	}
	return e.r.Get(i, j)
}

// GetMuExp returns mu(i,j) together with the combined row exponent
// row_expo[i]+row_expo[j] spec §4.5 defines; expo is 0 when row_expo is
// disabled.
func (e *Engine) GetMuExp(i, j int) (*bignumber.Float, int64, error) {
	v, err := e.GetMu(i, j)
	if err != nil {
		return nil, 0, err
	}
	if e.rowExpo == nil {
		return v, 0, nil
	}
	return v, e.rowExpo[i] + e.rowExpo[j], nil
}

// GetRExp returns r(i,j) together with row_expo[i]+row_expo[j].
func (e *Engine) GetRExp(i, j int) (*bignumber.Float, int64, error) {
	v, err := e.GetR(i, j)
	if err != nil {
		return nil, 0, err
	}
	if e.rowExpo == nil {
		return v, 0, nil
	}
	return v, e.rowExpo[i] + e.rowExpo[j], nil
}

// GetMaxMuExp returns the maximum over j in [0,nCols) of
// exponent(mu(i,j)) + row_expo[i] + row_expo[j], per spec §4.5.
func (e *Engine) GetMaxMuExp(i, nCols int) (int64, error) {
	best := int64(0)
	found := false
	for j := 0; j < nCols && j < i; j++ {
		v, expoBase, err := e.GetMuExp(i, j)
		if err != nil {
			return 0, err
		}
		if v.IsZero() {
			continue
		}
		_, expo, ok := v.ToIntWithExponent()
		if !ok {
			continue
		}
		// ToIntWithExponent's integer mantissa carries GetPrec() bits, so
		// exponent(mu(i,j)) in the [0.5,1) convention is expo + GetPrec().
		total := expo + int64(bignumber.GetPrec()) + expoBase
		if !found || total > best {
			best = total
			found = true
		}
	}
	return best, nil
}
