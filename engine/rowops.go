package engine

import (
	"github.com/fplll-go/gso/bignumber"
	"github.com/fplll-go/gso/gsoerr"
)

// RowOpBegin opens a bracketed row-operation window [first,last). Within
// the bracket, row mutators may run in any order; GSO invalidation and the
// bf refresh are deferred and applied once, in RowOpEnd (spec §4.4, §5
// "Ordering").
func (e *Engine) RowOpBegin(first, last int) error {
	if first < 0 || last < first || last > e.D() {
		return gsoerr.NewPreconditionError("RowOpBegin", "invalid range [%d,%d) for dimension %d", first, last, e.D())
	}
	if e.debugAssertBrackets && e.inRowOp {
		return gsoerr.NewPreconditionError("RowOpBegin", "bracket already open at [%d,%d)", e.rowOpFirst, e.rowOpLast)
	}
	e.inRowOp = true
	e.rowOpFirst, e.rowOpLast = first, last
	return nil
}

// RowOpEnd closes the bracket opened by RowOpBegin(first,last), refreshing
// bf and invalidating GSO state per spec §4.4.
func (e *Engine) RowOpEnd(first, last int) error {
	if e.debugAssertBrackets && (!e.inRowOp || first != e.rowOpFirst || last != e.rowOpLast) {
		return gsoerr.NewPreconditionError("RowOpEnd", "no matching bracket for [%d,%d)", first, last)
	}
	e.inRowOp = false

	for i := first; i < last && i < e.nKnownRows; i++ {
		if !e.cfg.IntGram {
			e.updateBf(i)
			_ = e.gf.InvalidateRow(i)
		}
		e.gsoValidCols[i] = 0
	}
	for i := last; i < e.nKnownRows; i++ {
		if e.gsoValidCols[i] > first {
			e.gsoValidCols[i] = first
		}
	}
	return nil
}

func (e *Engine) assertBracketed(op string) error {
	if e.debugAssertBrackets && !e.inRowOp {
		return gsoerr.NewPreconditionError(op, "mutation outside a row_op_begin/end bracket")
	}
	return nil
}

// rowVectorAddScaled sets dst[k] += (x * 2^e) * src[k] for k in [0,n),
// exactly, over bignumber.Int.
func rowVectorAddScaled(dst, src []*bignumber.Int, n int, x *bignumber.Int, e int64) {
	for k := 0; k < n; k++ {
		term := bignumber.NewIntFromInt64(0).Mul(x, src[k])
		term.Shift(term, e)
		dst[k].Add(dst[k], term)
	}
}

// applyGramAddMul implements the Gram-update shape common to row_add,
// row_sub, row_addmul_si, row_addmul_si_2exp and row_addmul_2exp (spec
// §4.4): with y the *effective* exact integer multiplier (x, x, x, x*2^e or
// X*2^e respectively),
//
//	g(i,i) += 2*y*g(i,j) + y^2*g(j,j)
//	sym_g(i,k) += y*sym_g(j,k)   for every known k != i
//
// computed from the pre-mutation Gram entries, per spec §4.4's note that
// these "must be computed before g[i,j] itself is updated" — guaranteed
// here because g(i,k) is read, then written, once per k, and g(j,*) is
// never written by this helper.
func (e *Engine) applyGramAddMul(i, j int, y *bignumber.Int) error {
	gii, err := e.g.Get(i, i)
	if err != nil {
		return err
	}
	gij, err := e.g.Get(i, j)
	if err != nil {
		return err
	}
	gjj, err := e.g.Get(j, j)
	if err != nil {
		return err
	}
	ySq := bignumber.NewIntFromInt64(0).Mul(y, y)
	twoY := bignumber.NewIntFromInt64(0).MulInt64(y, 2)
	newGii := bignumber.NewIntFromInt64(0).Set(gii)
	newGii.AddMul(twoY, gij)
	newGii.AddMul(ySq, gjj)
	if err := e.g.Set(i, i, newGii); err != nil {
		return err
	}

	for k := 0; k < e.nKnownRows; k++ {
		if k == i {
			continue
		}
		gik, err := e.g.Get(i, k)
		if err != nil {
			return err
		}
		gjk, err := e.g.Get(j, k)
		if err != nil {
			return err
		}
		newGik := bignumber.NewIntFromInt64(0).Set(gik)
		newGik.AddMul(y, gjk)
		if err := e.g.Set(i, k, newGik); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) checkRowPair(op string, i, j int) error {
	if err := e.checkRowIndex(op, i); err != nil {
		return err
	}
	if err := e.checkRowIndex(op, j); err != nil {
		return err
	}
	if i == j {
		return gsoerr.NewPreconditionError(op, "i and j must differ, got %d", i)
	}
	return nil
}

// RowAdd implements spec §4.4's row_add(i,j): b[i] += b[j], mirrored on u
// and u_inv_t, with the exact Gram update when int_gram.
func (e *Engine) RowAdd(i, j int) error {
	return e.rowAddMulSmall(i, j, 1)
}

// RowSub implements row_sub(i,j): b[i] -= b[j].
func (e *Engine) RowSub(i, j int) error {
	return e.rowAddMulSmall(i, j, -1)
}

// RowAddMulSi implements row_addmul_si(i,j,x): b[i] += x*b[j] for a small
// integer scalar x.
func (e *Engine) RowAddMulSi(i, j int, x int64) error {
	return e.rowAddMulSmall(i, j, x)
}

func (e *Engine) rowAddMulSmall(i, j int, x int64) error {
	if err := e.checkRowPair("RowAddMul", i, j); err != nil {
		return err
	}
	if err := e.assertBracketed("RowAddMul"); err != nil {
		return err
	}
	e.ensureDiscovered(max(i, j))

	xInt := bignumber.NewIntFromInt64(x)
	bi, _ := e.b.Row(i)
	bj, _ := e.b.Row(j)
	rowVectorAddScaled(bi, bj, e.b.NumCols(), xInt, 0)

	if e.cfg.TransformEnabled {
		ui, _ := e.u.Row(i)
		uj, _ := e.u.Row(j)
		rowVectorAddScaled(ui, uj, e.u.NumCols(), xInt, 0)
	}
	if e.cfg.InvTransformEnabled {
		uInvJ, _ := e.uInvT.Row(j)
		uInvI, _ := e.uInvT.Row(i)
		negX := bignumber.NewIntFromInt64(0).Neg(xInt)
		rowVectorAddScaled(uInvJ, uInvI, e.uInvT.NumCols(), negX, 0)
	}
	if e.cfg.IntGram {
		if err := e.applyGramAddMul(i, j, xInt); err != nil {
			return err
		}
	}
	return nil
}

// RowAddMulSi2Exp implements row_addmul_si_2exp(i,j,x,e2): b[i] += (x*2^e2)*b[j].
func (e *Engine) RowAddMulSi2Exp(i, j int, x int64, e2 int64) error {
	return e.rowAddMulGeneral(i, j, bignumber.NewIntFromInt64(x), e2)
}

// RowAddMul2Exp implements row_addmul_2exp(i,j,X,e2) for an arbitrary
// precision multiplicand X: b[i] += (X*2^e2)*b[j].
func (e *Engine) RowAddMul2Exp(i, j int, x *bignumber.Int, e2 int64) error {
	return e.rowAddMulGeneral(i, j, x, e2)
}

func (e *Engine) rowAddMulGeneral(i, j int, x *bignumber.Int, e2 int64) error {
	if err := e.checkRowPair("RowAddMul", i, j); err != nil {
		return err
	}
	if err := e.assertBracketed("RowAddMul"); err != nil {
		return err
	}
	e.ensureDiscovered(max(i, j))

	bi, _ := e.b.Row(i)
	bj, _ := e.b.Row(j)
	rowVectorAddScaled(bi, bj, e.b.NumCols(), x, e2)

	if e.cfg.TransformEnabled {
		ui, _ := e.u.Row(i)
		uj, _ := e.u.Row(j)
		rowVectorAddScaled(ui, uj, e.u.NumCols(), x, e2)
	}
	if e.cfg.InvTransformEnabled {
		uInvJ, _ := e.uInvT.Row(j)
		uInvI, _ := e.uInvT.Row(i)
		negX := bignumber.NewIntFromInt64(0).Neg(x)
		rowVectorAddScaled(uInvJ, uInvI, e.uInvT.NumCols(), negX, e2)
	}
	if e.cfg.IntGram {
		y := bignumber.NewIntFromInt64(0).Shift(x, e2)
		if err := e.applyGramAddMul(i, j, y); err != nil {
			return err
		}
	}
	return nil
}

// RowAddMulWe implements spec §4.4's row_addmul_we(i,j,xFloat,expoAdd), the
// generic entry point a reduction driver calls: it folds expoAdd into
// xFloat, decomposes the result via get_si_exp_we into (mantissa, expo), and
// dispatches to the cheapest applicable mutator per the routing table in
// spec.md — row_add/row_sub when the scaled value is exactly ±1, row_addmul_si
// when it is exactly a small integer, otherwise the mantissa+exponent paths.
func (e *Engine) RowAddMulWe(i, j int, xFloat *bignumber.Float, expoAdd int64) error {
	if xFloat.IsZero() {
		return nil
	}
	scaled := bignumber.NewFloat().ScaleBy2(xFloat, expoAdd)

	if v, exact := asExactInt64(scaled); exact {
		if v == 1 {
			return e.RowAdd(i, j)
		}
		if v == -1 {
			return e.RowSub(i, j)
		}
		return e.RowAddMulSi(i, j, v)
	}

	mant, expo, ok := scaled.ToIntWithExponent()
	if !ok {
		return gsoerr.NewNumericNonFiniteError(i, j)
	}
	if tz := mant.TrailingZeroBits(); tz > 0 {
		mant = bignumber.NewIntFromInt64(0).Shift(mant, -tz)
		expo += tz
	}
	if e.cfg.RowOpForceLong {
		if v, ok := mant.AsInt64(); ok {
			return e.RowAddMulSi2Exp(i, j, v, expo)
		}
	}
	return e.RowAddMul2Exp(i, j, mant, expo)
}

// asExactInt64 reports whether v is exactly representable as an int64, and
// that value.
func asExactInt64(v *bignumber.Float) (int64, bool) {
	rounded, ok := v.RoundToInt()
	if !ok {
		return 0, false
	}
	n, fits := rounded.AsInt64()
	if !fits {
		return 0, false
	}
	if bignumber.NewFloatFromInt64(n).Cmp(v) != 0 {
		return 0, false
	}
	return n, true
}
