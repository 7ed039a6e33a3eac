package engine

import (
	"github.com/fplll-go/gso/bignumber"
)

// ensureDiscovered discovers every row up to and including i, per
// update_gso_row's precondition "if i >= n_known_rows, invoke discover_row"
// (spec §4.3); discover_row is itself parameterless in spec.md, always
// operating on the next undiscovered row, so reaching row i may take
// several calls if rows were skipped.
func (e *Engine) ensureDiscovered(i int) {
	if i+1 > e.allocDim {
		e.sizeIncreased(i + 1)
	}
	for e.nKnownRows <= i {
		e.discoverRow()
	}
}

// discoverRow implements spec §4.2's discover_row: establishes row
// n_known_rows (the next unseen row) as known.
func (e *Engine) discoverRow() {
	i := e.nKnownRows
	e.nKnownRows++
	if !e.colsLocked {
		e.nSourceRows = e.nKnownRows
		if e.nKnownCols < e.initRowSize[i] {
			e.nKnownCols = e.initRowSize[i]
		}
	}
	if e.cfg.IntGram {
		e.g.DiscoverRow()
		e.computeGramRow(i)
	} else {
		e.gf.DiscoverRow()
		e.updateBf(i)
	}
	e.gsoValidCols[i] = 0
}

// computeGramRow fills g(i,0..i) exactly from b, establishing V3 for the
// newly discovered row.
func (e *Engine) computeGramRow(i int) {
	bi, _ := e.b.Row(i)
	for j := 0; j <= i; j++ {
		bj, _ := e.b.Row(j)
		acc := bignumber.NewIntFromInt64(0)
		for k := 0; k < e.b.NumCols(); k++ {
			acc.AddMul(bi[k], bj[k])
		}
		_ = e.g.Set(i, j, acc)
	}
}

// updateBf implements spec §4.2's update_bf: refreshes bf[i] from b[i].
// When row_expo is enabled, each column is converted with
// to_float_with_exponent and then renormalized to the row's shared
// maximum exponent, row_expo[i]; otherwise it is a plain conversion.
func (e *Engine) updateBf(i int) {
	bi, _ := e.b.Row(i)
	n := e.b.NumCols()
	if !e.cfg.RowExpoEnabled {
		for j := 0; j < n; j++ {
			mant, expo := bi[j].ToFloatWithExponent()
			v := bignumber.NewFloat().ScaleBy2(mant, expo)
			_ = e.bf.Set(i, j, v)
		}
		return
	}

	tmpColExpo := make([]int64, n)
	mantissas := make([]*bignumber.Float, n)
	rowMax := int64(0)
	for j := 0; j < n; j++ {
		mant, expo := bi[j].ToFloatWithExponent()
		mantissas[j] = mant
		tmpColExpo[j] = expo
		if expo > rowMax {
			rowMax = expo
		}
	}
	e.rowExpo[i] = rowMax
	for j := 0; j < n; j++ {
		// true value is mantissas[j] * 2^tmpColExpo[j]; renormalize to the
		// row's shared exponent, rowMax, so bf[i,j] * 2^rowMax == b[i,j].
		v := bignumber.NewFloat().ScaleBy2(mantissas[j], tmpColExpo[j]-rowMax)
		_ = e.bf.Set(i, j, v)
	}
}
