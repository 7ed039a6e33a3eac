package engine

import (
	"github.com/fplll-go/gso/bigmatrix"
	"github.com/fplll-go/gso/bignumber"
	"github.com/fplll-go/gso/gsoerr"
)

// Engine is the incremental GSO engine of spec §3-§6: it holds the basis
// and its optional companions (transform, Gram, scaled float image) and the
// lazily-maintained mu/r triangular tables, and exposes the row-mutation
// and query protocol reduction drivers (LLL, BKZ, ...) call against it.
//
// Single-threaded ownership model (spec §5): no field is safe for
// concurrent access.
type Engine struct {
	cfg Config

	b      *bigmatrix.IntMatrix
	u      *bigmatrix.IntMatrix // present iff cfg.TransformEnabled
	uInvT  *bigmatrix.IntMatrix // present iff cfg.InvTransformEnabled
	g      *bigmatrix.GramInt   // present iff cfg.IntGram
	gf     *bigmatrix.GramFloat // present iff !cfg.IntGram
	bf     *bigmatrix.FloatMatrix
	mu     *bigmatrix.FloatMatrix
	r      *bigmatrix.FloatMatrix
	rowExpo []int64 // present iff cfg.RowExpoEnabled && !cfg.IntGram

	nKnownRows   int
	nSourceRows  int
	nKnownCols   int
	initRowSize  []int
	gsoValidCols []int
	allocDim     int
	colsLocked   bool

	// row_op_begin/end bracket state (spec §4.4, §5 "Ordering").
	inRowOp       bool
	rowOpFirst    int
	rowOpLast     int
	debugAssertBrackets bool

	// engine-owned scratch scalars, reused across calls and carrying no
	// state between operations (spec §5).
	ztmp1, ztmp2 *bignumber.Int
	ftmp1, ftmp2 *bignumber.Float
}

// New constructs an Engine over basis b with the given options. b's current
// dimensions (d x n) become the engine's allocated dimension; no row is
// "known" until it is first touched (V6), per spec §3's lifecycle.
func New(b *bigmatrix.IntMatrix, cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	d := b.NumRows()
	n := b.NumCols()

	e := &Engine{
		cfg:          cfg,
		b:            b,
		nKnownRows:   0,
		nSourceRows:  0,
		nKnownCols:   0,
		initRowSize:  make([]int, d),
		gsoValidCols: make([]int, d),
		allocDim:     d,
		colsLocked:   cfg.ColsLocked,
		ztmp1:        bignumber.NewIntFromInt64(0),
		ztmp2:        bignumber.NewIntFromInt64(0),
		ftmp1:        bignumber.NewFloat(),
		ftmp2:        bignumber.NewFloat(),
	}
	for i := range e.initRowSize {
		e.initRowSize[i] = n
	}

	if cfg.TransformEnabled {
		ident, err := bigmatrix.NewIntIdentity(max(d, 1))
		if err != nil {
			return nil, err
		}
		e.u = ident
	}
	if cfg.InvTransformEnabled {
		ident, err := bigmatrix.NewIntIdentity(max(d, 1))
		if err != nil {
			return nil, err
		}
		e.uInvT = ident
	}
	if cfg.IntGram {
		e.g = bigmatrix.NewGramInt()
	} else {
		e.gf = bigmatrix.NewGramFloat()
		e.bf = bigmatrix.NewFloatEmpty(d, n)
		if cfg.RowExpoEnabled {
			e.rowExpo = make([]int64, d)
		}
	}
	e.mu = bigmatrix.NewFloatEmpty(d, d)
	e.r = bigmatrix.NewFloatEmpty(d, d)

	return e, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// D returns the engine's current logical dimension (the number of rows b
// is declared to have, whether or not each has been discovered yet).
func (e *Engine) D() int { return e.b.NumRows() }

// BNumRows returns the number of rows of the basis.
func (e *Engine) BNumRows() int { return e.b.NumRows() }

// BNumCols returns the number of columns of the basis.
func (e *Engine) BNumCols() int { return e.b.NumCols() }

// NKnownRows returns the number of rows the engine has discovered.
func (e *Engine) NKnownRows() int { return e.nKnownRows }

// SetDebugAssertBrackets toggles the debug-build check that every row_add,
// row_sub and row_addmul mutator runs inside a row_op_begin/end bracket
// (spec §4.4, §7). RowSwap and MoveRow are not checked.
func (e *Engine) SetDebugAssertBrackets(on bool) { e.debugAssertBrackets = on }

func (e *Engine) checkRowIndex(op string, i int) error {
	if i < 0 || i >= e.D() {
		return gsoerr.NewPreconditionError(op, "row index %d out of range [0,%d)", i, e.D())
	}
	return nil
}

// sizeIncreased grows allocDim/storage to accommodate at least newD rows,
// per spec §5's "storage is grown lazily" resource policy.
func (e *Engine) sizeIncreased(newD int) {
	if newD <= e.allocDim {
		return
	}
	n := e.b.NumCols()
	e.b.Resize(newD, n)
	if e.u != nil {
		e.u.Resize(newD, e.u.NumCols())
	}
	if e.uInvT != nil {
		e.uInvT.Resize(newD, e.uInvT.NumCols())
	}
	if e.bf != nil {
		e.bf.Resize(newD, n)
	}
	e.mu.Resize(newD, newD)
	e.r.Resize(newD, newD)
	for len(e.initRowSize) < newD {
		e.initRowSize = append(e.initRowSize, n)
	}
	for len(e.gsoValidCols) < newD {
		e.gsoValidCols = append(e.gsoValidCols, 0)
	}
	if e.rowExpo != nil {
		for len(e.rowExpo) < newD {
			e.rowExpo = append(e.rowExpo, 0)
		}
	}
	e.allocDim = newD
}
