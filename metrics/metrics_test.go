package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplll-go/gso/bigmatrix"
	"github.com/fplll-go/gso/bignumber"
	"github.com/fplll-go/gso/engine"
)

func TestMain(m *testing.M) {
	bignumber.SetPrec(128)
	m.Run()
}

func newEngine(t *testing.T, rows []int64, n int) *engine.Engine {
	b, err := bigmatrix.NewIntFromInt64Array(rows, n, n)
	require.NoError(t, err)
	e, err := engine.New(b, engine.Config{IntGram: true})
	require.NoError(t, err)
	return e
}

func TestGetLogDet_OrthogonalBasis(t *testing.T) {
	e := newEngine(t, []int64{2, 0, 0, 2}, 2)
	ld, err := GetLogDet(e, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(4)+math.Log(4), ld.Float64(), 1e-9)
}

func TestGetRootDet_OrthogonalBasis(t *testing.T) {
	e := newEngine(t, []int64{2, 0, 0, 2}, 2)
	rd, err := GetRootDet(e, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, rd.Float64(), 1e-6)
}

func TestGetCurrentSlope_ConstantDiagonal(t *testing.T) {
	e := newEngine(t, []int64{2, 0, 0, 0, 2, 0, 0, 0, 2}, 3)
	slope, err := GetCurrentSlope(e, 0, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, slope.Float64(), 1e-6)
}

func TestGetSlidePotential_NonExactSpan(t *testing.T) {
	e := newEngine(t, []int64{2, 0, 0, 0, 2, 0, 0, 0, 2}, 3)
	// span=3, block=2: p = 3/2 = 1 (not decremented, 3 is not a multiple of 2).
	sp, err := GetSlidePotential(e, 0, 3, 2)
	require.NoError(t, err)
	ld, err := GetLogDet(e, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, ld.Float64(), sp.Float64(), 1e-9)
}

func TestGetSlidePotential_ExactSpanIsZero(t *testing.T) {
	e := newEngine(t, []int64{2, 0, 0, 2}, 2)
	sp, err := GetSlidePotential(e, 0, 2, 2)
	require.NoError(t, err)
	assert.True(t, sp.IsZero())
}

// diagRows builds the flattened rows of a diagonal matrix from vals.
func diagRows(vals []int64) []int64 {
	n := len(vals)
	out := make([]int64, n*n)
	for i, v := range vals {
		out[i*n+i] = v
	}
	return out
}

// s != 0: the summation inside get_slide_potential runs over [i*block,
// (i+1)*block), never offset by s — only p = floor((e-s)/block) depends on
// s. Distinct diagonal values per row make an erroneous s+i*block offset
// produce a different (wrong) sum than the correct one.
func TestGetSlidePotential_NonZeroStart(t *testing.T) {
	vals := []int64{2, 3, 5, 7, 11, 13}
	e := newEngine(t, diagRows(vals), len(vals))

	// s=2, end=6, block=2: span=4, p=4/2=2, decremented to 1 (exact multiple).
	sp, err := GetSlidePotential(e, 2, 6, 2)
	require.NoError(t, err)

	ld, err := GetLogDet(e, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, ld.Float64(), sp.Float64(), 1e-9)
}

func TestGaussianHeuristic_ReplacesLargerBound(t *testing.T) {
	rootDet := bignumber.NewFloatFromFloat64(100.0)
	factor := bignumber.NewFloatFromFloat64(1.0)
	current := bignumber.NewFloatFromFloat64(1e18)
	next, changed := GaussianHeuristic(current, 0, 4, rootDet, factor)
	assert.True(t, changed)
	assert.True(t, next.Cmp(current) < 0)
}

func TestGaussianHeuristic_KeepsSmallerBound(t *testing.T) {
	rootDet := bignumber.NewFloatFromFloat64(100.0)
	factor := bignumber.NewFloatFromFloat64(1.0)
	current := bignumber.NewFloatFromFloat64(1e-9)
	next, changed := GaussianHeuristic(current, 0, 4, rootDet, factor)
	assert.False(t, changed)
	assert.Equal(t, current, next)
}
