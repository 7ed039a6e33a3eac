package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplll-go/gso/bigmatrix"
	"github.com/fplll-go/gso/bignumber"
)

func TestMain(m *testing.M) {
	bignumber.SetPrec(128)
	m.Run()
}

func newIntGramEngine(t *testing.T, rows []int64, numRows, numCols int) *Engine {
	b, err := bigmatrix.NewIntFromInt64Array(rows, numRows, numCols)
	require.NoError(t, err)
	e, err := New(b, Config{IntGram: true})
	require.NoError(t, err)
	return e
}

func floatEq(t *testing.T, want float64, got *bignumber.Float) {
	require.False(t, got.IsNaN())
	assert.InDelta(t, want, got.Float64(), 1e-9)
}

// scenario 1: b = [[2,0],[0,2]], default flags, int_gram.
func TestUpdateGSORow_Scenario1(t *testing.T) {
	e := newIntGramEngine(t, []int64{2, 0, 0, 2}, 2, 2)
	ok, err := e.UpdateGSORow(1, 1)
	require.NoError(t, err)
	require.True(t, ok)

	r00, err := e.GetR(0, 0)
	require.NoError(t, err)
	floatEq(t, 4, r00)

	r11, err := e.GetR(1, 1)
	require.NoError(t, err)
	floatEq(t, 4, r11)

	mu10, err := e.GetMu(1, 0)
	require.NoError(t, err)
	floatEq(t, 0, mu10)

	assert.Equal(t, 1, e.gsoValidCols[0])
	assert.Equal(t, 2, e.gsoValidCols[1])
}

// scenario 2: same basis, row_add(1,0) inside a bracket, then update_gso_row(1,1).
func TestRowAdd_Scenario2(t *testing.T) {
	e := newIntGramEngine(t, []int64{2, 0, 0, 2}, 2, 2)
	require.NoError(t, e.RowOpBegin(0, 2))
	require.NoError(t, e.RowAdd(1, 0))
	require.NoError(t, e.RowOpEnd(0, 2))

	b1, err := e.b.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "2", b1[0].String())
	assert.Equal(t, "2", b1[1].String())

	g11, err := e.g.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "8", g11.String())

	ok, err := e.UpdateGSORow(1, 1)
	require.NoError(t, err)
	require.True(t, ok)

	mu10, err := e.GetMu(1, 0)
	require.NoError(t, err)
	floatEq(t, 1, mu10)

	r11, err := e.GetR(1, 1)
	require.NoError(t, err)
	floatEq(t, 4, r11)
}

// scenario 3: b = [[3,1],[1,3]].
func TestUpdateGSORow_Scenario3(t *testing.T) {
	e := newIntGramEngine(t, []int64{3, 1, 1, 3}, 2, 2)
	ok, err := e.UpdateGSORow(1, 1)
	require.NoError(t, err)
	require.True(t, ok)

	g00, _ := e.g.Get(0, 0)
	g10, _ := e.g.Get(1, 0)
	g11, _ := e.g.Get(1, 1)
	assert.Equal(t, "10", g00.String())
	assert.Equal(t, "6", g10.String())
	assert.Equal(t, "10", g11.String())

	mu10, err := e.GetMu(1, 0)
	require.NoError(t, err)
	floatEq(t, 0.6, mu10)

	r11, err := e.GetR(1, 1)
	require.NoError(t, err)
	floatEq(t, 6.4, r11)
}

// scenario 4: move_row(0,2) on the 3x3 identity basis.
func TestMoveRow_Scenario4(t *testing.T) {
	e := newIntGramEngine(t, []int64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 3, 3)
	e.ensureDiscovered(2)

	require.NoError(t, e.MoveRow(0, 2))

	want := [][]int64{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}
	for i, row := range want {
		got, err := e.b.Row(i)
		require.NoError(t, err)
		for j, v := range row {
			assert.Equal(t, bignumber.NewIntFromInt64(v).String(), got[j].String())
		}
	}
	for i := 0; i < e.nKnownRows; i++ {
		assert.Equal(t, 0, e.gsoValidCols[i])
	}
}

// scenario 5: b = [[2,0],[4,1]], row_addmul_we(1,0,-2.0,0) routes to row_addmul_si.
func TestRowAddMulWe_Scenario5(t *testing.T) {
	e := newIntGramEngine(t, []int64{2, 0, 4, 1}, 2, 2)
	e.ensureDiscovered(1)

	require.NoError(t, e.RowOpBegin(0, 2))
	x := bignumber.NewFloatFromFloat64(-2.0)
	require.NoError(t, e.RowAddMulWe(1, 0, x, 0))
	require.NoError(t, e.RowOpEnd(0, 2))

	b1, err := e.b.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "0", b1[0].String())
	assert.Equal(t, "1", b1[1].String())

	g10, _ := e.g.Get(1, 0)
	g11, _ := e.g.Get(1, 1)
	assert.Equal(t, "0", g10.String())
	assert.Equal(t, "1", g11.String())
}

// scenario 6: row_expo_enabled, b[i] = [2^60, 2^60].
func TestUpdateBf_Scenario6(t *testing.T) {
	b := bigmatrix.NewIntEmpty(1, 2)
	bigVal := bignumber.NewIntFromInt64(1)
	bigVal.Shift(bigVal, 60)
	require.NoError(t, b.Set(0, 0, bigVal))
	require.NoError(t, b.Set(0, 1, bigVal))

	e, err := New(b, Config{RowExpoEnabled: true})
	require.NoError(t, err)
	e.ensureDiscovered(0)

	assert.InDelta(t, 61, float64(e.rowExpo[0]), 1)
	bf0, err := e.bf.Row(0)
	require.NoError(t, err)
	for _, v := range bf0 {
		assert.InDelta(t, 0.5, v.Float64(), 0.5)
	}
}

// round-trip: row_add(i,j); row_sub(i,j) leaves b,g bit-identical.
func TestRowAddSub_RoundTrip(t *testing.T) {
	e := newIntGramEngine(t, []int64{3, 1, 1, 3}, 2, 2)
	e.ensureDiscovered(1)

	before0, _ := e.b.Row(0)
	before1, _ := e.b.Row(1)
	snap0 := append([]int64{}, toInt64s(before0)...)
	snap1 := append([]int64{}, toInt64s(before1)...)
	gIdx := [][2]int{{0, 0}, {1, 0}, {1, 1}}
	gSnap := make([]string, len(gIdx))
	for k, ij := range gIdx {
		v, err := e.g.Get(ij[0], ij[1])
		require.NoError(t, err)
		gSnap[k] = v.String()
	}

	require.NoError(t, e.RowOpBegin(0, 2))
	require.NoError(t, e.RowAdd(1, 0))
	require.NoError(t, e.RowSub(1, 0))
	require.NoError(t, e.RowOpEnd(0, 2))

	after0, _ := e.b.Row(0)
	after1, _ := e.b.Row(1)
	assert.Equal(t, snap0, toInt64s(after0))
	assert.Equal(t, snap1, toInt64s(after1))
	for k, ij := range gIdx {
		v, err := e.g.Get(ij[0], ij[1])
		require.NoError(t, err)
		assert.Equal(t, gSnap[k], v.String())
	}
}

// round-trip: row_swap(i,j); row_swap(i,j) is identity.
func TestRowSwap_RoundTrip(t *testing.T) {
	e := newIntGramEngine(t, []int64{3, 1, 1, 3}, 2, 2)
	e.ensureDiscovered(1)

	before0, _ := e.b.Row(0)
	before1, _ := e.b.Row(1)
	snap0 := append([]int64{}, toInt64s(before0)...)
	snap1 := append([]int64{}, toInt64s(before1)...)

	require.NoError(t, e.RowSwap(0, 1))
	require.NoError(t, e.RowSwap(0, 1))

	after0, _ := e.b.Row(0)
	after1, _ := e.b.Row(1)
	assert.Equal(t, snap0, toInt64s(after0))
	assert.Equal(t, snap1, toInt64s(after1))
}

// round-trip: move_row(i,j); move_row(j,i) is identity when j < n_known_rows.
func TestMoveRow_RoundTrip(t *testing.T) {
	e := newIntGramEngine(t, []int64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 3, 3)
	e.ensureDiscovered(2)

	snaps := make([][]int64, 3)
	for i := 0; i < 3; i++ {
		row, _ := e.b.Row(i)
		snaps[i] = append([]int64{}, toInt64s(row)...)
	}

	require.NoError(t, e.MoveRow(0, 2))
	require.NoError(t, e.MoveRow(2, 0))

	for i := 0; i < 3; i++ {
		row, _ := e.b.Row(i)
		assert.Equal(t, snaps[i], toInt64s(row))
	}
}

func TestRemoveLastRows(t *testing.T) {
	e := newIntGramEngine(t, []int64{1, 0, 0, 1}, 2, 2)
	e.ensureDiscovered(1)
	require.NoError(t, e.RemoveLastRows(1))
	assert.Equal(t, 1, e.D())
	assert.Equal(t, 1, e.nKnownRows)
}

func TestLockUnlockCols(t *testing.T) {
	b, err := bigmatrix.NewIntFromInt64Array([]int64{1, 0, 0, 1}, 2, 2)
	require.NoError(t, err)
	e, err := New(b, Config{})
	require.NoError(t, err)
	require.NoError(t, e.LockCols())
	e.ensureDiscovered(1)
	e.UnlockCols()
	assert.False(t, e.colsLocked)
}

func TestLockCols_ForbiddenWithIntGram(t *testing.T) {
	e := newIntGramEngine(t, []int64{1, 0, 0, 1}, 2, 2)
	require.Error(t, e.LockCols())
}

func toInt64s(xs []*bignumber.Int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		v, _ := x.AsInt64()
		out[i] = v
	}
	return out
}
