package bigmatrix

import (
	"testing"

	"github.com/fplll-go/gso/bignumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	bignumber.SetPrec(128)
	m.Run()
}

func TestIntMatrix_SwapAndRotate(t *testing.T) {
	m, err := NewIntFromInt64Array([]int64{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)

	require.NoError(t, m.SwapRows(0, 2))
	row0, _ := m.Get(0, 0)
	assert.Equal(t, "5", row0.String())

	require.NoError(t, m.RotateLeft(0, 2))
	r0, _ := m.Get(0, 0)
	r1, _ := m.Get(1, 0)
	r2, _ := m.Get(2, 0)
	assert.Equal(t, "3", r0.String())
	assert.Equal(t, "1", r1.String())
	assert.Equal(t, "5", r2.String())

	require.NoError(t, m.RotateRight(0, 2))
	r0b, _ := m.Get(0, 0)
	assert.Equal(t, "5", r0b.String())
}

func TestIntMatrix_ResizeAndShrink(t *testing.T) {
	m := NewIntEmpty(2, 2)
	require.NoError(t, m.Set(0, 0, bignumber.NewIntFromInt64(7)))
	m.Resize(3, 3)
	assert.Equal(t, 3, m.NumRows())
	v, err := m.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())

	require.NoError(t, m.Shrink(1))
	assert.Equal(t, 1, m.NumRows())
}

func TestFloatMatrix_NaNSentinel(t *testing.T) {
	m := NewFloatNaN(2, 2)
	v, err := m.Get(0, 0)
	require.NoError(t, err)
	assert.True(t, v.IsNaN())
	require.NoError(t, m.Set(0, 0, bignumber.NewFloatFromInt64(3)))
	v2, _ := m.Get(0, 0)
	assert.False(t, v2.IsNaN())
}

func TestGramInt_SwapRowsPreservesInnerProducts(t *testing.T) {
	g := NewGramInt()
	g.DiscoverRow() // row 0
	g.DiscoverRow() // row 1
	g.DiscoverRow() // row 2
	require.NoError(t, g.Set(0, 0, bignumber.NewIntFromInt64(10)))
	require.NoError(t, g.Set(1, 0, bignumber.NewIntFromInt64(20)))
	require.NoError(t, g.Set(1, 1, bignumber.NewIntFromInt64(30)))
	require.NoError(t, g.Set(2, 0, bignumber.NewIntFromInt64(40)))
	require.NoError(t, g.Set(2, 1, bignumber.NewIntFromInt64(50)))
	require.NoError(t, g.Set(2, 2, bignumber.NewIntFromInt64(60)))

	require.NoError(t, g.SwapRows(0, 2))

	// after swapping rows 0 and 2: g'(0,0)=g(2,2), g'(2,2)=g(0,0),
	// g'(1,0)=g(1,2), g'(2,0)=g(0,2)=g(2,0) unchanged value but now the
	// diagonal identity, g'(2,1)=g(0,1)=g(1,0).
	v00, _ := g.Get(0, 0)
	v22, _ := g.Get(2, 2)
	v10, _ := g.Get(1, 0)
	assert.Equal(t, "60", v00.String())
	assert.Equal(t, "10", v22.String())
	assert.Equal(t, "50", v10.String())
}

func TestGramInt_MaxDiagonal(t *testing.T) {
	g := NewGramInt()
	g.DiscoverRow()
	g.DiscoverRow()
	require.NoError(t, g.Set(0, 0, bignumber.NewIntFromInt64(4)))
	require.NoError(t, g.Set(1, 1, bignumber.NewIntFromInt64(9)))
	max, ok := g.MaxDiagonal()
	require.True(t, ok)
	assert.Equal(t, "9", max.String())
}

func TestGramFloat_InvalidateRow(t *testing.T) {
	g := NewGramFloat()
	g.DiscoverRow()
	g.DiscoverRow()
	require.NoError(t, g.Set(0, 0, bignumber.NewFloatFromInt64(1)))
	require.NoError(t, g.Set(1, 0, bignumber.NewFloatFromInt64(2)))
	require.NoError(t, g.Set(1, 1, bignumber.NewFloatFromInt64(3)))

	require.NoError(t, g.InvalidateRow(0))
	v00, _ := g.Get(0, 0)
	v10, _ := g.Get(1, 0)
	v11, _ := g.Get(1, 1)
	assert.True(t, v00.IsNaN())
	assert.True(t, v10.IsNaN())
	assert.False(t, v11.IsNaN())
}
