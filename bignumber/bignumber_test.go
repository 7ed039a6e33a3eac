package bignumber

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetPrec(256)
	m.Run()
}

func TestFloat_AddSubRoundTrip(t *testing.T) {
	x := NewFloatFromInt64(7)
	y := NewFloatFromInt64(3)
	sum := NewFloat().Add(x, y)
	assert.Equal(t, float64(10), sum.Float64())

	back := NewFloat().Sub(sum, y)
	assert.Equal(t, float64(7), back.Float64())
}

func TestFloat_QuoByZeroIsNaN(t *testing.T) {
	x := NewFloatFromInt64(1)
	zero := NewFloatFromInt64(0)
	q := NewFloat().Quo(x, zero)
	assert.True(t, q.IsNaN())
}

func TestFloat_SqrtNegativeIsNaN(t *testing.T) {
	neg := NewFloatFromInt64(-4)
	r := NewFloat().Sqrt(neg)
	assert.True(t, r.IsNaN())
}

func TestFloat_SqrtOfSquare(t *testing.T) {
	x := NewFloatFromInt64(4)
	r := NewFloat().Sqrt(x)
	assert.InDelta(t, 2.0, r.Float64(), 1e-9)
}

func TestFloat_ScaleBy2(t *testing.T) {
	x := NewFloatFromInt64(3)
	scaled := NewFloat().ScaleBy2(x, 4)
	assert.Equal(t, float64(48), scaled.Float64())
	back := NewFloat().ScaleBy2(scaled, -4)
	assert.Equal(t, float64(3), back.Float64())
}

func TestFloat_RoundToInt(t *testing.T) {
	cases := []struct {
		in       float64
		expected int64
	}{
		{2.4, 2},
		{2.5, 3},
		{-2.5, -3},
		{-2.4, -2},
	}
	for _, c := range cases {
		f := NewFloatFromFloat64(c.in)
		rounded, ok := f.RoundToInt()
		require.True(t, ok)
		assert.Equal(t, big.NewInt(c.expected).String(), rounded.String())
	}
}

func TestFloat_RoundToIntOnNaN(t *testing.T) {
	_, ok := NaN().RoundToInt()
	assert.False(t, ok)
}

func TestFloat_Cmp(t *testing.T) {
	a := NewFloatFromInt64(1)
	b := NewFloatFromInt64(2)
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(NewFloatFromInt64(1)))
}

func TestFloat_LogExpRoundTrip(t *testing.T) {
	x := NewFloatFromFloat64(10.0)
	l := NewFloat().Log(x)
	back := NewFloat().Exp(l)
	assert.InDelta(t, 10.0, back.Float64(), 1e-6)
}

func TestInt_AddMulShift(t *testing.T) {
	x := NewIntFromInt64(3)
	y := NewIntFromInt64(5)
	sum := NewIntFromInt64(0).Add(x, y)
	assert.Equal(t, "8", sum.String())

	prod := NewIntFromInt64(0).Mul(x, y)
	assert.Equal(t, "15", prod.String())

	shifted := NewIntFromInt64(0).Shift(x, 4)
	assert.Equal(t, "48", shifted.String())
	unshifted := NewIntFromInt64(0).Shift(shifted, -4)
	assert.Equal(t, "3", unshifted.String())
}

func TestInt_ToFloatWithExponent(t *testing.T) {
	z := NewIntFromInt64(12)
	mant, expo := z.ToFloatWithExponent()
	// 12 = 0.75 * 2^4
	assert.Equal(t, int64(4), expo)
	assert.InDelta(t, 0.75, mant.Float64(), 1e-12)
}

func TestInt_ToFloatWithExponentZero(t *testing.T) {
	z := NewIntFromInt64(0)
	mant, expo := z.ToFloatWithExponent()
	assert.Equal(t, int64(0), expo)
	assert.True(t, mant.IsZero())
}

func TestNorm(t *testing.T) {
	xs := []*Int{NewIntFromInt64(3), NewIntFromInt64(4)}
	n := Norm(xs)
	assert.Equal(t, "25", n.String())
}
