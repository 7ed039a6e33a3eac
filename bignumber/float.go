// Copyright (c) 2023 Colin McRae

// Package bignumber provides the two scalar back-ends the GSO engine is
// parametric over: Int, an arbitrary-precision integer with an exact
// shift-by-2^k, and Float, a finite-precision real with the operations
// the engine's lazy update and metrics need (add/sub/mul/quo/sqrt/log/exp,
// scale-by-2^k, round-to-integer, and a NaN sentinel).
package bignumber

import (
	"math"
	"math/big"
)

var precision uint = 212 // target precision, in bits, for Float values

// SetPrec sets the process-wide precision, in bits, used by every Float
// constructed afterward, and returns the previous value. Changing precision
// while an engine holds Float values invalidates them; callers must follow
// up with a full invalidation, per the engine's contract.
func SetPrec(bits uint) uint {
	prev := precision
	precision = bits
	return prev
}

// GetPrec returns the current process-wide precision, in bits.
func GetPrec() uint {
	return precision
}

// Float is a finite-precision real backed by math/big.Float. big.Float has
// no native NaN, so isNaN is a side-band sentinel: every operation that
// would be non-finite (division by zero, sqrt of a negative, log of a
// non-positive) sets it instead of panicking or returning an error, mirroring
// how update_gso_row surfaces non-finite mu as a bool rather than an error.
type Float struct {
	val   big.Float
	isNaN bool
}

// NewFloat returns a zero-valued Float at the current precision.
func NewFloat() *Float {
	f := &Float{}
	f.val.SetPrec(precision)
	return f
}

// NewFloatFromInt64 returns a Float equal to input.
func NewFloatFromInt64(input int64) *Float {
	f := NewFloat()
	f.val.SetInt64(input)
	return f
}

// NewFloatFromFloat64 returns a Float equal to input. If input is NaN or
// infinite, the result is the NaN sentinel.
func NewFloatFromFloat64(input float64) *Float {
	f := NewFloat()
	if math.IsNaN(input) || math.IsInf(input, 0) {
		f.isNaN = true
		return f
	}
	f.val.SetFloat64(input)
	return f
}

// NaN returns the NaN sentinel.
func NaN() *Float {
	f := NewFloat()
	f.isNaN = true
	return f
}

// IsNaN reports whether x is the NaN sentinel.
func (x *Float) IsNaN() bool {
	return x.isNaN
}

// Set sets bn to a deep copy of x and returns bn.
func (bn *Float) Set(x *Float) *Float {
	bn.val.SetPrec(precision)
	bn.val.Set(&x.val)
	bn.isNaN = x.isNaN
	return bn
}

// IsZero reports whether bn is exactly zero (and not NaN).
func (bn *Float) IsZero() bool {
	return !bn.isNaN && bn.val.Sign() == 0
}

// Sign returns -1, 0 or 1 depending on the sign of bn. The NaN sentinel
// reports a sign of 0.
func (bn *Float) Sign() int {
	if bn.isNaN {
		return 0
	}
	return bn.val.Sign()
}

// Add sets bn to x+y and returns bn. The result is NaN if either operand is.
func (bn *Float) Add(x, y *Float) *Float {
	if x.isNaN || y.isNaN {
		bn.isNaN = true
		return bn
	}
	bn.val.SetPrec(precision)
	bn.val.Add(&x.val, &y.val)
	bn.isNaN = false
	return bn
}

// Sub sets bn to x-y and returns bn.
func (bn *Float) Sub(x, y *Float) *Float {
	if x.isNaN || y.isNaN {
		bn.isNaN = true
		return bn
	}
	bn.val.SetPrec(precision)
	bn.val.Sub(&x.val, &y.val)
	bn.isNaN = false
	return bn
}

// Mul sets bn to x*y and returns bn.
func (bn *Float) Mul(x, y *Float) *Float {
	if x.isNaN || y.isNaN {
		bn.isNaN = true
		return bn
	}
	bn.val.SetPrec(precision)
	bn.val.Mul(&x.val, &y.val)
	bn.isNaN = false
	return bn
}

// MulAdd sets bn to bn + x*y and returns bn, reusing bn's own scratch space
// the way the teacher's BigNumber.MulAdd avoids an extra allocation in inner
// reduction loops.
func (bn *Float) MulAdd(x, y *Float) *Float {
	if x.isNaN || y.isNaN {
		bn.isNaN = true
		return bn
	}
	var t big.Float
	t.SetPrec(precision)
	t.Mul(&x.val, &y.val)
	bn.val.SetPrec(precision)
	bn.val.Add(&bn.val, &t)
	return bn
}

// Quo sets bn to x/y and returns bn. Division by zero yields the NaN
// sentinel rather than a panic or error, so that update_gso_row can surface
// a non-finite mu as a plain bool.
func (bn *Float) Quo(x, y *Float) *Float {
	if x.isNaN || y.isNaN || y.val.Sign() == 0 {
		bn.isNaN = true
		return bn
	}
	bn.val.SetPrec(precision)
	bn.val.Quo(&x.val, &y.val)
	bn.isNaN = false
	return bn
}

// Sqrt sets bn to sqrt(x) and returns bn. Sqrt of a negative value yields
// the NaN sentinel.
func (bn *Float) Sqrt(x *Float) *Float {
	if x.isNaN || x.val.Sign() < 0 {
		bn.isNaN = true
		return bn
	}
	bn.val.SetPrec(precision)
	bn.val.Sqrt(&x.val)
	bn.isNaN = false
	return bn
}

// Log sets bn to the natural log of x and returns bn. x <= 0 yields NaN.
// big.Float has no native transcendental functions; the value is computed
// in float64 and promoted back to the configured precision. Derived metrics
// (log-det, slope) are the only callers and are documented as tolerating
// float64-grade precision for that reason.
func (bn *Float) Log(x *Float) *Float {
	if x.isNaN || x.val.Sign() <= 0 {
		bn.isNaN = true
		return bn
	}
	xf, _ := x.val.Float64()
	bn.val.SetPrec(precision)
	bn.val.SetFloat64(math.Log(xf))
	bn.isNaN = false
	return bn
}

// Exp sets bn to e^x and returns bn, with the same float64-grade precision
// caveat as Log.
func (bn *Float) Exp(x *Float) *Float {
	if x.isNaN {
		bn.isNaN = true
		return bn
	}
	xf, _ := x.val.Float64()
	bn.val.SetPrec(precision)
	bn.val.SetFloat64(math.Exp(xf))
	bn.isNaN = false
	return bn
}

// ScaleBy2 sets bn to x * 2^k (exact, no rounding beyond x's own precision)
// and returns bn.
func (bn *Float) ScaleBy2(x *Float, k int64) *Float {
	if x.isNaN {
		bn.isNaN = true
		return bn
	}
	bn.val.SetPrec(precision)
	bn.val.SetMantExp(&x.val, int(k))
	bn.isNaN = false
	return bn
}

// RoundToInt sets z to the nearest Int to x (ties away from zero) and
// returns z. If x is NaN, z is set to 0 and ok is false.
func (bn *Float) RoundToInt() (*Int, bool) {
	if bn.isNaN {
		return NewIntFromInt64(0), false
	}
	var rounded big.Int
	bn.val.Int(&rounded)
	// big.Float.Int truncates toward zero; correct to round-to-nearest by
	// comparing the fractional remainder against 1/2.
	var frac big.Float
	frac.SetPrec(precision)
	frac.Sub(&bn.val, new(big.Float).SetInt(&rounded))
	half := big.NewFloat(0.5)
	absFrac := new(big.Float).Abs(&frac)
	if absFrac.Cmp(half) >= 0 {
		if bn.val.Sign() >= 0 {
			rounded.Add(&rounded, big.NewInt(1))
		} else {
			rounded.Sub(&rounded, big.NewInt(1))
		}
	}
	return &Int{val: rounded}, true
}

// ToIntWithExponent returns (mantissa, expo) such that
// bn == mantissa_as_Int * 2^expo exactly, truncating the fractional part of
// bn's mantissa bits beyond the current precision. Returns ok=false for NaN.
func (bn *Float) ToIntWithExponent() (*Int, int64, bool) {
	if bn.isNaN {
		return NewIntFromInt64(0), 0, false
	}
	mant := new(big.Float).SetPrec(precision)
	expo := bn.val.MantExp(mant)
	// mant in [0.5, 1) (or 0); scale up to an exact integer using precision bits.
	scaled := new(big.Float).SetPrec(precision + 64)
	scaled.SetMantExp(mant, int(precision))
	var asInt big.Int
	scaled.Int(&asInt)
	return &Int{val: asInt}, int64(expo) - int64(precision), true
}

// Cmp compares bn and y: -1 if bn<y, 0 if equal, +1 if bn>y. NaN compares as
// greater than everything including itself being compared equal only to NaN,
// matching the "non-finite" detection the engine relies on via IsNaN rather
// than Cmp, so this ordering is only used for finite values in practice.
func (bn *Float) Cmp(y *Float) int {
	if bn.isNaN || y.isNaN {
		if bn.isNaN && y.isNaN {
			return 0
		}
		if bn.isNaN {
			return 1
		}
		return -1
	}
	return bn.val.Cmp(&y.val)
}

// String renders bn in decimal, or "NaN".
func (bn *Float) String() string {
	if bn.isNaN {
		return "NaN"
	}
	return bn.val.Text('g', 10)
}

// Float64 returns bn's nearest float64 approximation, NaN for the sentinel.
func (bn *Float) Float64() float64 {
	if bn.isNaN {
		return math.NaN()
	}
	f, _ := bn.val.Float64()
	return f
}
