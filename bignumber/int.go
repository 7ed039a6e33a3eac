package bignumber

import "math/big"

// Int is an arbitrary-precision integer row/scalar entry, backed by
// math/big.Int. It supports the exact shift-by-2^k and
// mantissa/exponent decomposition the GSO engine's numeric back-end
// contract (spec §6) requires of Z.
type Int struct {
	val big.Int
}

// NewIntFromInt64 returns an Int equal to input.
func NewIntFromInt64(input int64) *Int {
	i := &Int{}
	i.val.SetInt64(input)
	return i
}

// NewIntFromBigInt returns an Int that is a deep copy of input.
func NewIntFromBigInt(input *big.Int) *Int {
	i := &Int{}
	i.val.Set(input)
	return i
}

// BigInt returns a reference to the underlying math/big.Int. Callers must
// not mutate the result.
func (z *Int) BigInt() *big.Int {
	return &z.val
}

// Set sets z to a deep copy of x and returns z.
func (z *Int) Set(x *Int) *Int {
	z.val.Set(&x.val)
	return z
}

// Add sets z to x+y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	z.val.Add(&x.val, &y.val)
	return z
}

// Sub sets z to x-y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	z.val.Sub(&x.val, &y.val)
	return z
}

// Mul sets z to x*y and returns z.
func (z *Int) Mul(x, y *Int) *Int {
	z.val.Mul(&x.val, &y.val)
	return z
}

// MulInt64 sets z to x*c and returns z.
func (z *Int) MulInt64(x *Int, c int64) *Int {
	z.val.Mul(&x.val, big.NewInt(c))
	return z
}

// AddMul sets z to z + x*y and returns z.
func (z *Int) AddMul(x, y *Int) *Int {
	var t big.Int
	t.Mul(&x.val, &y.val)
	z.val.Add(&z.val, &t)
	return z
}

// AddMulInt64 sets z to z + x*c and returns z.
func (z *Int) AddMulInt64(x *Int, c int64) *Int {
	var t big.Int
	t.Mul(&x.val, big.NewInt(c))
	z.val.Add(&z.val, &t)
	return z
}

// Shift sets z to x * 2^k (k may be negative, in which case the shift is an
// exact arithmetic right shift; callers must only request right shifts that
// are exact, as the engine does when unwinding a 2^e factor it introduced
// itself) and returns z.
func (z *Int) Shift(x *Int, k int64) *Int {
	if k >= 0 {
		z.val.Lsh(&x.val, uint(k))
		return z
	}
	z.val.Rsh(&x.val, uint(-k))
	return z
}

// Sign returns -1, 0 or +1.
func (z *Int) Sign() int {
	return z.val.Sign()
}

// IsZero reports whether z == 0.
func (z *Int) IsZero() bool {
	return z.val.Sign() == 0
}

// AsInt64 returns z as an int64 and true, or (0, false) if z does not fit.
func (z *Int) AsInt64() (int64, bool) {
	if !z.val.IsInt64() {
		return 0, false
	}
	return z.val.Int64(), true
}

// TrailingZeroBits returns the number of trailing zero bits of |z|, or 0
// if z is zero.
func (z *Int) TrailingZeroBits() int64 {
	if z.val.Sign() == 0 {
		return 0
	}
	return int64(z.val.TrailingZeroBits())
}

// Cmp compares z and y.
func (z *Int) Cmp(y *Int) int {
	return z.val.Cmp(&y.val)
}

// Neg sets z to -x and returns z.
func (z *Int) Neg(x *Int) *Int {
	z.val.Neg(&x.val)
	return z
}

// String renders z in decimal.
func (z *Int) String() string {
	return z.val.String()
}

// ToFloatWithExponent returns (mantissa, exponent) such that
// z == mantissa * 2^exponent, exactly when z fits in the current precision
// and rounded to that precision otherwise, with mantissa a Float whose
// absolute value is in [0.5, 1) (or exactly 0 if z is 0). This is the Z-side half of
// the numeric back-end contract in spec §6, grounded on the teacher's
// BigNumber.AsFloat/Normalize pairing in bignumber.go, which performs the
// same mantissa-exponent split on a mixed int/float type.
func (z *Int) ToFloatWithExponent() (*Float, int64) {
	if z.val.Sign() == 0 {
		return NewFloat(), 0
	}
	f := NewFloat()
	f.val.SetPrec(precision)
	f.val.SetInt(&z.val)
	// SetInt rounds to precision bits when z's bit length exceeds it, and
	// that rounding can itself carry across a power-of-two boundary (a
	// precision-bit run of 1s rounds up). MantExp must therefore be read
	// from f after SetInt, not derived from z's pre-rounding BitLen, or the
	// mantissa can land in [1,2) instead of [0.5,1) and the exponent would
	// be off by one.
	expo := f.val.MantExp(&f.val)
	return f, int64(expo)
}

// Norm returns the sum of squares of a slice of Ints — the Euclidean norm
// squared used when constructing an exact integer Gram diagonal.
func Norm(xs []*Int) *Int {
	acc := NewIntFromInt64(0)
	for _, x := range xs {
		acc.AddMul(x, x)
	}
	return acc
}
