// Package metrics provides the thin derived-quantity layer spec §2's
// component 6 describes: slope, log-det, root-det, slide-potential and the
// Gaussian heuristic, each built entirely on the engine's public query
// interface (GetR/GetRExp), never reaching into its internal state.
package metrics

import (
	"math"

	"github.com/fplll-go/gso/bignumber"
	"github.com/fplll-go/gso/gsoerr"
)

// rProvider is the slice of the engine's interface these metrics need, kept
// narrow so tests can exercise them against a stub.
type rProvider interface {
	GetR(i, j int) (*bignumber.Float, error)
	GetRExp(i, j int) (*bignumber.Float, int64, error)
}

// GetLogDet implements spec §4.5's get_log_det(s,e) = Σ_{i∈[s,e)} log(r(i,i)).
func GetLogDet(e rProvider, s, end int) (*bignumber.Float, error) {
	if end < s {
		return nil, gsoerr.NewPreconditionError("GetLogDet", "end=%d < s=%d", end, s)
	}
	acc := bignumber.NewFloat()
	for i := s; i < end; i++ {
		rii, err := e.GetR(i, i)
		if err != nil {
			return nil, err
		}
		logRii := bignumber.NewFloat().Log(rii)
		if logRii.IsNaN() {
			return nil, gsoerr.NewNumericNonFiniteError(i, i)
		}
		acc = bignumber.NewFloat().Add(acc, logRii)
	}
	return acc, nil
}

// GetRootDet implements spec §4.5's get_root_det(s,e) = exp(log_det/(e-s)).
func GetRootDet(e rProvider, s, end int) (*bignumber.Float, error) {
	n := end - s
	if n <= 0 {
		return nil, gsoerr.NewPreconditionError("GetRootDet", "empty range [%d,%d)", s, end)
	}
	logDet, err := GetLogDet(e, s, end)
	if err != nil {
		return nil, err
	}
	mean := bignumber.NewFloat().Quo(logDet, bignumber.NewFloatFromInt64(int64(n)))
	return bignumber.NewFloat().Exp(mean), nil
}

// GetCurrentSlope implements spec §4.5's get_current_slope(s,e): the
// least-squares slope of ln(r(i,i)) — with row exponents folded in as
// + expo·ln 2 — against i, over [s,e).
func GetCurrentSlope(e rProvider, s, end int) (*bignumber.Float, error) {
	n := end - s
	if n < 2 {
		return nil, gsoerr.NewPreconditionError("GetCurrentSlope", "need at least 2 rows in [%d,%d)", s, end)
	}
	ln2 := math.Ln2
	xs := make([]float64, n)
	ys := make([]float64, n)
	for k := 0; k < n; k++ {
		i := s + k
		rii, expo, err := e.GetRExp(i, i)
		if err != nil {
			return nil, err
		}
		if rii.Sign() <= 0 {
			return nil, gsoerr.NewNumericNonFiniteError(i, i)
		}
		ys[k] = math.Log(rii.Float64()) + float64(expo)*ln2
		xs[k] = float64(i)
	}

	var meanX, meanY float64
	for k := 0; k < n; k++ {
		meanX += xs[k]
		meanY += ys[k]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var num, den float64
	for k := 0; k < n; k++ {
		dx := xs[k] - meanX
		num += dx * (ys[k] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return nil, gsoerr.NewPreconditionError("GetCurrentSlope", "degenerate range [%d,%d)", s, end)
	}
	return bignumber.NewFloatFromFloat64(num / den), nil
}

// GetSlidePotential implements spec §4.5's get_slide_potential(s,e,block):
// Σ_{i=0}^{p-1} (p-i)·log_det(i·block, (i+1)·block), with p = ⌊(e-s)/block⌋,
// decremented by one when (e-s) is an exact multiple of block.
func GetSlidePotential(e rProvider, s, end, block int) (*bignumber.Float, error) {
	if block <= 0 {
		return nil, gsoerr.NewPreconditionError("GetSlidePotential", "block=%d must be positive", block)
	}
	span := end - s
	p := span / block
	if span%block == 0 {
		p--
	}
	acc := bignumber.NewFloat()
	for i := 0; i < p; i++ {
		ld, err := GetLogDet(e, i*block, (i+1)*block)
		if err != nil {
			return nil, err
		}
		weight := bignumber.NewFloatFromInt64(int64(p - i))
		term := bignumber.NewFloat().Mul(weight, ld)
		acc = bignumber.NewFloat().Add(acc, term)
	}
	return acc, nil
}

// GaussianHeuristic implements spec §4.5's gaussian_heuristic: it computes
// t = Γ(block/2+1)^(2/block) / π, multiplies by rootDet, scales by
// 2^-maxDistExpo, multiplies by factor, and returns the smaller of that
// candidate and the current maxDist, together with whether it replaced it.
// Γ is evaluated in float64, the same precision-loss tradeoff bignumber.Float
// accepts for Log/Exp, since this bound is inherently heuristic.
func GaussianHeuristic(maxDist *bignumber.Float, maxDistExpo int64, block int, rootDet, factor *bignumber.Float) (*bignumber.Float, bool) {
	if block <= 0 {
		return maxDist, false
	}
	gamma := math.Gamma(float64(block)/2 + 1)
	t := math.Pow(gamma, 2.0/float64(block)) / math.Pi
	candidate := bignumber.NewFloat().Mul(bignumber.NewFloatFromFloat64(t), rootDet)
	candidate = bignumber.NewFloat().ScaleBy2(candidate, -maxDistExpo)
	candidate = bignumber.NewFloat().Mul(candidate, factor)

	if maxDist == nil || maxDist.IsNaN() || candidate.Cmp(maxDist) < 0 {
		return candidate, true
	}
	return maxDist, false
}
