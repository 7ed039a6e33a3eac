package engine

import "github.com/fplll-go/gso/bignumber"

// MaxGramDiagonal implements spec §4.5's get_max_gram(): the maximum
// diagonal entry of g (int_gram) or gf, over every known row, forcing the
// float Gram diagonal to be computed from bf where it is still the NaN
// sentinel.
func (e *Engine) MaxGramDiagonal() (*bignumber.Float, bool) {
	var max *bignumber.Float
	for i := 0; i < e.nKnownRows; i++ {
		t, err := e.gram(i, i)
		if err != nil || t.IsNaN() {
			continue
		}
		if max == nil || t.Cmp(max) > 0 {
			max = t
		}
	}
	return max, max != nil
}

// MaxRDiagonal implements spec §4.5's get_max_bstar(): the maximum r(i,i)
// over every known row, lazily extending each row's GSO prefix to its own
// diagonal first.
func (e *Engine) MaxRDiagonal() (*bignumber.Float, bool) {
	var max *bignumber.Float
	for i := 0; i < e.nKnownRows; i++ {
		ok, err := e.UpdateGSORow(i, i)
		if err != nil || !ok {
			continue
		}
		v, err := e.r.Get(i, i)
		if err != nil {
			continue
		}
		if max == nil || v.Cmp(max) > 0 {
			max = v
		}
	}
	return max, max != nil
}
