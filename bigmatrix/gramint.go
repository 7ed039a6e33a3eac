package bigmatrix

import (
	"fmt"

	"github.com/fplll-go/gso/bignumber"
)

// GramInt is the exact integer Gram matrix g, stored only for j <= i (V1).
// Each row i is its own slice of length i+1, mirroring how the engine's
// basis rows are discovered one at a time (discover_row) rather than
// allocated up front — a jagged, row-addressable layout instead of the
// flat rectangular one IntMatrix/FloatMatrix use, because Gram storage is
// triangular by construction (spec §9, "Gram-matrix triangular storage").
type GramInt struct {
	rows [][]*bignumber.Int
}

// NewGramInt returns an empty Gram matrix with no rows.
func NewGramInt() *GramInt {
	return &GramInt{}
}

// NumRows returns the number of discovered rows.
func (g *GramInt) NumRows() int { return len(g.rows) }

// DiscoverRow appends row i (i must equal NumRows()) as a fresh row of
// zeros of length i+1, for discover_row to populate.
func (g *GramInt) DiscoverRow() int {
	i := len(g.rows)
	row := make([]*bignumber.Int, i+1)
	for k := range row {
		row[k] = bignumber.NewIntFromInt64(0)
	}
	g.rows = append(g.rows, row)
	return i
}

// sym normalizes (i,j) to (max,min), the triangular-storage convention
// spec §9 calls sym_g.
func sym(i, j int) (int, int) {
	if i >= j {
		return i, j
	}
	return j, i
}

// Get returns g(i,j) = <b(i), b(j)>, normalizing to the stored (max,min)
// entry.
func (g *GramInt) Get(i, j int) (*bignumber.Int, error) {
	a, b := sym(i, j)
	if a < 0 || a >= len(g.rows) || b > a {
		return nil, fmt.Errorf("GramInt.Get: index (%d,%d) out of range for %d rows", i, j, len(g.rows))
	}
	return g.rows[a][b], nil
}

// Set sets g(i,j) to a deep copy of x, normalizing to (max,min).
func (g *GramInt) Set(i, j int, x *bignumber.Int) error {
	a, b := sym(i, j)
	if a < 0 || a >= len(g.rows) || b > a {
		return fmt.Errorf("GramInt.Set: index (%d,%d) out of range for %d rows", i, j, len(g.rows))
	}
	g.rows[a][b] = bignumber.NewIntFromInt64(0).Set(x)
	return nil
}

// SwapRows realizes spec §4.4's row_swap Gram update: after swapping basis
// rows i and j, g'(a,b) = g(perm(a),perm(b)) where perm transposes i and j
// and fixes everything else. This direct relabeling is equivalent to (and
// replaces hand-coded casework for) the four explicit sub-cases spec.md
// lists for row_swap, by construction: sym_g already normalizes whichever
// of perm(a),perm(b) is larger.
func (g *GramInt) SwapRows(i, j int) error {
	n := len(g.rows)
	if i < 0 || j < 0 || i >= n || j >= n {
		return fmt.Errorf("GramInt.SwapRows: index (%d,%d) out of range for %d rows", i, j, n)
	}
	perm := func(k int) int {
		if k == i {
			return j
		}
		if k == j {
			return i
		}
		return k
	}
	updated := make([][]*bignumber.Int, n)
	for a := 0; a < n; a++ {
		updated[a] = make([]*bignumber.Int, a+1)
		for b := 0; b <= a; b++ {
			v, err := g.Get(perm(a), perm(b))
			if err != nil {
				return err
			}
			updated[a][b] = bignumber.NewIntFromInt64(0).Set(v)
		}
	}
	g.rows = updated
	return nil
}

// RotateRight right-rotates rows [first,last] of the Gram matrix the same
// way IntMatrix.RotateRight rotates basis rows, preserving the triangular
// storage invariant by relabeling through the rotation permutation.
func (g *GramInt) RotateRight(first, last int) error {
	return g.rotate(first, last, true)
}

// RotateLeft left-rotates rows [first,last].
func (g *GramInt) RotateLeft(first, last int) error {
	return g.rotate(first, last, false)
}

func (g *GramInt) rotate(first, last int, right bool) error {
	n := len(g.rows)
	if first < 0 || last >= n || first > last {
		return fmt.Errorf("GramInt.rotate: invalid range [%d,%d] for %d rows", first, last, n)
	}
	perm := func(k int) int {
		if k < first || k > last {
			return k
		}
		if right {
			if k == first {
				return last
			}
			return k - 1
		}
		if k == last {
			return first
		}
		return k + 1
	}
	updated := make([][]*bignumber.Int, n)
	for a := 0; a < n; a++ {
		updated[a] = make([]*bignumber.Int, a+1)
		for b := 0; b <= a; b++ {
			v, err := g.Get(perm(a), perm(b))
			if err != nil {
				return err
			}
			updated[a][b] = bignumber.NewIntFromInt64(0).Set(v)
		}
	}
	g.rows = updated
	return nil
}

// Shrink drops rows [newNumRows, NumRows()).
func (g *GramInt) Shrink(newNumRows int) error {
	if newNumRows < 0 || newNumRows > len(g.rows) {
		return fmt.Errorf("GramInt.Shrink: invalid newNumRows %d for %d rows", newNumRows, len(g.rows))
	}
	g.rows = g.rows[:newNumRows]
	return nil
}

// MaxDiagonal returns the maximum g(i,i) over all discovered rows, and a
// bool that is false if there are no rows.
func (g *GramInt) MaxDiagonal() (*bignumber.Int, bool) {
	if len(g.rows) == 0 {
		return nil, false
	}
	max := g.rows[0][0]
	for i := 1; i < len(g.rows); i++ {
		if g.rows[i][i].Cmp(max) > 0 {
			max = g.rows[i][i]
		}
	}
	return max, true
}
