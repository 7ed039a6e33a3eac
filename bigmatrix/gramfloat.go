package bigmatrix

import (
	"fmt"

	"github.com/fplll-go/gso/bignumber"
)

// GramFloat is the float Gram companion gf, populated lazily: a fresh row
// is filled with the NaN sentinel on discovery (spec §4.2) and each entry
// is computed from bf on first use by the engine rather than eagerly here.
type GramFloat struct {
	rows [][]*bignumber.Float
}

func NewGramFloat() *GramFloat { return &GramFloat{} }

func (g *GramFloat) NumRows() int { return len(g.rows) }

// DiscoverRow appends a new row of NaN sentinels of length i+1.
func (g *GramFloat) DiscoverRow() int {
	i := len(g.rows)
	row := make([]*bignumber.Float, i+1)
	for k := range row {
		row[k] = bignumber.NaN()
	}
	g.rows = append(g.rows, row)
	return i
}

func (g *GramFloat) Get(i, j int) (*bignumber.Float, error) {
	a, b := sym(i, j)
	if a < 0 || a >= len(g.rows) || b > a {
		return nil, fmt.Errorf("GramFloat.Get: index (%d,%d) out of range for %d rows", i, j, len(g.rows))
	}
	return g.rows[a][b], nil
}

func (g *GramFloat) Set(i, j int, x *bignumber.Float) error {
	a, b := sym(i, j)
	if a < 0 || a >= len(g.rows) || b > a {
		return fmt.Errorf("GramFloat.Set: index (%d,%d) out of range for %d rows", i, j, len(g.rows))
	}
	g.rows[a][b] = bignumber.NewFloat().Set(x)
	return nil
}

// SetNaN invalidates g(i,j), forcing recomputation from bf on next use.
func (g *GramFloat) SetNaN(i, j int) error {
	a, b := sym(i, j)
	if a < 0 || a >= len(g.rows) || b > a {
		return fmt.Errorf("GramFloat.SetNaN: index (%d,%d) out of range for %d rows", i, j, len(g.rows))
	}
	g.rows[a][b] = bignumber.NaN()
	return nil
}

// InvalidateRow sets every entry g(i,*) and g(*,i) to NaN, as row_op_end
// does for the row's own Gram column/row after a mutation.
func (g *GramFloat) InvalidateRow(i int) error {
	if i < 0 || i >= len(g.rows) {
		return fmt.Errorf("GramFloat.InvalidateRow: row %d out of range for %d rows", i, len(g.rows))
	}
	for k := 0; k <= i; k++ {
		g.rows[i][k] = bignumber.NaN()
	}
	for k := i + 1; k < len(g.rows); k++ {
		g.rows[k][i] = bignumber.NaN()
	}
	return nil
}

// SwapRows mirrors GramInt.SwapRows.
func (g *GramFloat) SwapRows(i, j int) error {
	n := len(g.rows)
	if i < 0 || j < 0 || i >= n || j >= n {
		return fmt.Errorf("GramFloat.SwapRows: index (%d,%d) out of range for %d rows", i, j, n)
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
	updated := make([][]*bignumber.Float, n)
	for a := 0; a < n; a++ {
		updated[a] = make([]*bignumber.Float, a+1)
		for b := 0; b <= a; b++ {
			v, err := g.Get(perm(a), perm(b))
			if err != nil {
				return err
			}
			updated[a][b] = bignumber.NewFloat().Set(v)
		}
	}
	g.rows = updated
	return nil
}

func (g *GramFloat) RotateRight(first, last int) error { return g.rotate(first, last, true) }
func (g *GramFloat) RotateLeft(first, last int) error  { return g.rotate(first, last, false) }

func (g *GramFloat) rotate(first, last int, right bool) error {
	n := len(g.rows)
	if first < 0 || last >= n || first > last {
		return fmt.Errorf("GramFloat.rotate: invalid range [%d,%d] for %d rows", first, last, n)
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
	updated := make([][]*bignumber.Float, n)
	for a := 0; a < n; a++ {
		updated[a] = make([]*bignumber.Float, a+1)
		for b := 0; b <= a; b++ {
			v, err := g.Get(perm(a), perm(b))
			if err != nil {
				return err
			}
			updated[a][b] = bignumber.NewFloat().Set(v)
		}
	}
	g.rows = updated
	return nil
}

func (g *GramFloat) Shrink(newNumRows int) error {
	if newNumRows < 0 || newNumRows > len(g.rows) {
		return fmt.Errorf("GramFloat.Shrink: invalid newNumRows %d for %d rows", newNumRows, len(g.rows))
	}
	g.rows = g.rows[:newNumRows]
	return nil
}

// MaxDiagonal returns the maximum finite gf(i,i), and false if there are no
// finite diagonal entries.
func (g *GramFloat) MaxDiagonal() (*bignumber.Float, bool) {
	var max *bignumber.Float
	for i := 0; i < len(g.rows); i++ {
		d := g.rows[i][i]
		if d.IsNaN() {
			continue
		}
		if max == nil || d.Cmp(max) > 0 {
			max = d
		}
	}
	return max, max != nil
}
