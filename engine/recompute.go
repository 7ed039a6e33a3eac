package engine

// RecomputeGram implements the original source's full Gram resync (its
// "gso_update_gram_row"/recompute path, not surfaced as a named spec
// operation but present throughout the original implementation as a
// numerical-drift recovery tool): it recomputes every known row's Gram
// entries exactly from b (int_gram) or marks them for lazy recomputation
// from bf (!int_gram), then invalidates the full GSO prefix so mu/r are
// rebuilt from the refreshed Gram data on next use.
func (e *Engine) RecomputeGram() {
	for i := 0; i < e.nKnownRows; i++ {
		if e.cfg.IntGram {
			e.computeGramRow(i)
		} else {
			_ = e.gf.InvalidateRow(i)
		}
		e.gsoValidCols[i] = 0
	}
}
