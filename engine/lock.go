package engine

import "github.com/fplll-go/gso/gsoerr"

// LockCols implements spec §4.6's lock_cols(): freezes n_known_cols at its
// current value. While locked, discover_row still advances n_known_rows but
// no longer widens n_known_cols or tracks n_source_rows — V5 forbids this
// when int_gram, since the exact Gram matrix has no notion of a column
// subset.
func (e *Engine) LockCols() error {
	if e.cfg.IntGram {
		return gsoerr.NewPreconditionError("LockCols", "cols_locked is only allowed when !int_gram")
	}
	e.colsLocked = true
	return nil
}

// UnlockCols implements spec §4.6's unlock_cols(): retracts n_known_rows to
// n_source_rows — the count as of the last row discovered before (or under)
// the lock that actually widened the source basis — and releases the
// freeze, so discover_row resumes tracking n_source_rows and n_known_cols
// together.
func (e *Engine) UnlockCols() {
	e.nKnownRows = e.nSourceRows
	e.colsLocked = false
}
