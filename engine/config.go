// Package engine implements the incremental Gram-Schmidt Orthogonalization
// engine: the numeric core that mediates between a lattice basis's integer,
// scaled-float, and Gram representations, keeping mu/r consistent under
// in-place row mutation while recomputing only the invalidated suffix.
//
// The package is organized the way the teacher splits pslqops from
// strategy: engine owns all state and the row-mutation/query protocol;
// package metrics is a thin consumer layered on top, exactly as the
// teacher's strategy package is a thin consumer of pslqops.
package engine

import "github.com/fplll-go/gso/gsoerr"

// Config holds the construction-time options of spec §4.1. Each option is
// independent except where noted on the field.
type Config struct {
	// IntGram keeps an exact integer Gram matrix g alongside the basis.
	// Mutually exclusive with ColsLocked (V5); when set, RowExpoEnabled has
	// no effect.
	IntGram bool

	// RowExpoEnabled maintains a per-row scaled float image bf with a
	// shared exponent RowExpo[i]. Only meaningful when !IntGram.
	RowExpoEnabled bool

	// TransformEnabled maintains U, the cumulative unimodular transform.
	TransformEnabled bool

	// InvTransformEnabled additionally maintains UInvT, the transpose of
	// the inverse transform. Requires TransformEnabled. Forbids RowSwap
	// (spec §4.4, §9 Open Question: "no supported alternative").
	InvTransformEnabled bool

	// RowOpForceLong prefers the mantissa+exponent code path over exact
	// bigint multiplicands in RowAddMulWe's dispatch.
	RowOpForceLong bool

	// ColsLocked, if requested at construction, freezes n_known_cols
	// immediately; only legal when !IntGram (V5).
	ColsLocked bool
}

// validate enforces spec §4.1's construction-failure rules.
func (c Config) validate() error {
	if c.InvTransformEnabled && !c.TransformEnabled {
		return gsoerr.NewConfigError("inv_transform_enabled requires transform_enabled")
	}
	if c.IntGram && c.ColsLocked {
		return gsoerr.NewConfigError("cols_locked is only allowed when !int_gram")
	}
	return nil
}
