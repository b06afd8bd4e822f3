package rx

import "github.com/rxgraph/rx/internal/engine"

// The engine's error taxonomy (spec.md §7): small, explicit, and fatal.
// None of these represent a recoverable condition internal to the
// engine — all recoverable behavior is either idempotent (the
// Maybe→Valid short-circuit) or externally visible only through
// user-supplied functions.
var (
	// ErrInvalidateOutsideBatch is panicked when a Reaction is
	// invalidated while no batch is active.
	ErrInvalidateOutsideBatch = engine.ErrInvalidateOutsideBatch

	// ErrDroppedOwner names a call on a node whose last strong reference
	// has already been dropped. No operation in this module returns it.
	ErrDroppedOwner = engine.ErrDroppedOwner

	// ErrMissingEvaluator is panicked when a node's evaluator slot is
	// nil but eval is required; it indicates a construction bug.
	ErrMissingEvaluator = engine.ErrMissingEvaluator
)
