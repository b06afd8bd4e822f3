package engine

import "errors"

// The engine's error taxonomy is small and explicit (spec.md §7): every
// one of these is fatal, since none can be recovered from without
// risking glitched or out-of-order effects.
var (
	// ErrInvalidateOutsideBatch is panicked when a Reaction is
	// invalidated while no batch is active. The engine cannot decide
	// effect ordering without a drain boundary.
	ErrInvalidateOutsideBatch = errors.New("rx: reaction invalidated outside a batch")

	// ErrDroppedOwner names a call on a store whose last strong
	// reference has already been dropped, reached only through a weak
	// back-reference in a closure. No engine operation returns it.
	ErrDroppedOwner = errors.New("rx: call on a dropped node")

	// ErrMissingEvaluator is panicked when a node's evaluator slot is
	// nil but eval is required; it indicates a construction bug.
	ErrMissingEvaluator = errors.New("rx: node has no evaluator")
)
