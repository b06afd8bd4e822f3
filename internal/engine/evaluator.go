package engine

// Evaluator is the pluggable strategy supplying recompute behavior for a
// node kind, per spec.md §3 ("optional evaluator"). A tagged variant over
// {Var, Const, Computed, Reaction, Async} would work just as well; Go's
// idiomatic equivalent is this small capability-set interface
// (spec.md §9, "Dynamic dispatch for evaluators").
type Evaluator interface {
	// Recompute runs the node's recompute function with a fresh
	// EvalContext and returns the new version together with whether the
	// published value actually changed. A false "changed" keeps the
	// node's previous payload and version (spec.md §4.3 step 3, the
	// "no-change" signal).
	Recompute(ctx *EvalContext) (version Version, changed bool)

	// OnBecameObserved/OnBecameUnobserved fire when the node's observer
	// count transitions across zero, letting Async cells start or stop
	// their background work (spec.md §4.5).
	OnBecameObserved()
	OnBecameUnobserved()
}
