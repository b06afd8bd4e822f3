package rx

import "github.com/rxgraph/rx/internal/engine"

// Var is a typical read/write source cell: the only node that changes
// without being recomputed.
type Var[T any] struct {
	v *engine.Var
}

// NewVar creates a Var on the default graph.
func NewVar[T any](initial T) *Var[T] {
	return NewVarIn[T](defaultGraph, initial)
}

// NewVarIn creates a Var scoped to g. Go has no generic methods, so
// graph-scoped constructors are free functions taking the graph
// explicitly rather than methods on *Graph.
func NewVarIn[T any](g *Graph, initial T) *Var[T] {
	return &Var[T]{v: g.g.NewVar(initial)}
}

// Read returns the current value, tracking the dependency if ctx is
// non-nil.
func (v *Var[T]) Read(ctx *Ctx) T { return as[T](v.v.Read(ctx)) }

// Write publishes a new value, invalidating dependents if the value's
// hash actually changed.
func (v *Var[T]) Write(value T) { v.v.Write(value) }

// Update calls mutator on the current value and writes back the result.
func (v *Var[T]) Update(mutator func(T) T) {
	v.v.Update(func(cur any) any { return mutator(as[T](cur)) })
}

// Replace writes a new value and returns the prior one.
func (v *Var[T]) Replace(value T) T { return as[T](v.v.Replace(value)) }

// Hash returns the version currently published by this Var.
func (v *Var[T]) Hash() engine.Version { return v.v.Hash() }

// Toggle flips a boolean Var in place (spec.md §6 convenience).
func Toggle(v *Var[bool]) {
	v.Update(func(b bool) bool { return !b })
}

// Map derives a Computed that reads this Var and applies f, sugar over
// constructing a Computed directly (see original_source/src/arc/var.rs
// Var::map; supplemented per SPEC_FULL.md §6).
func (v *Var[T]) Map(f func(T) any) *Computed[any] {
	return NewComputed(func(ctx *Ctx) any {
		return f(v.Read(ctx))
	})
}
