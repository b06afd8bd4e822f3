package rx

import "github.com/rxgraph/rx/internal/engine"

// Computed is a derived pull node: it lazily recomputes a hashed value
// from a pure function over the graph. T must be hashable — see
// internal/engine.Hash and SPEC_FULL.md §2 for how that hash is
// derived.
type Computed[T any] struct {
	c *engine.Computed
}

// NewComputed creates a Computed on the default graph. The recompute
// function returns the new value; to signal "no real change" (keep the
// previous payload and version while still refreshing dependencies,
// spec.md §4.3 step 3), use NewComputedMaybe.
func NewComputed[T any](recompute func(ctx *Ctx) T) *Computed[T] {
	return NewComputedIn[T](defaultGraph, func(ctx *Ctx) (T, bool) {
		return recompute(ctx), true
	})
}

// NewComputedMaybe creates a Computed whose recompute function may
// decline to publish a new value by returning changed=false.
func NewComputedMaybe[T any](recompute func(ctx *Ctx) (T, bool)) *Computed[T] {
	return NewComputedIn[T](defaultGraph, recompute)
}

// NewComputedIn creates a Computed scoped to g.
func NewComputedIn[T any](g *Graph, recompute func(ctx *Ctx) (T, bool)) *Computed[T] {
	c := g.g.NewComputed(func(ctx *Ctx) (any, bool) {
		value, changed := recompute(ctx)
		return value, changed
	})
	return &Computed[T]{c: c}
}

// Read ensures the node is valid, then returns the cached value and
// records this node in ctx like a Var.
func (c *Computed[T]) Read(ctx *Ctx) T { return as[T](c.c.Read(ctx)) }

// Map derives a further Computed that reads this one and applies f
// (supplemented per SPEC_FULL.md §6, mirroring Var.Map).
func (c *Computed[T]) Map(f func(T) any) *Computed[any] {
	return NewComputed(func(ctx *Ctx) any {
		return f(c.Read(ctx))
	})
}
