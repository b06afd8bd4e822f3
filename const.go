package rx

import "github.com/rxgraph/rx/internal/engine"

// Const is an immutable wrapper used uniformly wherever a Var or
// Computed is expected: always Valid, never invalidated, no
// dependencies of its own (spec.md §2, §3).
type Const[T any] struct {
	c *engine.Const
}

// NewConst wraps value as an immutable graph node on the default graph.
func NewConst[T any](value T) *Const[T] {
	return NewConstIn[T](defaultGraph, value)
}

// NewConstIn wraps value as an immutable graph node scoped to g.
func NewConstIn[T any](g *Graph, value T) *Const[T] {
	return &Const[T]{c: g.g.NewConst(value)}
}

// Read returns the wrapped value, recording this Const as a dependency
// of ctx's parent when ctx is non-nil (a no-op in effect, since a Const
// never invalidates, but it keeps the dependency set accurate).
func (c *Const[T]) Read(ctx *Ctx) T { return as[T](c.c.Read(ctx)) }
