package rx

import (
	"context"

	"github.com/rxgraph/rx/internal/engine"
)

// Poll is the snapshot an Async cell publishes: either Pending or
// Ready(value).
type Poll[T any] struct {
	Ready bool
	Value T
}

// Async is a derived node whose value is produced by a cancellable,
// runtime-scheduled future over inputs captured from other observables
// (spec.md §2, §4.5).
type Async[T, K any] struct {
	a *engine.Async
}

// NewAsync constructs an Async cell on the default graph from a
// synchronous capture function (reads observables, produces an input
// value K) and an asynchronous function taking K and a context that
// produces the final value, plus whether it should be published.
func NewAsync[T, K any](
	capture func(ctx *Ctx) K,
	future func(ctx context.Context, input K) (T, bool),
) *Async[T, K] {
	return NewAsyncIn[T, K](defaultGraph, capture, future)
}

// NewAsyncIn constructs an Async cell scoped to g.
func NewAsyncIn[T, K any](
	g *Graph,
	capture func(ctx *Ctx) K,
	future func(ctx context.Context, input K) (T, bool),
) *Async[T, K] {
	a := g.g.NewAsync(
		func(ctx *Ctx) any { return capture(ctx) },
		func(taskCtx context.Context, input any) (any, bool) {
			return future(taskCtx, input.(K))
		},
	)
	return &Async[T, K]{a: a}
}

// Read returns the current snapshot, registering a dependency like any
// Computed.
func (a *Async[T, K]) Read(ctx *Ctx) Poll[T] {
	p := a.a.Read(ctx)
	value, _ := p.Value.(T)
	return Poll[T]{Ready: p.Ready, Value: value}
}

// Ready suspends until a Ready snapshot is published or ctx is
// cancelled.
func (a *Async[T, K]) Ready(ctx context.Context) (T, error) {
	v, err := a.a.Ready(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	value, _ := v.(T)
	return value, nil
}
