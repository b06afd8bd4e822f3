// Package rx is a general-purpose reactive value graph: observable
// state cells (Var), derived pull values (Computed), side-effecting
// push reactions (Reaction), and asynchronously-computed cells (Async),
// all wired through a shared dependency-tracking and invalidation
// engine so that a derived value recomputes exactly when, and only
// when, the values it read have actually changed.
package rx

import "github.com/rxgraph/rx/internal/engine"

// Ctx is the per-evaluation scratchpad passed to every recompute
// function. Reading a Var, Computed, or Async through it records a
// dependency; reading without one (nil) skips tracking.
type Ctx = engine.EvalContext

// Graph is one reactive universe: its own batch flag and change queue.
// Most programs only need the package-level convenience constructors,
// which operate on a shared default Graph; construct one explicitly to
// isolate a subgraph (handy in tests) or to opt into SingleThreaded.
type Graph struct {
	g *engine.Graph
}

// GraphOption configures a Graph at construction.
type GraphOption func(*engine.Graph)

// SingleThreaded opts the Graph into the single-threaded cooperative
// variant: creating a node in it or opening a batch on it from any
// goroutine other than the one that created it panics. Reads are not
// checked.
func SingleThreaded() GraphOption { return GraphOption(engine.SingleThreaded()) }

// WithConcurrentDrain opts the Graph into settling each height bucket
// of a batch's change queue through a pool of workers bounded in size,
// instead of one Reaction at a time. Pass 1 or less to keep the
// sequential drain.
func WithConcurrentDrain(workers int) GraphOption {
	return GraphOption(engine.WithConcurrentDrain(workers))
}

// NewGraph creates an isolated reactive universe.
func NewGraph(opts ...GraphOption) *Graph {
	engineOpts := make([]engine.Option, len(opts))
	for i, opt := range opts {
		engineOpts[i] = engine.Option(opt)
	}
	return &Graph{g: engine.NewGraph(engineOpts...)}
}

var defaultGraph = NewGraph()

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
