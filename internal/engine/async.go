package engine

import (
	"context"
	"sync"
)

// Poll is the Poll-like snapshot an Async cell publishes: either
// Pending or Ready(value) (spec.md §4.5).
type Poll struct {
	Ready bool
	Value any
}

// Async is a derived node whose output is produced by a cancellable,
// runtime-scheduled future over inputs captured from other observables
// (spec.md §2, §4.5).
type Async struct {
	node  *Node
	graph *Graph

	mu           sync.RWMutex
	poll         Poll
	hasCaptured  bool
	capturedHash Version
	generation   uint64
	handle       Handle
	observed     bool
	notify       chan struct{}

	capture func(*EvalContext) any
	future  func(context.Context, any) (any, bool)
}

// NewAsync builds an Async cell from a synchronous capture function
// (reads observables, produces an input value K) and an asynchronous
// function taking K and a context that produces the final value T,
// plus whether that value should be published (spec.md §4.5).
func (g *Graph) NewAsync(capture func(*EvalContext) any, future func(context.Context, any) (any, bool)) *Async {
	a := &Async{
		graph:   g,
		capture: capture,
		future:  future,
		notify:  make(chan struct{}),
	}
	a.node = g.NewNode(KindAsync)
	a.node.SetEvaluator(a)
	return a
}

func (a *Async) Node() *Node { return a.node }

func (a *Async) OnBecameObserved() {
	a.mu.Lock()
	a.observed = true
	a.mu.Unlock()
}

func (a *Async) OnBecameUnobserved() {
	a.mu.Lock()
	a.observed = false
	a.mu.Unlock()
	// spec.md §4.5: the hook is exposed but the current spec keeps work
	// running regardless of observation; no suspension here.
}

// Recompute implements the (re-)validation protocol of spec.md §4.5
// steps 1-4: capture fresh inputs, and only if they actually changed,
// cancel any in-flight attempt, publish Pending, and spawn a new one.
func (a *Async) Recompute(ctx *EvalContext) (Version, bool) {
	k := a.capture(ctx)
	khash := Hash(k)

	a.mu.Lock()
	if a.hasCaptured && a.capturedHash == khash {
		a.mu.Unlock()
		return a.node.Version(), false
	}

	if a.handle != nil {
		a.handle.Cancel()
		a.handle = nil
	}
	a.capturedHash = khash
	a.hasCaptured = true
	a.generation++
	gen := a.generation
	a.poll = Poll{Ready: false}
	a.mu.Unlock()

	a.broadcast()

	handle := a.graph.Spawner().Spawn(context.Background(), func(taskCtx context.Context) {
		value, publish := a.future(taskCtx, k)
		if taskCtx.Err() != nil || !publish {
			return
		}
		a.complete(gen, value)
	})

	a.mu.Lock()
	a.handle = handle
	a.mu.Unlock()

	return Hash(Poll{Ready: false}), true
}

// complete runs on whatever goroutine the runtime completion arrives on
// (spec.md §5 "Concurrency contract"). It acquires the cell's lock only
// briefly; gen guards against a completion that lost the race against a
// newer respawn (spec.md §4.5 step 5, §9 "Async completion callbacks").
func (a *Async) complete(gen uint64, value any) {
	a.mu.Lock()
	if gen != a.generation {
		a.mu.Unlock()
		return
	}
	a.poll = Poll{Ready: true, Value: value}
	a.mu.Unlock()

	a.broadcast()

	newHash := Hash(Poll{Ready: true, Value: value})
	a.node.markValid(newHash, true)

	a.node.graph.AutoBatch(func() {
		for _, dependent := range a.node.liveDependents() {
			dependent.Invalidate(InvalidMaybe)
		}
	})
}

func (a *Async) broadcast() {
	a.mu.Lock()
	close(a.notify)
	a.notify = make(chan struct{})
	a.mu.Unlock()
}

func (a *Async) changed() <-chan struct{} {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.notify
}

// Read returns the current snapshot, registering a dependency like any
// Computed (spec.md §4.5).
func (a *Async) Read(ctx *EvalContext) Poll {
	a.node.EnsureValid()

	a.mu.RLock()
	p := a.poll
	a.mu.RUnlock()

	a.node.recordDependency(ctx)
	return p
}

// Ready suspends until a Ready snapshot is published or ctx is
// cancelled (spec.md §6 "an awaitable ready(ctx?)").
func (a *Async) Ready(ctx context.Context) (any, error) {
	for {
		a.node.EnsureValid()

		a.mu.RLock()
		p := a.poll
		changed := a.notify
		a.mu.RUnlock()

		if p.Ready {
			return p.Value, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
