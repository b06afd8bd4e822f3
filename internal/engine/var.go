package engine

import "sync"

// Var is the authoritative mutable source cell: the only node kind that
// changes without being recomputed (spec.md §2).
type Var struct {
	node *Node

	mu    sync.RWMutex
	value any
}

func (g *Graph) NewVar(initial any) *Var {
	v := &Var{
		node:  g.NewNode(KindVar),
		value: initial,
	}
	v.node.version = Hash(initial)
	return v
}

func (v *Var) Node() *Node { return v.node }

// ensureObserved lazily transitions a fresh Var to Valid on first touch,
// per spec.md §3: "Vars are created Invalid(Definitely)... and are
// immediately considered Valid on first read."
func (v *Var) ensureObserved() {
	if v.node.State() == Valid {
		return
	}
	v.mu.RLock()
	hash := Hash(v.value)
	v.mu.RUnlock()
	v.node.markValid(hash, true)
}

// Read returns the current value, recording this Var as a dependency of
// ctx's parent when ctx is non-nil.
func (v *Var) Read(ctx *EvalContext) any {
	v.ensureObserved()

	v.mu.RLock()
	val := v.value
	v.mu.RUnlock()

	v.node.recordDependency(ctx)
	return val
}

// Write publishes newValue if its hash differs from the current value's
// hash, then synchronously invalidates every direct dependent as
// Invalid(Definitely) — there is no upstream for a source node to
// reconcile against, so there is no Maybe stage at this first hop
// (spec.md §4.2).
func (v *Var) Write(newValue any) {
	newHash := Hash(newValue)

	v.mu.Lock()
	if v.node.State() == Valid && Hash(v.value) == newHash {
		v.mu.Unlock()
		return
	}
	v.value = newValue
	v.mu.Unlock()

	v.node.markValid(newHash, true)

	v.node.graph.AutoBatch(func() {
		for _, dependent := range v.node.liveDependents() {
			dependent.Invalidate(InvalidDefinitely)
		}
	})
}

// Update calls mutator on an exclusive borrow of the current value and
// writes back whatever it returns, following the write path (spec.md §6).
func (v *Var) Update(mutator func(any) any) {
	v.mu.Lock()
	next := mutator(v.value)
	v.mu.Unlock()

	v.Write(next)
}

// Replace writes newValue and returns the prior value (spec.md §6).
func (v *Var) Replace(newValue any) any {
	v.mu.RLock()
	old := v.value
	v.mu.RUnlock()

	v.Write(newValue)
	return old
}

// Hash returns the version currently published by this Var, for
// diagnostic use (spec.md §6).
func (v *Var) Hash() Version {
	return v.node.Version()
}
