package engine

import (
	"sync"
	"weak"

	"github.com/google/uuid"
)

// Node is the shared identity of every reactive cell (Var, Const,
// Computed, Reaction, Async), carrying the bookkeeping spec.md §3
// assigns to it: identity, state, version, dependencies, dependents,
// observer count, and an evaluator strategy.
//
// Ownership follows spec.md §5/§9: dependencies (downstream → upstream)
// are ordinary strong pointers, held in deps; dependents (upstream →
// downstream) are weak.Pointer back-references, swept on each walk.
type Node struct {
	mu sync.Mutex

	id    uuid.UUID
	kind  Kind
	graph *Graph

	state   State
	version Version
	height  int

	deps       *Dependencies
	dependents []weak.Pointer[Node]

	observerCount int

	evaluator Evaluator
}

func newNode(g *Graph, kind Kind) *Node {
	return &Node{
		id:      uuid.New(),
		kind:    kind,
		graph:   g,
		state:   InvalidDefinitely,
		deps:    newDependencies(),
		version: 0,
	}
}

func (n *Node) ID() uuid.UUID { return n.id }
func (n *Node) Kind() Kind    { return n.kind }

func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *Node) Version() Version {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.version
}

func (n *Node) Height() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.height
}

func (n *Node) ObserverCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.observerCount
}

func (n *Node) SetEvaluator(e Evaluator) {
	n.mu.Lock()
	n.evaluator = e
	n.mu.Unlock()
}

// markValid publishes version as the node's current version (if changed)
// and transitions it to Valid. Called once a recompute (or a
// recheck-dependencies short-circuit) has settled the node.
func (n *Node) markValid(version Version, changed bool) {
	n.mu.Lock()
	n.state = Valid
	if changed {
		n.version = version
	}
	n.mu.Unlock()
}

// recordDependency is called by a Var/Const/Computed/Reaction/Async
// Read(ctx) implementation: it records (n, currentVersion) in ctx and
// registers ctx's parent as a dependent of n.
func (n *Node) recordDependency(ctx *EvalContext) {
	if ctx == nil {
		return
	}

	ver := n.Version()
	ctx.Record(n, ver)

	parent := ctx.Parent()
	if parent == nil {
		return
	}

	n.addDependent(parent)
	parent.Link(n)
}

// Link updates sub's height relative to dep, mirroring the teacher's
// internal/node.go Link height-bump rule: a subscriber's height is
// always strictly greater than any dependency that itself recomputes.
func (sub *Node) Link(dep *Node) {
	dep.mu.Lock()
	depHeight := dep.height
	hasEvaluator := dep.evaluator != nil
	dep.mu.Unlock()

	if !hasEvaluator {
		return
	}

	sub.mu.Lock()
	if depHeight >= sub.height {
		sub.height = depHeight + 1
	}
	sub.mu.Unlock()
}

func (n *Node) addDependent(dependent *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, w := range n.dependents {
		if d := w.Value(); d != nil && d.ID() == dependent.ID() {
			return
		}
	}
	n.dependents = append(n.dependents, weak.Make(dependent))
}

// liveDependents sweeps dead weak references and returns the live
// dependent nodes, per spec.md §9 ("Sweep dead weak handles on each
// walk.").
func (n *Node) liveDependents() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()

	live := n.dependents[:0]
	var out []*Node
	for _, w := range n.dependents {
		if d := w.Value(); d != nil {
			live = append(live, w)
			out = append(out, d)
		}
	}
	n.dependents = live
	return out
}

// removeDependent drops dependent from n's dependents set, used when a
// recompute retires a stale dependency (spec.md §4.3 step 3) or a node
// is destroyed (spec.md §3 "Destruction").
func (n *Node) removeDependent(dependent *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()

	kept := n.dependents[:0]
	for _, w := range n.dependents {
		if d := w.Value(); d != nil && d.ID() != dependent.ID() {
			kept = append(kept, w)
		}
	}
	n.dependents = kept
}

// Invalidate transitions n to kind if it was Valid, then recursively
// marks every live dependent Invalid(Maybe) — never Definitely, because
// a derived node's own recompute may still hash to the same value
// (spec.md §4.7). If n is already invalid, Maybe upgrades to
// Definitely; Definitely is never downgraded.
//
// A Reaction invalidated while Valid also enqueues itself on the
// change queue; doing so outside an active batch is a programmer
// error (spec.md §4.4, §7).
func (n *Node) Invalidate(kind State) {
	n.mu.Lock()
	if n.state != Valid {
		if kind == InvalidDefinitely {
			n.state = InvalidDefinitely
		}
		n.mu.Unlock()
		return
	}

	n.state = kind
	isReaction := n.kind == KindReaction
	n.mu.Unlock()

	if isReaction {
		if !n.graph.InBatch() {
			panic(ErrInvalidateOutsideBatch)
		}
		n.graph.enqueueReaction(n)
	}

	for _, dependent := range n.liveDependents() {
		dependent.Invalidate(InvalidMaybe)
	}
}

// swapDependencies installs next as n's dependency set, retiring
// upstreams that are no longer present (telling them n is no longer a
// dependent) and adjusting observer counts for any difference, per
// spec.md §4.3 step 3 and §3 invariant I3.
//
// The adjustment propagated to each added/removed upstream is n's own
// observer count, not a flat 1: n may itself be observed by more than
// one armed Reaction, and every one of them needs to see the newly
// added or retired upstream subtree's observer count move by that same
// amount, or I4 ("observer counts are conserved") drifts the moment a
// multiply-observed node changes its dependency set.
func (n *Node) swapDependencies(next *Dependencies) {
	n.mu.Lock()
	prev := n.deps
	n.deps = next
	observerCount := n.observerCount
	n.mu.Unlock()

	if prev == nil {
		prev = newDependencies()
	}

	removed := make([]*Node, 0)
	added := make([]*Node, 0)

	prev.Each(func(upstream *Node, _ Version) {
		if _, stillPresent := next.index[upstream.ID()]; !stillPresent {
			removed = append(removed, upstream)
		}
	})
	next.Each(func(upstream *Node, _ Version) {
		if _, existedBefore := prev.index[upstream.ID()]; !existedBefore {
			added = append(added, upstream)
		}
	})

	for _, upstream := range removed {
		upstream.removeDependent(n)
		if observerCount > 0 {
			upstream.adjustObserver(-observerCount)
		}
	}
	for _, upstream := range added {
		if observerCount > 0 {
			upstream.adjustObserver(observerCount)
		}
	}
}

// recheckDependencies implements spec.md §4.3 step 2: ask every
// recorded upstream to ensure itself valid and compare the resulting
// version against what was observed last time. All must match for the
// Maybe-invalid node to become Valid without recomputing.
func (n *Node) recheckDependencies() bool {
	n.mu.Lock()
	deps := n.deps
	n.mu.Unlock()

	if deps == nil {
		return false
	}

	upToDate := true
	deps.Each(func(upstream *Node, observed Version) {
		if !upToDate {
			return
		}
		if upstream.EnsureValid() != observed {
			upToDate = false
		}
	})
	return upToDate
}

// EnsureValid runs the three-step protocol of spec.md §4.3: a Valid
// node returns immediately; a Maybe-invalid node tries the cheap
// version recheck first; anything else recomputes through the node's
// evaluator.
func (n *Node) EnsureValid() Version {
	n.mu.Lock()
	state := n.state
	n.mu.Unlock()

	switch state {
	case Valid:
		return n.Version()
	case InvalidMaybe:
		if n.recheckDependencies() {
			n.markValid(n.Version(), false)
			return n.Version()
		}
		fallthrough
	default:
		return n.recompute()
	}
}

// ForceRecompute bypasses the Valid/Maybe fast paths and always
// recomputes, backing Reaction.UpdateUnchecked (spec.md §6).
func (n *Node) ForceRecompute() Version {
	return n.recompute()
}

func (n *Node) recompute() Version {
	n.mu.Lock()
	evaluator := n.evaluator
	n.mu.Unlock()

	if evaluator == nil {
		panic(ErrMissingEvaluator)
	}

	ctx := newEvalContext(n)
	version, changed := evaluator.Recompute(ctx)

	n.swapDependencies(ctx.Take())
	n.markValid(version, changed)

	return n.Version()
}

// adjustObserver recursively applies delta to n's observer count and to
// every node n currently depends on, firing the evaluator's
// became-observed/unobserved hooks whenever a count crosses zero
// (spec.md §4.5, §3 invariant I4).
func (n *Node) adjustObserver(delta int) {
	n.mu.Lock()
	prev := n.observerCount
	n.observerCount += delta
	now := n.observerCount
	evaluator := n.evaluator
	deps := n.deps
	n.mu.Unlock()

	if evaluator != nil {
		if prev == 0 && now > 0 {
			evaluator.OnBecameObserved()
		} else if prev > 0 && now == 0 {
			evaluator.OnBecameUnobserved()
		}
	}

	if deps == nil {
		return
	}
	deps.Each(func(upstream *Node, _ Version) {
		upstream.adjustObserver(delta)
	})
}

// Destroy walks this node's dependency list and tells each upstream it
// is no longer a dependent, per spec.md §3 "Destruction is by
// last-strong-reference drop".
func (n *Node) Destroy() {
	n.mu.Lock()
	deps := n.deps
	observed := n.observerCount > 0
	n.deps = newDependencies()
	n.mu.Unlock()

	if deps == nil {
		return
	}
	deps.Each(func(upstream *Node, _ Version) {
		upstream.removeDependent(n)
		if observed {
			upstream.adjustObserver(-1)
		}
	})
}
