package engine

import (
	"weak"

	"github.com/google/uuid"
)

// dependency is a single (upstream, observed-version) pair, as recorded
// by a derived node during its last evaluation.
type dependency struct {
	upstream *Node
	version  Version
}

// Dependencies is the ordered set of (node, observed-version) pairs a
// derived node holds. Insertion order is preserved; recording the same
// upstream twice collapses to the last write, matching the teacher's
// intrusive-linked-list "don't relink the most recent dependency"
// bookkeeping in internal/node.go, generalized here to carry a version
// alongside the pointer.
//
// index keys on the upstream's uuid.UUID rather than its *Node pointer,
// per spec.md §3's "process-unique id, used for hashing and equality":
// a node's identity is its id, not whichever pointer currently refers
// to it.
type Dependencies struct {
	order []dependency
	index map[uuid.UUID]int
}

func newDependencies() *Dependencies {
	return &Dependencies{index: make(map[uuid.UUID]int)}
}

func (d *Dependencies) record(upstream *Node, version Version) {
	if i, ok := d.index[upstream.ID()]; ok {
		d.order[i].version = version
		return
	}
	d.index[upstream.ID()] = len(d.order)
	d.order = append(d.order, dependency{upstream: upstream, version: version})
}

// Each iterates the recorded (upstream, version) pairs in insertion order.
func (d *Dependencies) Each(fn func(upstream *Node, version Version)) {
	for _, dep := range d.order {
		fn(dep.upstream, dep.version)
	}
}

func (d *Dependencies) len() int {
	return len(d.order)
}

// EvalContext is the per-evaluation scratchpad passed to every recompute
// call. It records which upstream nodes were read, and at which version,
// during the lifetime of a single evaluation; it never outlives that
// evaluation and must not keep its parent alive (the parent is held only
// as a weak reference, per spec.md §4.1).
type EvalContext struct {
	parent weak.Pointer[Node]
	deps   *Dependencies
}

func newEvalContext(parent *Node) *EvalContext {
	return &EvalContext{
		parent: weak.Make(parent),
		deps:   newDependencies(),
	}
}

// Record appends an (upstream, version) pair, collapsing duplicates for
// the same upstream to the last write.
func (ctx *EvalContext) Record(upstream *Node, version Version) {
	ctx.deps.record(upstream, version)
}

// Take consumes the context, producing the new dependency set to install
// on the parent.
func (ctx *EvalContext) Take() *Dependencies {
	deps := ctx.deps
	ctx.deps = nil
	return deps
}

// Parent returns the node this context is recording dependencies for, or
// nil if that node has since been destroyed.
func (ctx *EvalContext) Parent() *Node {
	return ctx.parent.Value()
}
