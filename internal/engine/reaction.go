package engine

// Reaction is a derived push node: a Computed with two extra contracts
// (spec.md §4.4) — it is an observer root, and when invalidated while
// Valid during a batch it enqueues itself on the change queue instead
// of recomputing inline.
type Reaction struct {
	node  *Node
	name  string
	fn    func(*EvalContext)
	armed bool
}

func (g *Graph) NewReaction(name string, fn func(*EvalContext)) *Reaction {
	r := &Reaction{name: name, fn: fn}
	r.node = g.NewNode(KindReaction)
	r.node.SetEvaluator(r)
	return r
}

func (r *Reaction) Node() *Node { return r.node }

func (r *Reaction) String() string { return r.name }

// Recompute runs the effect closure. A Reaction's "value" carries no
// information of its own — what matters is that the effect ran — so it
// always reports changed=false and lets its own Version sit at zero;
// nothing ever reads a Reaction's value the way it reads a Computed's.
func (r *Reaction) Recompute(ctx *EvalContext) (Version, bool) {
	r.fn(ctx)
	return r.node.Version(), false
}

func (r *Reaction) OnBecameObserved()   {}
func (r *Reaction) OnBecameUnobserved() {}

// Arm transitions the reaction into the observer set and performs an
// initial evaluation, incrementing the observer count on every
// transitive upstream it establishes (spec.md §4.4 lifecycle).
func (r *Reaction) Arm() {
	if r.armed {
		return
	}
	r.armed = true
	r.node.EnsureValid()
	r.node.adjustObserver(1)
}

// Disarm removes the reaction from the observer set and destroys it,
// per spec.md §3 "Destruction is by last-strong-reference drop."
func (r *Reaction) Disarm() {
	if !r.armed {
		return
	}
	r.armed = false
	r.node.adjustObserver(-1)
	r.node.Destroy()
}

// Update explicitly kicks ensure_valid: a no-op unless the reaction is
// actually invalid (spec.md §6).
func (r *Reaction) Update() {
	r.node.EnsureValid()
}

// UpdateUnchecked skips the version-check fast path and always
// recomputes (spec.md §6).
func (r *Reaction) UpdateUnchecked() {
	r.node.ForceRecompute()
}
