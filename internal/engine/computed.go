package engine

import "sync"

// Computed is a derived pull node: it lazily recomputes a hashed value
// from a pure function over the graph (spec.md §2).
type Computed struct {
	node *Node

	mu      sync.RWMutex
	value   any
	compute func(*EvalContext) (any, bool)
}

// NewComputed builds a Computed from a recompute function. The function
// returns (value, changed); changed=false keeps the node's previous
// payload and version while still refreshing its dependency set
// (spec.md §4.3 step 3).
func (g *Graph) NewComputed(compute func(*EvalContext) (any, bool)) *Computed {
	c := &Computed{compute: compute}
	c.node = g.NewNode(KindComputed)
	c.node.SetEvaluator(c)
	return c
}

func (c *Computed) Node() *Node { return c.node }

func (c *Computed) Recompute(ctx *EvalContext) (Version, bool) {
	value, changed := c.compute(ctx)
	if !changed {
		return c.node.Version(), false
	}

	c.mu.Lock()
	c.value = value
	c.mu.Unlock()

	return Hash(value), true
}

func (c *Computed) OnBecameObserved()   {}
func (c *Computed) OnBecameUnobserved() {}

// Read ensures the node is valid, then returns a borrow of the cached
// value and records this node in ctx like a Var (spec.md §4.3).
func (c *Computed) Read(ctx *EvalContext) any {
	c.node.EnsureValid()

	c.mu.RLock()
	val := c.value
	c.mu.RUnlock()

	c.node.recordDependency(ctx)
	return val
}
