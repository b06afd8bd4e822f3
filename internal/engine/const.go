package engine

// Const is the immutable wrapper used uniformly in the graph wherever a
// Var or Computed is expected (spec.md §2): always Valid, never
// invalidated, no dependencies of its own.
type Const struct {
	node  *Node
	value any
}

func (g *Graph) NewConst(value any) *Const {
	c := &Const{
		node:  g.NewNode(KindConst),
		value: value,
	}
	c.node.markValid(Hash(value), true)
	return c
}

func (c *Const) Node() *Node { return c.node }

func (c *Const) Read(ctx *EvalContext) any {
	c.node.recordDependency(ctx)
	return c.value
}
