package rx

// Batch coalesces Reaction invalidations raised by fn until the
// outermost Batch call returns, on the default graph. Nested Batch
// calls join the outer one rather than draining independently.
func Batch(fn func()) { defaultGraph.Batch(fn) }

// Batch runs fn within g's batch scope.
func (g *Graph) Batch(fn func()) { g.g.Batch(fn) }

// InBatch reports whether a batch is currently active on the default
// graph.
func InBatch() bool { return defaultGraph.InBatch() }

// InBatch reports whether a batch is currently active on g.
func (g *Graph) InBatch() bool { return g.g.InBatch() }
