package rx

import "github.com/rxgraph/rx/internal/engine"

// Reaction is a side-effecting derived node scheduled through the batch
// queue: a Computed with two extra contracts (observer root,
// change-queue enqueueing) — see spec.md §4.4.
type Reaction struct {
	r *engine.Reaction
}

// NewReaction constructs a Reaction on the default graph. It is created
// Invalid(Definitely); call Arm to transition it into the observer set
// and perform its initial evaluation.
func NewReaction(name string, fn func(ctx *Ctx)) *Reaction {
	return NewReactionIn(defaultGraph, name, fn)
}

// NewReactionIn constructs a Reaction scoped to g.
func NewReactionIn(g *Graph, name string, fn func(ctx *Ctx)) *Reaction {
	return &Reaction{r: g.g.NewReaction(name, fn)}
}

// Arm transitions the reaction into the observer set and performs an
// initial evaluation.
func (r *Reaction) Arm() { r.r.Arm() }

// Disarm removes the reaction from the observer set and disposes it.
func (r *Reaction) Disarm() { r.r.Disarm() }

// Update explicitly kicks ensure_valid.
func (r *Reaction) Update() { r.r.Update() }

// UpdateUnchecked skips the version-check fast path and always
// recomputes.
func (r *Reaction) UpdateUnchecked() { r.r.UpdateUnchecked() }

// String returns the reaction's diagnostic name.
func (r *Reaction) String() string { return r.r.String() }
