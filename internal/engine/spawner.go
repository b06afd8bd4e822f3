package engine

import "context"

// Handle is a cancellable reference to a spawned future, per spec.md §6
// ("spawn(future) → cancellable handle").
type Handle interface {
	Cancel()
}

// Spawner is the small interface the engine consumes to run an Async
// cell's future. It is the only way the core touches a task-spawning
// runtime, kept out of scope per spec.md §1; implementations for local
// goroutines, work-stealing pools, or browser microtask loops plug in
// here.
type Spawner interface {
	Spawn(ctx context.Context, fn func(context.Context)) Handle
}
