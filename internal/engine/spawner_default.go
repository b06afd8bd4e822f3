//go:build !wasm

package engine

import "context"

// goroutineSpawner runs every Async future on its own goroutine, grounded
// on the teacher's internal/runtime_default.go split: the "real OS
// thread" build gets the straightforward implementation, the wasm build
// (spawner_wasm.go) gets a cooperative one.
type goroutineSpawner struct{}

func defaultSpawner() Spawner { return goroutineSpawner{} }

type goroutineHandle struct {
	cancel context.CancelFunc
}

func (h *goroutineHandle) Cancel() { h.cancel() }

func (goroutineSpawner) Spawn(parent context.Context, fn func(context.Context)) Handle {
	ctx, cancel := context.WithCancel(parent)
	go fn(ctx)
	return &goroutineHandle{cancel: cancel}
}
