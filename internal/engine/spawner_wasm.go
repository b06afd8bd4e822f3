//go:build wasm

package engine

import (
	"context"
	"sync"
)

// microtaskSpawner runs every Async future on a single persistent worker
// goroutine fed by a channel, rather than one goroutine per spawn. Under
// GOOS=js there is exactly one cooperative scheduler backing the whole
// program (spec.md §9's "browser microtask loop"), so queuing work onto
// one worker mirrors that environment instead of fighting it, the same
// way the teacher's internal/runtime_wasm.go collapses its per-goroutine
// runtime map into a single global instance.
type microtaskSpawner struct {
	once  sync.Once
	tasks chan func()
}

var wasmSpawner = &microtaskSpawner{}

func defaultSpawner() Spawner {
	wasmSpawner.once.Do(func() {
		wasmSpawner.tasks = make(chan func(), 256)
		go wasmSpawner.run()
	})
	return wasmSpawner
}

func (s *microtaskSpawner) run() {
	for task := range s.tasks {
		task()
	}
}

type microtaskHandle struct {
	cancel context.CancelFunc
}

func (h *microtaskHandle) Cancel() { h.cancel() }

func (s *microtaskSpawner) Spawn(parent context.Context, fn func(context.Context)) Handle {
	ctx, cancel := context.WithCancel(parent)
	s.tasks <- func() { fn(ctx) }
	return &microtaskHandle{cancel: cancel}
}
