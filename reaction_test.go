package rx

import (
	"fmt"
	"testing"

	"github.com/rxgraph/rx/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestReaction(t *testing.T) {
	t.Run("runs once on arm", func(t *testing.T) {
		log := []string{}

		count := NewVar(0)
		r := NewReaction("logger", func(ctx *Ctx) {
			log = append(log, fmt.Sprintf("count %d", count.Read(ctx)))
		})
		r.Arm()

		assert.Equal(t, []string{"count 0"}, log)
	})

	t.Run("reruns when a dependency changes", func(t *testing.T) {
		log := []string{}

		count := NewVar(0)
		r := NewReaction("logger", func(ctx *Ctx) {
			log = append(log, fmt.Sprintf("count %d", count.Read(ctx)))
		})
		r.Arm()

		count.Write(1)
		count.Write(2)

		assert.Equal(t, []string{"count 0", "count 1", "count 2"}, log)
	})

	t.Run("disarm stops further reruns", func(t *testing.T) {
		log := []string{}

		count := NewVar(0)
		r := NewReaction("logger", func(ctx *Ctx) {
			log = append(log, fmt.Sprintf("count %d", count.Read(ctx)))
		})
		r.Arm()
		r.Disarm()

		count.Write(1)

		assert.Equal(t, []string{"count 0"}, log)
	})

	t.Run("invalidating a reaction outside a batch panics", func(t *testing.T) {
		count := NewVar(0)
		r := NewReaction("logger", func(ctx *Ctx) {
			count.Read(ctx)
		})
		r.Arm()

		assert.Panics(t, func() {
			r.r.Node().Invalidate(engine.InvalidDefinitely)
		})
	})

	t.Run("string returns the reaction's name", func(t *testing.T) {
		r := NewReaction("my-reaction", func(ctx *Ctx) {})
		assert.Equal(t, "my-reaction", r.String())
	})

	t.Run("updateUnchecked always reruns even when valid", func(t *testing.T) {
		log := []string{}

		count := NewVar(0)
		r := NewReaction("logger", func(ctx *Ctx) {
			log = append(log, fmt.Sprintf("count %d", count.Read(ctx)))
		})
		r.Arm()

		r.Update()
		assert.Equal(t, []string{"count 0"}, log)

		r.UpdateUnchecked()
		assert.Equal(t, []string{"count 0", "count 0"}, log)
	})
}
