package rx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// These mirror the end-to-end scenarios that ground the invalidation
// and batching rules: each recomputes exactly the values the rules
// predict, not merely the final result.

func TestScenarioCounter(t *testing.T) {
	a := NewVar(10)
	b := NewComputed(func(ctx *Ctx) int { return a.Read(ctx) + 10 })

	assert.Equal(t, 20, b.Read(nil))

	a.Write(20)
	assert.Equal(t, 30, b.Read(nil))
}

func TestScenarioDiamond(t *testing.T) {
	log := []string{}

	a := NewVar(1)
	d := NewComputed(func(ctx *Ctx) int { return a.Read(ctx) * 2 })
	e := NewComputed(func(ctx *Ctx) int { return a.Read(ctx) * 3 })
	f := NewComputed(func(ctx *Ctx) int { return d.Read(ctx) + e.Read(ctx) })

	var seen int
	r := NewReaction("print-f", func(ctx *Ctx) {
		log = append(log, "ran")
		seen = f.Read(ctx)
	})
	r.Arm()

	log = nil

	Batch(func() {
		a.Write(2)
		a.Write(2)
		a.Write(3)
	})

	assert.Equal(t, []string{"ran"}, log)
	assert.Equal(t, 15, seen)
}

func TestScenarioNoopWrite(t *testing.T) {
	log := []string{}

	a := NewVar(1)
	r := NewReaction("logger", func(ctx *Ctx) {
		log = append(log, "ran")
		a.Read(ctx)
	})
	r.Arm()

	log = nil

	Batch(func() {
		a.Write(1)
	})

	assert.Empty(t, log)
}

func TestScenarioChainShortCircuit(t *testing.T) {
	log := []string{}

	v := NewVar(10)
	d := NewComputed(func(ctx *Ctx) int {
		log = append(log, "d")
		return v.Read(ctx) * 2
	})
	q := NewComputed(func(ctx *Ctx) int {
		log = append(log, "q")
		return d.Read(ctx) * 2
	})

	assert.Equal(t, 40, q.Read(nil))
	assert.Equal(t, 40, q.Read(nil))
	assert.Equal(t, []string{"d", "q"}, log)

	log = nil
	v.Write(20)
	v.Write(20)
	v.Write(20)

	assert.Equal(t, 80, q.Read(nil))
	assert.Equal(t, []string{"d", "q"}, log)
}

func TestScenarioBatchNesting(t *testing.T) {
	log := []string{}

	a := NewVar(1)
	b := NewVar(2)
	c := NewVar(3)

	r := NewReaction("logger", func(ctx *Ctx) {
		log = append(log, "ran")
		a.Read(ctx)
		b.Read(ctx)
		c.Read(ctx)
	})
	r.Arm()

	log = nil

	Batch(func() {
		a.Write(10)
		Batch(func() {
			b.Write(20)
			c.Write(30)
		})
		assert.Empty(t, log)
	})

	assert.Equal(t, []string{"ran"}, log)
}

func TestScenarioAsyncRespawn(t *testing.T) {
	flag := NewVar(true)

	cell := NewAsync(
		func(ctx *Ctx) bool { return flag.Read(ctx) },
		func(taskCtx context.Context, input bool) (bool, bool) {
			select {
			case <-time.After(30 * time.Millisecond):
				return true, true
			case <-taskCtx.Done():
				return false, false
			}
		},
	)

	p := cell.Read(nil)
	assert.False(t, p.Ready)

	flag.Write(false)
	flag.Write(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	value, err := cell.Ready(ctx)
	assert.NoError(t, err)
	assert.True(t, value)

	time.Sleep(60 * time.Millisecond)
	final := cell.Read(nil)
	assert.True(t, final.Ready)
	assert.True(t, final.Value)
}
