package rx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsync(t *testing.T) {
	t.Run("starts pending and becomes ready once the future completes", func(t *testing.T) {
		id := NewVar(1)
		release := make(chan struct{})

		fetched := NewAsync(
			func(ctx *Ctx) int { return id.Read(ctx) },
			func(taskCtx context.Context, userID int) (string, bool) {
				<-release
				return "user-1", true
			},
		)

		p := fetched.Read(nil)
		assert.False(t, p.Ready)

		close(release)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		value, err := fetched.Ready(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", value)
	})

	t.Run("Ready returns the context error on cancellation", func(t *testing.T) {
		id := NewVar(1)
		block := make(chan struct{})

		fetched := NewAsync(
			func(ctx *Ctx) int { return id.Read(ctx) },
			func(taskCtx context.Context, userID int) (string, bool) {
				<-block
				return "never", true
			},
		)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := fetched.Ready(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		close(block)
	})

	t.Run("respawns and reports pending again when the captured input changes", func(t *testing.T) {
		id := NewVar(1)
		calls := 0
		release := make(chan struct{})

		fetched := NewAsync(
			func(ctx *Ctx) int { return id.Read(ctx) },
			func(taskCtx context.Context, userID int) (int, bool) {
				calls++
				<-release
				return userID * 10, true
			},
		)

		fetched.Read(nil)

		id.Write(2)
		p := fetched.Read(nil)
		assert.False(t, p.Ready)

		close(release)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		value, err := fetched.Ready(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 20, value)
		assert.GreaterOrEqual(t, calls, 2)
	})

	t.Run("a stale completion after respawn is discarded", func(t *testing.T) {
		id := NewVar(1)
		firstDone := make(chan struct{})
		secondDone := make(chan struct{})

		fetched := NewAsync(
			func(ctx *Ctx) int { return id.Read(ctx) },
			func(taskCtx context.Context, userID int) (int, bool) {
				if userID == 1 {
					<-firstDone
					return 999, true
				}
				<-secondDone
				return userID * 10, true
			},
		)

		fetched.Read(nil)
		id.Write(2)
		fetched.Read(nil)

		close(secondDone)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		value, err := fetched.Ready(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 20, value)

		close(firstDone)
		time.Sleep(20 * time.Millisecond)

		again, err := fetched.Ready(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 20, again)
	})
}
