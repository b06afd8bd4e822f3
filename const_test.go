package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConst(t *testing.T) {
	t.Run("reads back the wrapped value", func(t *testing.T) {
		c := NewConst(42)
		assert.Equal(t, 42, c.Read(nil))
	})

	t.Run("can stand in for a var inside a computed", func(t *testing.T) {
		c := NewConst(10)
		doubled := NewComputed(func(ctx *Ctx) int { return c.Read(ctx) * 2 })
		assert.Equal(t, 20, doubled.Read(nil))
	})
}
