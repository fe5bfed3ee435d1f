package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLimiter(capacity, rate float64) (*Limiter, *clock) {
	c := &clock{t: time.Unix(1700000000, 0)}
	l := New(capacity, rate)
	l.now = c.now
	return l, c
}

func TestAllowDrainsAndRefills(t *testing.T) {
	l, c := newTestLimiter(2, 0.5)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are independent")

	assert.Equal(t, 2*time.Second, l.RetryAfter("a"))

	c.t = c.t.Add(2 * time.Second)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestAllowCapsAtCapacity(t *testing.T) {
	l, c := newTestLimiter(1, 10)
	assert.True(t, l.Allow("a"))
	c.t = c.t.Add(time.Hour)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestSweep(t *testing.T) {
	l, c := newTestLimiter(1, 1)
	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Len())

	assert.Equal(t, 0, l.Sweep(time.Minute))
	c.t = c.t.Add(2 * time.Minute)
	assert.Equal(t, 2, l.Sweep(time.Minute))
	assert.Equal(t, 0, l.Len())
}
