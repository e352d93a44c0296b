package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestTimedCache_ExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewTimedCacheWithClock[string](300*time.Second, clock.Now)

	c.Set("k", "v")

	clock.Advance(299 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.True(t, ok, "an entry exactly ttl old is still fresh")

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestTimedCache_LazyEviction(t *testing.T) {
	clock := newFakeClock()
	c := NewTimedCacheWithClock[int](time.Second, clock.Now)

	c.Set("a", 1)
	c.Set("b", 2)
	clock.Advance(time.Hour)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestTimedCache_SetRefreshes(t *testing.T) {
	clock := newFakeClock()
	c := NewTimedCacheWithClock[int](10*time.Second, clock.Now)

	c.Set("k", 1)
	clock.Advance(8 * time.Second)
	c.Set("k", 2)
	clock.Advance(8 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestTimedCache_DeleteAndClear(t *testing.T) {
	c := NewTimedCache[*int](time.Minute)
	one := 1
	c.Set("a", &one)
	c.Set("b", nil)

	v, ok := c.Get("b")
	assert.True(t, ok, "nil values are cacheable")
	assert.Nil(t, v)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, time.Minute, c.TTL())
}
