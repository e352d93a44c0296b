package utils

import (
	"sync"
	"time"
)

type (
	cacheEntry[T any] struct {
		value    T
		storedAt time.Time
	}

	// TimedCache is a key/value store whose entries expire a fixed TTL after
	// they were written. Expired entries are dropped when they are read.
	TimedCache[T any] struct {
		ttl     time.Duration
		now     func() time.Time
		mu      sync.Mutex
		entries map[string]cacheEntry[T]
	}
)

func NewTimedCache[T any](ttl time.Duration) *TimedCache[T] {
	return NewTimedCacheWithClock[T](ttl, time.Now)
}

func NewTimedCacheWithClock[T any](ttl time.Duration, now func() time.Time) *TimedCache[T] {
	return &TimedCache[T]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry[T]),
	}
}

func (c *TimedCache[T]) TTL() time.Duration {
	return c.ttl
}

func (c *TimedCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{value: value, storedAt: c.now()}
}

func (c *TimedCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	entry, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return entry.value, true
}

func (c *TimedCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *TimedCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[T])
}

// Len counts stored entries, including expired ones not yet read.
func (c *TimedCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
