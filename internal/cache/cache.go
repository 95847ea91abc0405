// file: internal/cache/cache.go
// version: 1.1.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-1e2f3a4b5c6d

package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of the cache counters. Hits and
// misses accumulate until Clear.
type Stats struct {
	Entries int `json:"entry_count"`
	Hits    int `json:"hit_count"`
	Misses  int `json:"miss_count"`
}

// Cache is a simple generic TTL cache safe for concurrent use. Expired
// entries are evicted lazily by the lookup that finds them; there is no
// background sweeper and no capacity bound.
type Cache[T any] struct {
	mu         sync.RWMutex
	items      map[string]entry[T]
	defaultTTL time.Duration
	hits       atomic.Int64
	misses     atomic.Int64
}

// New creates a cache with the given default TTL.
func New[T any](defaultTTL time.Duration) *Cache[T] {
	return &Cache[T]{
		items:      make(map[string]entry[T]),
		defaultTTL: defaultTTL,
	}
}

// Get retrieves a value if it exists and hasn't expired. An expired
// entry counts as a miss and is deleted on the spot.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		// Re-check under the write lock, a concurrent Set may have
		// refreshed the entry in the meantime.
		c.mu.Lock()
		if cur, still := c.items[key]; still && time.Now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores a value with the default TTL, replacing any previous entry
// and restamping its expiry.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value with a specific TTL.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = entry[T]{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate removes a single key. The miss/hit counters are untouched.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes all entries and resets the hit/miss counters. This is
// the only path that resets them.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.items = make(map[string]entry[T])
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Len returns the number of live entries, including expired entries not
// yet collected by a lookup.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns the current counters.
func (c *Cache[T]) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    int(c.hits.Load()),
		Misses:  int(c.misses.Load()),
	}
}
