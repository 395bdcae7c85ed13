package cache

import (
	"sort"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the in-process store when no capacity is given.
const DefaultMaxEntries = 1000

type entry struct {
	value    []byte
	storedAt time.Time
	ttl      time.Duration
}

// MemoryCache is the bounded in-process backend. It is both the default
// cache and the fallback when the remote backend fails. Expiry is enforced
// lazily at read time and eagerly during the capacity sweep.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache creates a MemoryCache holding at most maxEntries entries.
// maxEntries <= 0 selects DefaultMaxEntries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the stored value when present and unexpired. Expired entries
// are removed on sight.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, resetting its freshness clock. Any prior entry
// under the same key is overwritten.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.cleanup()
	}
	c.entries[key] = entry{value: value, storedAt: c.now(), ttl: ttl}
}

// Delete removes the entry if present. Idempotent.
func (c *MemoryCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// Clear drops all entries.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stats returns the current entry count and the configured capacity.
func (c *MemoryCache) Stats() (count, capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries), c.maxEntries
}

// cleanup removes all expired entries; if the store is still at capacity it
// evicts the oldest 20% by insertion time. Caller must hold the lock.
func (c *MemoryCache) cleanup() {
	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.storedAt) > e.ttl {
			delete(c.entries, key)
		}
	}

	if len(c.entries) < c.maxEntries {
		return
	}

	type aged struct {
		key      string
		storedAt time.Time
	}
	remaining := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		remaining = append(remaining, aged{key: key, storedAt: e.storedAt})
	}
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].storedAt.Before(remaining[j].storedAt)
	})

	evict := c.maxEntries / 5
	if evict < 1 {
		evict = 1
	}
	if evict > len(remaining) {
		evict = len(remaining)
	}
	for _, a := range remaining[:evict] {
		delete(c.entries, a.key)
	}
}
