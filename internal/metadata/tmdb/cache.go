package tmdb

import (
	"sync"
	"time"
)

// cache is a small TTL cache for API responses. Expired entries are removed
// lazily on access and swept at most once per TTL interval.
type cache struct {
	mu        sync.Mutex
	entries   map[string]cacheEntry
	ttl       time.Duration
	lastSweep time.Time
}

type cacheEntry struct {
	data      any
	expiresAt time.Time
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries:   make(map[string]cacheEntry),
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

func (c *cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

func (c *cache) Set(key string, value any) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) >= c.ttl {
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		c.lastSweep = now
	}

	c.entries[key] = cacheEntry{
		data:      value,
		expiresAt: now.Add(c.ttl),
	}
}
