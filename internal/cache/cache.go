// Package cache provides an in-memory TTL cache for upstream API responses.
//
// Each entry stores a response payload together with the HTTP status it was
// served with, so a cache hit can replay the original response exactly.
// Entries expire by TTL only — there is no explicit invalidation. Concurrent
// misses for the same key may both fetch upstream and both write; last write
// wins, which is acceptable because both wrote the same upstream answer.
package cache

import (
	"sync"
	"time"
)

// Entry is a cached (payload, HTTP status) pair.
type Entry struct {
	Data   any
	Status int
}

type item struct {
	entry     Entry
	expiresAt time.Time
}

// Cache is a fixed-TTL response cache safe for concurrent use.
type Cache struct {
	// Go Pattern: sync.RWMutex allows multiple concurrent readers but
	// exclusive writers — reads vastly outnumber writes here.
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]item),
		ttl:   ttl,
	}

	// Background sweep so expired entries don't pile up between lookups.
	go c.cleanup()

	return c
}

// Get returns the entry for key if present and not expired.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || time.Now().After(it.expiresAt) {
		return Entry{}, false
	}
	return it.entry, true
}

// Put stores an entry under key with the cache's fixed TTL, replacing any
// existing entry.
func (c *Cache) Put(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item{
		entry:     e,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// cleanup periodically removes expired entries to prevent memory growth.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, it := range c.items {
			if now.After(it.expiresAt) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
