// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stagenote/recommender/internal/recommend"
)

// cleanupInterval controls how often expired entries are swept.
const cleanupInterval = 5 * time.Minute

// entry is a cached result list with an expiration time.
type entry struct {
	items     []recommend.Recommendation
	expiresAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Keys      int
}

// ResultCache is a thread-safe in-memory cache for recommendation
// result lists with per-entry TTL expiration. Similarity lookups scan
// the whole catalog, so repeated requests for the same performance are
// served from here instead.
//
// The catalog is loaded once at startup, so entries never go stale
// within their TTL; a background goroutine sweeps expired entries
// every few minutes.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a cache whose entries expire after ttl and starts the
// background sweep goroutine. The goroutine runs for the lifetime of
// the process.
func New(ttl time.Duration) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
	go c.sweepLoop()
	return c
}

// Key builds a cache key from its parts. Parts are hashed so caller
// supplied IDs of any length and content produce a fixed-size key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get returns the cached result list for key, or false on a miss.
// Expired entries are removed on access and count as misses.
func (c *ResultCache) Get(key string) ([]recommend.Recommendation, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.misses.Add(1)
		c.evictions.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return e.items, true
}

// Set stores a result list under key with the default TTL.
func (c *ResultCache) Set(key string, items []recommend.Recommendation) {
	c.mu.Lock()
	c.entries[key] = entry{
		items:     items,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Clear drops every entry. Called when the underlying catalog is
// replaced.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.evictions.Add(int64(n))
}

// Stats returns a snapshot of the cache counters.
func (c *ResultCache) Stats() Stats {
	c.mu.RLock()
	keys := len(c.entries)
	c.mu.RUnlock()

	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Keys:      keys,
	}
}

// sweepLoop removes expired entries on a fixed interval.
func (c *ResultCache) sweepLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.sweep()
	}
}

func (c *ResultCache) sweep() {
	now := time.Now()

	c.mu.Lock()
	var evicted int64
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	c.mu.Unlock()

	c.evictions.Add(evicted)
}
