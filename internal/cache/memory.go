// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is the in-process backend used when no Redis URL is
// configured (and as the fallback when Redis is unreachable at boot).
// Values are copied on both Set and Get, so callers can never mutate a
// cached entry in place.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	bytes      int64 // guarded by mu
	defaultTTL time.Duration
	maxEntries int
	stop       chan struct{}
	closed     atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures the memory backend.
type MemoryCacheOptions struct {
	DefaultTTL time.Duration

	// MaxSize bounds the number of entries; 0 means unbounded. The bound
	// is advisory: expired entries are evicted first, but a new key is
	// still stored when the table remains full.
	MaxSize int

	// CleanupInterval is how often expired entries are swept in the
	// background; 0 disables the sweeper (expired entries are then only
	// dropped lazily on access).
	CleanupInterval time.Duration
}

// NewMemoryCache creates a memory backend and, when a cleanup interval is
// set, starts its background sweeper.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[string]memoryEntry),
		defaultTTL: opts.DefaultTTL,
		maxEntries: opts.MaxSize,
		stop:       make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		go c.sweep(opts.CleanupInterval)
	}

	return c
}

// Get returns a copy of the cached value, or ErrCacheMiss when the key is
// absent or expired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		c.evict(key)
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}

	c.hits.Add(1)
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, nil
}

// Set stores a copy of value under key. A zero ttl means the default TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	data := make([]byte, len(value))
	copy(data, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, replacing := c.entries[key]; !replacing {
			c.evictExpiredLocked()
		}
	}

	if old, ok := c.entries[key]; ok {
		c.bytes -= int64(len(old.data))
	}
	c.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	c.bytes += int64(len(data))
	c.sets.Add(1)
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.evict(key)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.bytes = 0
	c.mu.Unlock()
	return nil
}

// Has reports whether key holds an unexpired entry.
func (c *MemoryCache) Has(_ context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrCacheClosed
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.evict(key)
		return false, nil
	}
	return true, nil
}

// Close stops the sweeper. Close is idempotent; operations after Close
// return ErrCacheClosed.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stop)
	}
	return nil
}

// Stats returns the hit/miss counters and the current entry count.
func (c *MemoryCache) Stats() CacheStats {
	c.mu.RLock()
	items := len(c.entries)
	bytes := c.bytes
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return CacheStats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Items:   items,
		HitRate: hitRate,
		Size:    bytes,
	}
}

// ResetStats zeroes the hit/miss/set counters.
func (c *MemoryCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.sets.Store(0)
}

func (c *MemoryCache) evict(key string) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		c.bytes -= int64(len(entry.data))
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

func (c *MemoryCache) evictExpiredLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			c.bytes -= int64(len(entry.data))
			delete(c.entries, key)
		}
	}
}

func (c *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.evictExpiredLocked()
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
