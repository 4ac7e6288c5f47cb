package cache

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCacheConfig configures the in-memory cache.
type MemoryCacheConfig struct {
	// MaxTTL clamps the ttl passed to Set. Zero means no clamp.
	MaxTTL time.Duration

	// MaxEntries bounds the number of stored keys. When full, Set evicts the
	// entry closest to expiry. Zero means unbounded.
	MaxEntries int
}

// Stats counts cache lookups.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// MemoryCache is a process-local Cache. Values are copied on the way in and
// out, so callers may reuse their buffers.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	config  MemoryCacheConfig
	now     func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache(config MemoryCacheConfig) *MemoryCache {
	config.MaxTTL = max(config.MaxTTL, 0)
	config.MaxEntries = max(config.MaxEntries, 0)
	return &MemoryCache{
		entries: make(map[string]entry),
		config:  config,
		now:     time.Now,
	}
}

// Get returns a copy of the value stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return slices.Clone(e.value), true
}

// Set stores a copy of value under key for ttl, clamped to MaxTTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	if c.config.MaxTTL > 0 {
		ttl = min(ttl, c.config.MaxTTL)
	}

	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.config.MaxEntries > 0 && len(c.entries) >= c.config.MaxEntries {
		c.sweepLocked(now)
		if len(c.entries) >= c.config.MaxEntries {
			c.evictSoonestLocked()
		}
	}
	c.entries[key] = entry{value: slices.Clone(value), expiresAt: now.Add(ttl)}
	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

// Len returns the number of stored entries, expired ones included until swept.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the lookup counters.
func (c *MemoryCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *MemoryCache) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *MemoryCache) evictSoonestLocked() {
	var (
		victim  string
		soonest time.Time
	)
	for k, e := range c.entries {
		if victim == "" || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	delete(c.entries, victim)
}

var _ Cache = (*MemoryCache)(nil)
