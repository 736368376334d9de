package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
)

// DefaultTTL is the entry lifetime used when no explicit TTL is given.
const DefaultTTL = time.Hour

type entry struct {
	value     interface{}
	createdAt time.Time
	ttl       time.Duration
}

// expired reports whether the entry is past its lifetime. A TTL of zero or
// less means the entry never expires.
func (e entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) >= e.ttl
}

// Cache is a process-lifetime keyed store with per-entry expiry. One
// instance is shared by every handler; no handler owns any key exclusively.
// Expired entries are evicted lazily on the read that observes them.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	logger     *logging.Logger
}

// New creates a cache with the given default TTL. A non-positive default
// falls back to DefaultTTL.
func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		logger:     logging.CacheLogger,
	}
}

// Get returns the value stored under key, or absent if the key is missing
// or its entry has expired. An expired entry is deleted on this read.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(time.Now()) {
		delete(c.entries, key)
		c.logger.Debug("evicted expired entry", logging.String("key", key))
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL, unconditionally
// overwriting any previous entry.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL. A TTL of zero or
// less disables expiry for this entry.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		createdAt: time.Now(),
		ttl:       ttl,
	}
}

// GetOrFetch returns the cached value for key if present and fresh;
// otherwise it invokes producer, stores the result on success with the
// default TTL, and returns it. Two concurrent misses for the same key may
// both invoke producer; values come from idempotent reads, so a duplicate
// fetch is wasted work rather than a correctness problem.
func (c *Cache) GetOrFetch(ctx context.Context, key string, producer func(context.Context) (interface{}, error)) (interface{}, error) {
	return c.GetOrFetchTTL(ctx, key, c.defaultTTL, producer)
}

// GetOrFetchTTL is GetOrFetch with an explicit TTL for the stored value.
func (c *Cache) GetOrFetchTTL(ctx context.Context, key string, ttl time.Duration, producer func(context.Context) (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		c.logger.Debug("cache hit", logging.String("key", key))
		return v, nil
	}

	c.logger.Debug("cache miss", logging.String("key", key))
	v, err := producer(ctx)
	if err != nil {
		return nil, err
	}
	c.SetWithTTL(key, v, ttl)
	return v, nil
}

// Fetch is a typed wrapper around GetOrFetch. A stored value of the wrong
// type is treated as a miss and refetched.
func Fetch[T any](ctx context.Context, c *Cache, key string, producer func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	var zero T
	v, err := producer(ctx)
	if err != nil {
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes the entry stored under key, if any
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeleteByPrefix removes every entry whose key starts with prefix and
// returns the number of entries removed.
func (c *Cache) DeleteByPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// ClearExpired removes every expired entry and returns the number removed
func (c *Cache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Has reports whether a fresh entry exists under key
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Size returns the number of stored entries, expired ones included until
// they are evicted.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
