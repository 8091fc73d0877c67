// Package ttlcache provides a typed, read-through cache with per-entry expiry and a bounded size.
package ttlcache

import (
	"context"
	"time"

	utilcache "k8s.io/apimachinery/pkg/util/cache"
	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/infra/metrics"
)

// Loader produces the value for a missing key.
type Loader[V any] func(ctx context.Context) (V, error)

// Cache is safe for concurrent use. Concurrent misses on the same key each call their
// loader; only successful loads are stored.
type Cache[K comparable, V any] struct {
	name    string
	ttl     time.Duration
	entries *utilcache.LRUExpireCache
}

// New creates a cache holding at most capacity entries, each for ttl.
func New[K comparable, V any](name string, capacity int, ttl time.Duration) *Cache[K, V] {
	return NewWithClock[K, V](name, capacity, ttl, clock.RealClock{})
}

// NewWithClock is New with an injectable clock.
func NewWithClock[K comparable, V any](
	name string,
	capacity int,
	ttl time.Duration,
	clk clock.PassiveClock,
) *Cache[K, V] {
	return &Cache[K, V]{
		name:    name,
		ttl:     ttl,
		entries: utilcache.NewLRUExpireCacheWithClock(capacity, clk),
	}
}

// Get returns a live entry.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	raw, ok := c.entries.Get(key)
	metrics.RecordCacheLookup(c.name, ok)

	if !ok {
		var zero V

		return zero, false
	}

	value, ok := raw.(V)

	return value, ok
}

// Add stores value under key for the cache's ttl.
func (c *Cache[K, V]) Add(key K, value V) {
	c.entries.Add(key, value, c.ttl)
}

// GetOrLoad returns the cached value or calls load on a miss. Load errors are returned
// to the caller and never cached.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load Loader[V]) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := load(ctx)
	if err != nil {
		var zero V

		return zero, err
	}

	c.Add(key, value)

	return value, nil
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries.Keys())
}
