// Package cache provides a bounded in-memory cache whose entries expire after
// a fixed time-to-live.
//
// Expired entries are removed lazily when they are read. When the cache is
// full the oldest inserted entry is evicted, regardless of how recently it
// was read.
package cache

import (
	"sync"
	"time"

	"phishguard/pkg/metrics"
)

// Default limits of the analysis result cache.
const (
	DefaultMaxEntries = 200
	DefaultTTL        = time.Hour
)

type entry[V any] struct {
	value     V
	createdAt time.Time
	// seq is the insertion sequence number of this entry.
	seq uint64
}

// TTL is a concurrency-safe cache with per-entry expiry and insertion-order
// eviction. The zero value is not usable; use New.
type TTL[K comparable, V any] struct {
	name       string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[K]entry[V]
	// order holds keys in insertion order. It may contain stale keys whose
	// entry has since been overwritten or removed; seq tells them apart.
	order []orderKey[K]
	seq   uint64
}

type orderKey[K comparable] struct {
	key K
	seq uint64
}

// Option customizes a TTL cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a cache. name labels its metrics. A non-positive maxEntries
// disables the capacity bound.
func New[K comparable, V any](name string, ttl time.Duration, maxEntries int, opts ...Option) *TTL[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &TTL[K, V]{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        o.now,
		entries:    make(map[K]entry[V]),
	}
}

// Get returns the value stored under key if it has not expired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		metrics.CacheLookups.WithLabelValues(c.name, metrics.CacheMiss).Inc()

		return zero, false
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		delete(c.entries, key)
		metrics.CacheLookups.WithLabelValues(c.name, metrics.CacheExpired).Inc()

		return zero, false
	}
	metrics.CacheLookups.WithLabelValues(c.name, metrics.CacheHit).Inc()

	return e.value, true
}

// Set stores value under key, replacing any previous value and resetting its
// age. If the cache grows past its capacity the oldest inserted entries are
// evicted.
func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[key] = entry[V]{value: value, createdAt: c.now(), seq: c.seq}
	c.order = append(c.order, orderKey[K]{key: key, seq: c.seq})

	for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
	c.compact()
}

// Delete removes key.
func (c *TTL[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes every entry.
func (c *TTL[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
	c.order = nil
}

// Len returns the number of stored entries, including expired entries that
// have not been read since they expired.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *TTL[K, V]) evictOldest() {
	for len(c.order) > 0 {
		head := c.order[0]
		c.order = c.order[1:]

		if e, ok := c.entries[head.key]; ok && e.seq == head.seq {
			delete(c.entries, head.key)
			metrics.CacheEvictions.WithLabelValues(c.name).Inc()

			return
		}
	}
}

// compact drops stale order keys once they outnumber live entries.
func (c *TTL[K, V]) compact() {
	if len(c.order) <= 2*len(c.entries)+16 {
		return
	}

	live := make([]orderKey[K], 0, len(c.entries))
	for _, k := range c.order {
		if e, ok := c.entries[k.key]; ok && e.seq == k.seq {
			live = append(live, k)
		}
	}
	c.order = live
}
