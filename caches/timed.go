// Package caches provides a small string-keyed cache with optional expiry,
// used wherever the bot wants to memoize lookups (e.g. guild prefixes).
package caches

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type entry[V any] struct {
	value  V
	expiry time.Time // zero means never expires
}

// TimedCache evicts entries lazily: an expired entry is dropped when it is
// next looked up, or when ForceClean runs.
type TimedCache[V any] struct {
	entries   cmap.ConcurrentMap[string, entry[V]]
	globalTTL time.Duration // 0 means entries never expire by default
}

func NewTimedCache[V any](globalTTL time.Duration) *TimedCache[V] {
	return &TimedCache[V]{
		entries:   cmap.New[entry[V]](),
		globalTTL: globalTTL,
	}
}

// Set stores the value under the key with the cache-wide TTL.
func (c *TimedCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.globalTTL)
}

// SetWithTTL stores the value with its own TTL, overriding the cache-wide
// one. A zero ttl means the entry never expires.
func (c *TimedCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiry = time.Now().Add(ttl)
	}
	c.entries.Set(key, e)
}

func (c *TimedCache[V]) Get(key string) (V, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if !e.expiry.IsZero() && e.expiry.Before(time.Now()) {
		c.entries.Remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TimedCache[V]) Delete(key string) {
	c.entries.Remove(key)
}

// ForceClean drops all expired entries.
func (c *TimedCache[V]) ForceClean() {
	now := time.Now()
	for item := range c.entries.IterBuffered() {
		if !item.Val.expiry.IsZero() && item.Val.expiry.Before(now) {
			c.entries.Remove(item.Key)
		}
	}
}

func (c *TimedCache[V]) Len() int {
	c.ForceClean()
	return c.entries.Count()
}
