// Package cache provides a bounded, TTL-aware per-session cache used to keep
// per-user views warm between requests. It wraps a hashicorp LRU so memory
// stays bounded no matter how many users are active.
//
// A Cache is an explicit object handed to whoever needs it; there is no
// package-level instance. All methods are safe for concurrent use.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps string keys to values of type V. Entries expire after the TTL
// given to New and the least recently used entry is evicted when full.
type Cache[V any] struct {
	lru *lru.Cache[string, item[V]]
	ttl time.Duration
	now func() time.Time
}

// New returns a cache holding at most size entries for ttl each.
func New[V any](size int, ttl time.Duration) (*Cache[V], error) {
	l, err := lru.New[string, item[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: l, ttl: ttl, now: time.Now}, nil
}

// Get returns the value for key if present and not expired. Expired entries
// are dropped on access.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	it, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if !c.now().Before(it.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return it.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil {
		return
	}
	c.lru.Add(key, item[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	if c == nil {
		return
	}
	c.lru.Remove(key)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}
