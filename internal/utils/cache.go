package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps a value with its expiry
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// TTLCache size-bounded LRU whose entries also expire after ttl
type TTLCache[T any] struct {
	storage *lru.Cache[string, CacheItem[T]]
	ttl     time.Duration
	now     func() time.Time
}

// NewTTLCache size is the maximum number of entries, ttl their lifetime
func NewTTLCache[T any](size int, ttl time.Duration) *TTLCache[T] {
	if size <= 0 {
		size = 1
	}
	// lru.New only fails on a non-positive size
	c, _ := lru.New[string, CacheItem[T]](size)
	return &TTLCache[T]{
		storage: c,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set adds or replaces key
func (c *TTLCache[T]) Set(key string, value T) {
	c.storage.Add(key, CacheItem[T]{
		Value:     value,
		ExpiredAt: c.now().Add(c.ttl),
	})
}

// Get returns the value of key unless it is missing or expired
func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	if c.now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}

	return item.Value, true
}

// Delete removes key
func (c *TTLCache[T]) Delete(key string) {
	c.storage.Remove(key)
}

// Clear empties the cache
func (c *TTLCache[T]) Clear() {
	c.storage.Purge()
}

// Len number of entries, expired ones included until touched
func (c *TTLCache[T]) Len() int {
	return c.storage.Len()
}
