// Package cache holds fetch results for a bounded time window so a
// session does not repeat identical network calls.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type item[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a TTL map keyed by request parameters. Expired entries are
// dropped on read; a background sweep removes the rest every hour.
type Cache[T any] struct {
	mu    sync.RWMutex
	items map[string]item[T]
}

func New[T any]() *Cache[T] {
	c := &Cache[T]{
		items: make(map[string]item[T]),
	}

	go c.cleanupLoop()

	return c
}

// Key builds a stable cache key from the fetch request parameters.
func Key(keyword, language string, limit int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", keyword, language, limit)))
	return hex.EncodeToString(h[:])
}

func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, exists := c.items[key]
	if !exists {
		var zero T
		return zero, false
	}

	if time.Now().After(it.expiresAt) {
		delete(c.items, key)
		var zero T
		return zero, false
	}

	return it.value, true
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache[T]) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache[T]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, key)
		}
	}
}
