// Package cache provides a small read-through TTL cache used by the service
// layer for slow-changing master data (shift directory, employee list). The
// adjudication engine itself never touches it; writes to the underlying data
// invalidate explicitly.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Loader fetches the value for a key on a cache miss.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)

type ReadThrough[K comparable, V any] struct {
	ttl    time.Duration
	loader Loader[K, V]

	mu      sync.RWMutex
	entries map[K]entry[V]
}

func NewReadThrough[K comparable, V any](ttl time.Duration, loader Loader[K, V]) *ReadThrough[K, V] {
	return &ReadThrough[K, V]{
		ttl:     ttl,
		loader:  loader,
		entries: make(map[K]entry[V]),
	}
}

// Get returns the cached value, loading it when absent or expired.
func (c *ReadThrough[K, V]) Get(ctx context.Context, key K) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		return e.value, nil
	}

	value, err := c.loader(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return value, nil
}

// Invalidate drops a single key.
func (c *ReadThrough[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll drops every cached entry.
func (c *ReadThrough[K, V]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}
