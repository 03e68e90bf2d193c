package cache

import (
	"context"
	"sync"
)

// Memory is a thread-safe in-process cache.
// Entries are never evicted or expired; it grows with the number of keys.
type Memory[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// NewMemory creates an empty in-memory cache.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{items: make(map[string]V)}
}

// Get returns the value stored under key. The error is always nil; it exists
// so Memory and Redis share one method set.
func (c *Memory[V]) Get(_ context.Context, key string) (V, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (c *Memory[V]) Set(_ context.Context, key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

// Delete removes key. Missing keys are not an error.
func (c *Memory[V]) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *Memory[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
