package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem[T any] struct {
	value     T
	expiresAt time.Time // zero means no expiry
}

// Compile-time interface check.
var _ Cache[struct{}] = (*Memory[struct{}])(nil)

// Memory implements Cache with in-memory storage.
// Uses lazy expiration (checks expiry on Get).
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]memoryItem[T]
}

// NewMemory creates a new memory cache instance.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		items: make(map[string]memoryItem[T]),
	}
}

// Get retrieves a value from cache.
func (m *Memory[T]) Get(ctx context.Context, key string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, exists := m.items[key]
	if !exists {
		var zero T
		return zero, ErrCacheMiss
	}

	// Lazy expiration check
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		var zero T
		return zero, ErrCacheMiss
	}

	return item.value, nil
}

// Set stores a value in cache. A TTL of zero pins the entry for the
// lifetime of the cache.
func (m *Memory[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	item := memoryItem[T]{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = item
	return nil
}

// Delete removes a key from cache.
func (m *Memory[T]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}

// Close cleans up resources.
func (m *Memory[T]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]memoryItem[T])
	return nil
}
