// Package cache provides the in-memory identity cache used by
// user-storage providers. Each provider instance owns its own cache;
// entries live until deleted or the cache is closed.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache: key not found")
)

// Cache defines the primitive operations for a key-value cache.
// T is the type of value stored in the cache.
type Cache[T any] interface {
	// Get retrieves a value from cache.
	// Returns ErrCacheMiss if the key does not exist or has expired.
	Get(ctx context.Context, key string) (T, error)

	// Set stores a value in cache. A TTL of zero means the entry never
	// expires.
	Set(ctx context.Context, key string, value T, ttl time.Duration) error

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// Len returns the number of stored entries, including entries that
	// have expired but not yet been read.
	Len() int

	// Close releases the cache's storage
	Close() error
}
