// Package cache provides the bounded TTL cache injected into services that
// keep read-mostly lookups warm. Implementations must be safe for
// concurrent use and must expire entries after their TTL so multi-instance
// deployments converge without explicit invalidation broadcasts.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value for at most ttl. Implementations with a size
	// bound may evict other entries to make room.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes a key if present.
	Delete(ctx context.Context, key string)
}
