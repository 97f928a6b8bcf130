package providers

import (
	"context"
)

// CacheProvider defines the interface for caching operations. The cached data
// is a read-only catalog, so there is no invalidation; entries age out by TTL.
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
}
