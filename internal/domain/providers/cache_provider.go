package providers

import "context"

// CacheProvider defines the interface for response caching. Only the sitemap
// surface is cached (hourly revalidation); listing, search and facet reads
// always hit the store so every page reflects a fresh scan.
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}
