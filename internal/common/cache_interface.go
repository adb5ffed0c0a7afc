package common

import "time"

// CacheInterface is the boundary the registry's read-through get-by-id
// caches sit behind. Implementations differ in where values live: the
// in-memory cache keeps them in process, the Redis cache serializes them
// to JSON. Get fills the caller's destination so both behave identically
// regardless of how the value was stored.
type CacheInterface interface {
	// Set stores a value under key for the given duration.
	Set(key string, value any, duration time.Duration)

	// Get fills dest, a non-nil pointer, with the value cached under key.
	// Reports false when the key is absent or the stored value cannot be
	// decoded into dest; callers then fall through to storage.
	Get(key string, dest any) bool

	// Delete evicts key. Writers call this to invalidate eagerly.
	Delete(key string)

	// Close releases any underlying connections.
	Close() error
}
