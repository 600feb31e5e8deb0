package cache

import "errors"

// ErrEmptyKey is returned when an entry is stored or deleted under an
// empty key.
var ErrEmptyKey = errors.New("cache: key cannot be empty")

// Cache is a generic key/value cache. Implementations are safe for
// concurrent use.
type Cache[V any] interface {
	// Get retrieves a value by key. It reports false when absent.
	Get(key string) (V, bool)

	// Set stores a value under key. It reports true when a new entry was
	// created and false when an existing one was updated.
	Set(key string, value V) (bool, error)

	// Delete removes an entry by key, reporting whether it existed.
	Delete(key string) (bool, error)

	// Clear removes all entries.
	Clear()

	// Size returns the current number of entries.
	Size() int

	// Keys returns all keys currently cached.
	Keys() []string

	// Stats returns the cache's statistics. Never nil.
	Stats() *Statistics
}

// EvictCallback is invoked when an entry leaves an LRU cache because of
// capacity pressure.
type EvictCallback[V any] func(key string, value V)
