// Package cache provides the request-scoped memoization container used
// by the reporting engine. A scope lives for exactly one request: it is
// constructed when handling begins and discarded when it ends, so
// cached values can never leak between concurrent requests.
package cache

// Cache is a generic key-value cache.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Set stores a value in the cache.
	Set(key K, value V)

	// Delete removes a key from the cache.
	Delete(key K)

	// Size returns the current number of items in the cache.
	Size() int
}

// Scope is a plain map-backed Cache with no eviction and no TTL.
// It is not safe for concurrent use; each request gets its own.
type Scope[K comparable, V any] struct {
	entries map[K]V
}

// NewScope returns an empty request-scoped cache.
func NewScope[K comparable, V any]() *Scope[K, V] {
	return &Scope[K, V]{entries: make(map[K]V)}
}

func (s *Scope[K, V]) Get(key K) (V, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *Scope[K, V]) Set(key K, value V) {
	s.entries[key] = value
}

func (s *Scope[K, V]) Delete(key K) {
	delete(s.entries, key)
}

func (s *Scope[K, V]) Size() int {
	return len(s.entries)
}

var _ Cache[string, int] = (*Scope[string, int])(nil)
