package registry

import "sync"

// Registry is a thread-safe map tuned for read-heavy workloads.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// New creates a new empty registry.
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K]V),
	}
}

// Register adds or replaces the value for key.
func (r *Registry[K, V]) Register(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
}

// Get returns the value for a key and whether it exists.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Delete removes a key from the registry.
func (r *Registry[K, V]) Delete(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// Keys returns all keys in the registry in no particular order.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries in the registry.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// LoadOrCompute returns the value for key, computing and publishing it when
// absent. computed reports whether this call ran compute successfully.
// compute runs without the lock held, so concurrent callers may compute the
// same key more than once; every successful result is published and the last
// one wins. A compute error is returned and nothing is stored.
func (r *Registry[K, V]) LoadOrCompute(key K, compute func() (V, error)) (value V, computed bool, err error) {
	if v, ok := r.Get(key); ok {
		return v, false, nil
	}

	v, err := compute()
	if err != nil {
		var zero V
		return zero, false, err
	}

	r.Register(key, v)
	return v, true, nil
}
