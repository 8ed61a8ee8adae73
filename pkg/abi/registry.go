package abi

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is a concurrency-safe, type-parameterized handle table. Each
// stateful ABI surface (TUCalculator, a rate limiter, a key pair) keeps
// its own Registry instance rather than sharing one untyped map, the
// same per-concern separation pkg/plugin/registry.go uses for sources,
// enrichers, and destinations.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[Handle]T
}

// NewRegistry constructs an empty Registry for T.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[Handle]T)}
}

// New registers value under a freshly minted handle.
func (r *Registry[T]) New(value T) Handle {
	h := Handle(uuid.New())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[h] = value
	return h
}

// Get returns the value registered under h, and whether it was found.
func (r *Registry[T]) Get(h Handle) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[h]
	return v, ok
}

// Put overwrites the value registered under an already-live handle,
// leaving the handle itself unchanged, so the caller keeps using the same
// token for the replacement value.
func (r *Registry[T]) Put(h Handle, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[h] = value
}

// Free releases the handle *h and zeroes it so the caller can't reuse a
// stale token. Freeing a nil pointer, the zero handle, or an
// already-freed handle is a no-op, tolerating double-free per the
// ownership contract.
func (r *Registry[T]) Free(h *Handle) {
	if h == nil || h.IsZero() {
		return
	}
	r.mu.Lock()
	delete(r.items, *h)
	r.mu.Unlock()
	*h = Handle{}
}

// Len reports how many handles are currently live. Mainly useful in
// tests that assert Free actually released its entry.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
