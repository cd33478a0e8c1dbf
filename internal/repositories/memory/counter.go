package memory

import (
	"context"
	"sync"

	"visit-counter-api/internal/repositories"
)

// CounterRepository is an in-process counter store. It backs tests and
// offline dev server runs; values are lost when the process exits.
type CounterRepository struct {
	mu     sync.Mutex
	values map[string]uint64
	closed bool
}

// NewCounterRepository creates an empty in-memory counter store
func NewCounterRepository() *CounterRepository {
	return &CounterRepository{
		values: make(map[string]uint64),
	}
}

// Get implements repositories.CounterRepository.Get
func (r *CounterRepository) Get(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(r.Name(), "Get", key, repositories.ErrInvalidKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, repositories.NewStoreError(r.Name(), "Get", key, repositories.ErrStoreClosed)
	}
	return r.values[key], nil
}

// Increment implements repositories.CounterRepository.Increment
func (r *CounterRepository) Increment(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(r.Name(), "Increment", key, repositories.ErrInvalidKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, repositories.NewStoreError(r.Name(), "Increment", key, repositories.ErrStoreClosed)
	}
	r.values[key]++
	return r.values[key], nil
}

// Set seeds a value, used to start tests from a known count
func (r *CounterRepository) Set(key string, value uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
}

// Exists reports whether a record has been created for key
func (r *CounterRepository) Exists(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.values[key]
	return ok
}

// Name implements repositories.CounterRepository.Name
func (r *CounterRepository) Name() string {
	return "memory"
}

// Close implements repositories.CounterRepository.Close
func (r *CounterRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
