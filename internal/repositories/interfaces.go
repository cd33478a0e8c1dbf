package repositories

import (
	"context"
)

// CounterRepository defines the operations a visit counter store provides
type CounterRepository interface {
	// Get returns the current value for key, or 0 when the record does not
	// exist. It never creates the record.
	Get(ctx context.Context, key string) (uint64, error)

	// Increment atomically adds 1 to the value for key and returns the new
	// value. A missing record is created with value 1.
	Increment(ctx context.Context, key string) (uint64, error)

	// Name identifies the backing store in logs
	Name() string

	// Close releases any resources held by the store
	Close() error
}
