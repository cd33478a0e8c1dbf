package repositories

import (
	"errors"
	"fmt"
)

// Common counter store errors
var (
	// ErrInvalidKey is returned when an empty partition key is supplied
	ErrInvalidKey = errors.New("invalid counter key")

	// ErrMalformedItem is returned when a stored record cannot be decoded
	ErrMalformedItem = errors.New("malformed counter item")

	// ErrStoreClosed is returned when a store is used after Close
	ErrStoreClosed = errors.New("counter store closed")
)

// StoreError represents a store access failure with additional context.
// Throttling, permission denial, network failure and malformed items all
// surface as a StoreError.
type StoreError struct {
	Store string // Backing store name (e.g. "dynamodb")
	Op    string // Operation that failed ("Get" or "Increment")
	Key   string // Partition key involved in the operation
	Err   error  // Underlying error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s failed for key '%s': %v", e.Store, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Store, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(store, op, key string, err error) *StoreError {
	return &StoreError{
		Store: store,
		Op:    op,
		Key:   key,
		Err:   err,
	}
}

// IsStoreError returns true if err is, or wraps, a StoreError
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// IsMalformedItem returns true if the error indicates an undecodable record
func IsMalformedItem(err error) bool {
	return errors.Is(err, ErrMalformedItem)
}
