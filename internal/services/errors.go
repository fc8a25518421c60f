// Package services defines the business logic for board messages and the
// auto-delete window. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked by
// callers.
//
// Translation into HTTP status codes is performed at the handler layer:
// validation errors map to 400, ErrMessageNotFound to 404, and StorageError
// to 500 with the underlying cause logged.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is returned when a create request contains text that is
	// empty after trimming surrounding whitespace.
	ErrEmptyText = errors.New("message text is required")

	// ErrInvalidHours is returned when an hours value is absent, not a
	// positive number, or zero. Zero is rejected deliberately to match the
	// original service's input check.
	ErrInvalidHours = errors.New("valid hours value is required")

	// ErrMessageNotFound indicates that the requested message id does not
	// exist in the collection.
	ErrMessageNotFound = errors.New("message not found")
)

// StorageError wraps a file read/write failure so handlers can distinguish
// persistence faults from validation problems.
type StorageError struct {
	Op  string // operation that failed, e.g. "save"
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
