package storage

import "errors"

// Common client storage errors
var (
	// ErrNotFound indicates that the requested session entry does not exist.
	ErrNotFound = errors.New("session data not found")

	// ErrStorageClosed indicates that storage is closed.
	ErrStorageClosed = errors.New("storage is closed")
)
