package storagekit

import (
	"context"
	"errors"
	"fmt"
)

// Common storage errors
var (
	ErrNotFound        = errors.New("item does not exist")
	ErrAlreadyExists   = errors.New("item already exists")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrProtectedRoot   = errors.New("root folder is protected")
	ErrReadOnly        = errors.New("storage is read-only")
	ErrClosed          = errors.New("stream already closed")
	ErrNotSupported    = errors.New("operation not supported")

	// ErrBackend tags opaque I/O failures surfaced from a storage driver.
	// The failure is not interpreted further; the store may be left in an
	// intermediate state (e.g. a replace that deleted the occupant but did
	// not recreate it).
	ErrBackend = errors.New("backend failure")
)

// PathError records an error and the operation and item path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether an error indicates that a file or folder
// does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether an error indicates that the target name
// is already occupied
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// BackendFailure wraps a raw driver error with ErrBackend so callers can
// detect opaque I/O failures via errors.Is. Errors already carrying one of
// the storagekit sentinels or a context error pass through unchanged.
func BackendFailure(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidName, ErrInvalidArgument,
		ErrProtectedRoot, ErrReadOnly, ErrClosed, ErrNotSupported, ErrBackend,
		context.Canceled, context.DeadlineExceeded,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrBackend, err)
}
