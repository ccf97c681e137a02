package storagekit

import (
	"context"
	"errors"
)

// Item is the surface shared by File and Folder. Listing a folder yields
// Items with folders ordered before files.
//
// An Item owns its own Path/Name state and nothing else: the bytes and
// directory entries belong to the backing store. Deleting the backing entity
// does not invalidate an already-constructed Item; it becomes a stale handle
// whose next operation fails with ErrNotFound.
type Item interface {
	// Path returns the canonical slash-separated path identifying the item
	// within its storage root.
	Path() string

	// Name returns the last path segment.
	Name() string

	// IsFolder reports whether the item is a folder.
	IsFolder() bool

	// Properties returns a point-in-time metadata snapshot.
	Properties(ctx context.Context) (BasicProperties, error)

	// Delete removes the backing entity, recursively for folders.
	Delete(ctx context.Context) error
}

// opError wraps err in a PathError unless it already is one (driver errors
// arrive pre-wrapped).
func opError(op, path string, err error) error {
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	return &PathError{Op: op, Path: path, Err: err}
}
