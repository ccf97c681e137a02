package storagekit

import (
	"context"
)

// Storage binds a Backend to a root folder and hands out File and Folder
// handles. The root folder is protected: it cannot be deleted or renamed
// through the abstraction.
type Storage struct {
	backend Backend
}

// NewStorage creates a Storage over the given backend.
func NewStorage(backend Backend) *Storage {
	return &Storage{backend: backend}
}

// Backend returns the underlying storage primitive.
func (s *Storage) Backend() Backend {
	return s.backend
}

// Root returns the protected root folder of the storage.
func (s *Storage) Root() *Folder {
	return &Folder{storage: s, path: "/", protected: true}
}

// FolderFromPath resolves a folder by its path. The path is normalized
// before probing; a file occupying the path does not satisfy the lookup.
func (s *Storage) FolderFromPath(ctx context.Context, path string) (*Folder, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)
	if path == "/" {
		return s.Root(), nil
	}

	state, err := s.backend.Probe(ctx, path)
	if err != nil {
		return nil, opError("getfolder", path, err)
	}
	if state != FolderExists {
		return nil, &PathError{Op: "getfolder", Path: path, Err: ErrNotFound}
	}
	return &Folder{storage: s, path: path}, nil
}

// FileFromPath resolves a file by its path. A folder occupying the path
// does not satisfy the lookup.
func (s *Storage) FileFromPath(ctx context.Context, path string) (*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)

	state, err := s.backend.Probe(ctx, path)
	if err != nil {
		return nil, opError("getfile", path, err)
	}
	if state != FileExists {
		return nil, &PathError{Op: "getfile", Path: path, Err: ErrNotFound}
	}
	return &File{storage: s, path: path}, nil
}

// childProbe returns a probeFunc over the children of parent.
func (s *Storage) childProbe(parent string) probeFunc {
	return func(ctx context.Context, name string) (ExistenceState, error) {
		return s.backend.Probe(ctx, Combine(parent, name))
	}
}

// childRemove returns a removeFunc over the children of parent, used by
// ReplaceExisting to clear the occupant whatever its kind.
func (s *Storage) childRemove(parent string) removeFunc {
	return func(ctx context.Context, name string) error {
		return s.removeEntity(ctx, Combine(parent, name))
	}
}

// removeEntity deletes whatever occupies path, recursively for folders.
// An unoccupied path is not an error; the occupant may already be gone.
func (s *Storage) removeEntity(ctx context.Context, path string) error {
	state, err := s.backend.Probe(ctx, path)
	if err != nil {
		return err
	}
	switch state {
	case FileExists:
		return s.backend.DeleteFile(ctx, path)
	case FolderExists:
		return s.backend.DeleteFolder(ctx, path)
	default:
		return nil
	}
}
