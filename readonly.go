package storagekit

import (
	"context"
)

// readOnlyBackend wraps a Backend to reject every mutating primitive with
// ErrReadOnly. Probe, list, stat and read-mode opens pass through.
type readOnlyBackend struct {
	backend Backend
}

// NewReadOnlyBackend returns a read-only view of the given backend. Useful
// for exposing a storage to code that must not modify it.
func NewReadOnlyBackend(backend Backend) Backend {
	return &readOnlyBackend{backend: backend}
}

func (r *readOnlyBackend) Probe(ctx context.Context, path string) (ExistenceState, error) {
	return r.backend.Probe(ctx, path)
}

func (r *readOnlyBackend) CreateFile(ctx context.Context, path string) error {
	return &PathError{Op: "createfile", Path: path, Err: ErrReadOnly}
}

func (r *readOnlyBackend) CreateFolder(ctx context.Context, path string) error {
	return &PathError{Op: "createfolder", Path: path, Err: ErrReadOnly}
}

func (r *readOnlyBackend) DeleteFile(ctx context.Context, path string) error {
	return &PathError{Op: "deletefile", Path: path, Err: ErrReadOnly}
}

func (r *readOnlyBackend) DeleteFolder(ctx context.Context, path string) error {
	return &PathError{Op: "deletefolder", Path: path, Err: ErrReadOnly}
}

func (r *readOnlyBackend) ListFiles(ctx context.Context, path string) ([]string, error) {
	return r.backend.ListFiles(ctx, path)
}

func (r *readOnlyBackend) ListFolders(ctx context.Context, path string) ([]string, error) {
	return r.backend.ListFolders(ctx, path)
}

func (r *readOnlyBackend) Move(ctx context.Context, src, dst string) error {
	return &PathError{Op: "move", Path: src, Err: ErrReadOnly}
}

func (r *readOnlyBackend) Copy(ctx context.Context, src, dst string) error {
	return &PathError{Op: "copy", Path: src, Err: ErrReadOnly}
}

func (r *readOnlyBackend) Open(ctx context.Context, path string, mode AccessMode) (Stream, error) {
	if mode != Read {
		return nil, &PathError{Op: "open", Path: path, Err: ErrReadOnly}
	}
	return r.backend.Open(ctx, path, mode)
}

func (r *readOnlyBackend) Stat(ctx context.Context, path string) (BasicProperties, error) {
	return r.backend.Stat(ctx, path)
}

var _ Backend = (*readOnlyBackend)(nil)
