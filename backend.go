package storagekit

import (
	"context"
	"io"
	"time"
)

// BasicProperties is a point-in-time snapshot of an item's metadata. It is
// never updated in place; a fresh query yields a fresh snapshot. Folders
// report size 0 unless the backend can report an aggregate (most cannot).
type BasicProperties struct {
	ModTime time.Time
	Size    int64
}

// Stream is the byte-stream handle a backend returns from Open. A stream
// opened with Read rejects writes.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// Backend is the storage primitive each driver implements. Paths are the
// canonical slash-separated form produced by Combine/normalization, rooted
// at "/". Items may natively be keyed by path, by name-within-parent, or by
// opaque handle; the backend maps between its native identity and paths.
//
// None of these calls is assumed atomic across a probe-then-act gap: the
// core always re-probes before acting and surfaces races as errors rather
// than pretending to exactly-once semantics.
//
// Every method honors ctx before starting backend work.
type Backend interface {
	// Probe reports whether path is unoccupied, a file, or a folder.
	Probe(ctx context.Context, path string) (ExistenceState, error)

	// CreateFile creates an empty file at path. The parent folder must
	// exist; an occupied path is an error.
	CreateFile(ctx context.Context, path string) error

	// CreateFolder creates a folder at path. The parent folder must exist;
	// an occupied path is an error.
	CreateFolder(ctx context.Context, path string) error

	// DeleteFile removes the file at path.
	DeleteFile(ctx context.Context, path string) error

	// DeleteFolder removes the folder at path and everything beneath it.
	DeleteFolder(ctx context.Context, path string) error

	// ListFiles returns the names of the files directly inside the folder
	// at path. Order is backend-defined and must not be relied upon.
	ListFiles(ctx context.Context, path string) ([]string, error)

	// ListFolders returns the names of the folders directly inside the
	// folder at path.
	ListFolders(ctx context.Context, path string) ([]string, error)

	// Move relocates the file or folder at src to dst. dst must not be
	// occupied; the caller resolves collisions beforehand.
	Move(ctx context.Context, src, dst string) error

	// Copy duplicates the file at src to dst. Folder copies are not part of
	// the primitive surface.
	Copy(ctx context.Context, src, dst string) error

	// Open returns a byte stream over the file at path. Read and ReadWrite
	// require the file to exist; Append and Truncate create it when absent.
	Open(ctx context.Context, path string, mode AccessMode) (Stream, error)

	// Stat returns the properties snapshot for the item at path.
	Stat(ctx context.Context, path string) (BasicProperties, error)
}
