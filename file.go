package storagekit

import (
	"context"
	"io"
)

// File is a handle to a file within a Storage. Rename and Move mutate the
// receiver's Path in place; Copy returns a fresh handle for the destination
// and leaves the receiver untouched.
type File struct {
	storage *Storage
	path    string
}

// Path returns the canonical path of the file.
func (f *File) Path() string {
	return f.path
}

// Name returns the last path segment.
func (f *File) Name() string {
	return BaseName(f.path)
}

// IsFolder implements Item.
func (f *File) IsFolder() bool {
	return false
}

// Equals reports whether other identifies the same entity: same storage,
// byte-identical path.
func (f *File) Equals(other *File) bool {
	return other != nil && f.storage == other.storage && f.path == other.path
}

// Open returns a byte stream over the file. Only Read and ReadWrite are
// accepted; any other mode is ErrInvalidArgument.
func (f *File) Open(ctx context.Context, mode AccessMode) (Stream, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if mode != Read && mode != ReadWrite {
		return nil, &PathError{Op: "open", Path: f.path, Err: ErrInvalidArgument}
	}
	stream, err := f.storage.backend.Open(ctx, f.path, mode)
	if err != nil {
		return nil, opError("open", f.path, err)
	}
	return stream, nil
}

// Delete removes the file.
func (f *File) Delete(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	state, err := f.storage.backend.Probe(ctx, f.path)
	if err != nil {
		return opError("delete", f.path, err)
	}
	if state != FileExists {
		return &PathError{Op: "delete", Path: f.path, Err: ErrNotFound}
	}
	if err := f.storage.backend.DeleteFile(ctx, f.path); err != nil {
		return opError("delete", f.path, err)
	}
	return nil
}

// Rename moves the file within its parent, resolving collisions on the new
// name according to policy, and mutates the receiver's Path in place.
// OpenIfExists is valid for creation only.
func (f *File) Rename(ctx context.Context, newName string, policy CollisionPolicy) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if newName == "" {
		return &PathError{Op: "rename", Path: f.path, Err: ErrInvalidName}
	}
	if policy == OpenIfExists {
		return &PathError{Op: "rename", Path: f.path, Err: ErrInvalidArgument}
	}

	parent := ParentPath(f.path)
	res, err := resolveName(ctx, newName, policy, f.storage.childProbe(parent), f.storage.childRemove(parent))
	if err != nil {
		return opError("rename", Combine(parent, newName), err)
	}

	newPath := Combine(parent, res.name)
	if err := f.storage.backend.Move(ctx, f.path, newPath); err != nil {
		return opError("rename", f.path, err)
	}
	f.path = newPath
	return nil
}

// Move relocates the file into dest, resolving collisions in the
// destination folder. newName selects the name at the destination; empty
// keeps the current name. On success the receiver is re-pointed at the
// destination path. Moves across storages fall back to copy-then-delete.
func (f *File) Move(ctx context.Context, dest *Folder, newName string, policy CollisionPolicy) error {
	dstPath, err := f.resolveDestination(ctx, "move", dest, newName, policy)
	if err != nil {
		return err
	}

	if dest.storage == f.storage {
		if err := f.storage.backend.Move(ctx, f.path, dstPath); err != nil {
			return opError("move", f.path, err)
		}
	} else {
		if err := copyStream(ctx, f.storage, f.path, dest.storage, dstPath); err != nil {
			return opError("move", f.path, err)
		}
		if err := f.storage.backend.DeleteFile(ctx, f.path); err != nil {
			return opError("move", f.path, err)
		}
	}

	f.storage = dest.storage
	f.path = dstPath
	return nil
}

// Copy duplicates the file into dest, resolving collisions in the
// destination folder, and returns a fresh handle for the copy. The receiver
// keeps identifying the source. Copies across storages stream the bytes.
func (f *File) Copy(ctx context.Context, dest *Folder, newName string, policy CollisionPolicy) (*File, error) {
	dstPath, err := f.resolveDestination(ctx, "copy", dest, newName, policy)
	if err != nil {
		return nil, err
	}

	if dest.storage == f.storage {
		if err := f.storage.backend.Copy(ctx, f.path, dstPath); err != nil {
			return nil, opError("copy", f.path, err)
		}
	} else {
		if err := copyStream(ctx, f.storage, f.path, dest.storage, dstPath); err != nil {
			return nil, opError("copy", f.path, err)
		}
	}

	return &File{storage: dest.storage, path: dstPath}, nil
}

// resolveDestination runs the collision resolver in the destination folder
// for a move or copy and returns the final destination path.
func (f *File) resolveDestination(ctx context.Context, op string, dest *Folder, newName string, policy CollisionPolicy) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if dest == nil {
		return "", &PathError{Op: op, Path: f.path, Err: ErrInvalidArgument}
	}
	if policy == OpenIfExists {
		return "", &PathError{Op: op, Path: f.path, Err: ErrInvalidArgument}
	}
	if newName == "" {
		newName = f.Name()
	}
	if err := dest.mustExist(ctx, op); err != nil {
		return "", err
	}

	res, err := resolveName(ctx, newName, policy, dest.storage.childProbe(dest.path), dest.storage.childRemove(dest.path))
	if err != nil {
		return "", opError(op, Combine(dest.path, newName), err)
	}
	return Combine(dest.path, res.name), nil
}

// AppendText opens the file in append mode, creating it if absent, and
// writes text followed by a line terminator.
func (f *File) AppendText(ctx context.Context, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stream, err := f.storage.backend.Open(ctx, f.path, Append)
	if err != nil {
		return opError("appendtext", f.path, err)
	}
	if _, err := io.WriteString(stream, text+"\n"); err != nil {
		stream.Close()
		return opError("appendtext", f.path, BackendFailure(err))
	}
	if err := stream.Close(); err != nil {
		return opError("appendtext", f.path, BackendFailure(err))
	}
	return nil
}

// ReadAllBytes opens the file for reading and returns its entire contents.
func (f *File) ReadAllBytes(ctx context.Context) ([]byte, error) {
	stream, err := f.Open(ctx, Read)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, opError("readallbytes", f.path, BackendFailure(err))
	}
	return data, nil
}

// ReadAllText reads the entire file contents as a string.
func (f *File) ReadAllText(ctx context.Context) (string, error) {
	data, err := f.ReadAllBytes(ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteAllBytes replaces the file's contents with data, creating the file
// if absent.
func (f *File) WriteAllBytes(ctx context.Context, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stream, err := f.storage.backend.Open(ctx, f.path, Truncate)
	if err != nil {
		return opError("writeallbytes", f.path, err)
	}
	if _, err := stream.Write(data); err != nil {
		stream.Close()
		return opError("writeallbytes", f.path, BackendFailure(err))
	}
	if err := stream.Close(); err != nil {
		return opError("writeallbytes", f.path, BackendFailure(err))
	}
	return nil
}

// Parent returns the containing folder.
func (f *File) Parent(ctx context.Context) (*Folder, error) {
	return f.storage.FolderFromPath(ctx, ParentPath(f.path))
}

// Properties returns a point-in-time snapshot of the file's metadata.
func (f *File) Properties(ctx context.Context) (BasicProperties, error) {
	select {
	case <-ctx.Done():
		return BasicProperties{}, ctx.Err()
	default:
	}

	props, err := f.storage.backend.Stat(ctx, f.path)
	if err != nil {
		return BasicProperties{}, opError("properties", f.path, err)
	}
	return props, nil
}

// copyStream duplicates a file across backends by streaming its bytes.
func copyStream(ctx context.Context, src *Storage, srcPath string, dst *Storage, dstPath string) error {
	in, err := src.backend.Open(ctx, srcPath, Read)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := dst.backend.Open(ctx, dstPath, Truncate)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return BackendFailure(err)
	}
	return BackendFailure(out.Close())
}

var _ Item = (*File)(nil)
