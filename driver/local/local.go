package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobeaver/storagekit"
)

// Adapter provides a local filesystem implementation of storagekit.Backend.
// All paths are resolved beneath a fixed root directory.
type Adapter struct {
	root string
}

// New creates a new local filesystem adapter rooted at root. The root
// directory is created if it does not exist.
func New(root string) (*Adapter, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// Ensure the root directory exists
	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, err
	}

	return &Adapter{
		root: absRoot,
	}, nil
}

// Root returns the absolute root directory of the adapter.
func (a *Adapter) Root() string {
	return a.root
}

// Probe implements storagekit.Backend
func (a *Adapter) Probe(ctx context.Context, path string) (storagekit.ExistenceState, error) {
	select {
	case <-ctx.Done():
		return storagekit.NotFound, ctx.Err()
	default:
	}

	fullPath, err := a.fullPath("probe", path)
	if err != nil {
		return storagekit.NotFound, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return storagekit.NotFound, nil
		}
		return storagekit.NotFound, pathError("probe", path, err)
	}
	if info.IsDir() {
		return storagekit.FolderExists, nil
	}
	return storagekit.FileExists, nil
}

// CreateFile implements storagekit.Backend. The parent directory must
// already exist.
func (a *Adapter) CreateFile(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.fullPath("createfile", path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return pathError("createfile", path, err)
	}
	return f.Close()
}

// CreateFolder implements storagekit.Backend. The parent directory must
// already exist.
func (a *Adapter) CreateFolder(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.fullPath("createfolder", path)
	if err != nil {
		return err
	}

	if err := os.Mkdir(fullPath, 0755); err != nil {
		return pathError("createfolder", path, err)
	}
	return nil
}

// DeleteFile implements storagekit.Backend
func (a *Adapter) DeleteFile(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.fullPath("deletefile", path)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return pathError("deletefile", path, err)
	}
	if info.IsDir() {
		return &storagekit.PathError{Op: "deletefile", Path: path, Err: storagekit.ErrNotFound}
	}
	if err := os.Remove(fullPath); err != nil {
		return pathError("deletefile", path, err)
	}
	return nil
}

// DeleteFolder implements storagekit.Backend. The folder and everything
// beneath it are removed.
func (a *Adapter) DeleteFolder(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.fullPath("deletefolder", path)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return pathError("deletefolder", path, err)
	}
	if !info.IsDir() {
		return &storagekit.PathError{Op: "deletefolder", Path: path, Err: storagekit.ErrNotFound}
	}
	if err := os.RemoveAll(fullPath); err != nil {
		return pathError("deletefolder", path, err)
	}
	return nil
}

// ListFiles implements storagekit.Backend
func (a *Adapter) ListFiles(ctx context.Context, path string) ([]string, error) {
	return a.list(ctx, "listfiles", path, false)
}

// ListFolders implements storagekit.Backend
func (a *Adapter) ListFolders(ctx context.Context, path string) ([]string, error) {
	return a.list(ctx, "listfolders", path, true)
}

func (a *Adapter) list(ctx context.Context, op, path string, wantDirs bool) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath, err := a.fullPath(op, path)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, pathError(op, path, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() == wantDirs {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Move implements storagekit.Backend via os.Rename, which moves files and
// whole directory trees alike.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	srcPath, err := a.fullPath("move", src)
	if err != nil {
		return err
	}
	dstPath, err := a.fullPath("move", dst)
	if err != nil {
		return err
	}

	// os.Rename silently replaces an existing file; check first
	if _, err := os.Lstat(dstPath); err == nil {
		return &storagekit.PathError{Op: "move", Path: dst, Err: storagekit.ErrAlreadyExists}
	}

	if err := os.Rename(srcPath, dstPath); err != nil {
		return pathError("move", src, err)
	}
	return nil
}

// Copy implements storagekit.Backend for files. Copying a directory is not
// supported at this level.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	srcPath, err := a.fullPath("copy", src)
	if err != nil {
		return err
	}
	dstPath, err := a.fullPath("copy", dst)
	if err != nil {
		return err
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return pathError("copy", src, err)
	}
	if info.IsDir() {
		return &storagekit.PathError{Op: "copy", Path: src, Err: storagekit.ErrNotSupported}
	}

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return pathError("copy", src, err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return pathError("copy", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return pathError("copy", dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return pathError("copy", dst, err)
	}
	return nil
}

// Open implements storagekit.Backend. The returned stream is the underlying
// *os.File.
func (a *Adapter) Open(ctx context.Context, path string, mode storagekit.AccessMode) (storagekit.Stream, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath, err := a.fullPath("open", path)
	if err != nil {
		return nil, err
	}

	// Opening a directory as a byte stream makes no sense
	if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
		return nil, &storagekit.PathError{Op: "open", Path: path, Err: storagekit.ErrNotFound}
	}

	var flags int
	switch mode {
	case storagekit.Read:
		flags = os.O_RDONLY
	case storagekit.ReadWrite:
		flags = os.O_RDWR
	case storagekit.Append:
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case storagekit.Truncate:
		flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return nil, &storagekit.PathError{Op: "open", Path: path, Err: storagekit.ErrInvalidArgument}
	}

	f, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return nil, pathError("open", path, err)
	}
	return f, nil
}

// Stat implements storagekit.Backend
func (a *Adapter) Stat(ctx context.Context, path string) (storagekit.BasicProperties, error) {
	select {
	case <-ctx.Done():
		return storagekit.BasicProperties{}, ctx.Err()
	default:
	}

	fullPath, err := a.fullPath("stat", path)
	if err != nil {
		return storagekit.BasicProperties{}, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return storagekit.BasicProperties{}, pathError("stat", path, err)
	}

	size := info.Size()
	if info.IsDir() {
		size = 0
	}
	return storagekit.BasicProperties{
		ModTime: info.ModTime(),
		Size:    size,
	}, nil
}

// fullPath converts a slash-separated storage path into an absolute OS path
// under the adapter root, refusing anything that would escape it.
func (a *Adapter) fullPath(op, path string) (string, error) {
	full := filepath.Join(a.root, filepath.FromSlash(path))
	if !isPathUnderRoot(a.root, full) {
		return "", &storagekit.PathError{Op: op, Path: path, Err: storagekit.ErrInvalidArgument}
	}
	return full, nil
}

// isPathUnderRoot checks if a path is under a given root directory
func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return !filepath.IsAbs(rel) && rel != ".." && !strings.HasPrefix(rel, "../")
}

// pathError translates an OS-level error into the shared error taxonomy.
func pathError(op, path string, err error) error {
	switch {
	case os.IsNotExist(err):
		err = storagekit.ErrNotFound
	case os.IsExist(err):
		err = storagekit.ErrAlreadyExists
	default:
		err = storagekit.BackendFailure(err)
	}
	return &storagekit.PathError{Op: op, Path: path, Err: err}
}

// Ensure Adapter implements the backend contract
var _ storagekit.Backend = (*Adapter)(nil)
