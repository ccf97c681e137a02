package memory

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gobeaver/storagekit"
)

// memFile represents a file stored in memory
type memFile struct {
	content []byte
	modTime time.Time
}

// Adapter provides an in-memory implementation of storagekit.Backend.
// Useful for testing and staging scenarios.
type Adapter struct {
	mu      sync.RWMutex
	files   map[string]*memFile
	dirs    map[string]time.Time
	maxSize int64 // Maximum total storage size (0 = unlimited)
	size    int64 // Current total size
}

// Config holds configuration for the memory adapter
type Config struct {
	// MaxSize is the maximum total storage size in bytes (0 = unlimited)
	MaxSize int64
}

// New creates a new in-memory backend
func New(cfg ...Config) *Adapter {
	var maxSize int64
	if len(cfg) > 0 {
		maxSize = cfg[0].MaxSize
	}

	a := &Adapter{
		files:   make(map[string]*memFile),
		dirs:    make(map[string]time.Time),
		maxSize: maxSize,
	}

	// Create root folder
	a.dirs["/"] = time.Now()

	return a
}

// Probe implements storagekit.Backend
func (a *Adapter) Probe(ctx context.Context, p string) (storagekit.ExistenceState, error) {
	select {
	case <-ctx.Done():
		return storagekit.NotFound, ctx.Err()
	default:
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if _, ok := a.files[p]; ok {
		return storagekit.FileExists, nil
	}
	if _, ok := a.dirs[p]; ok {
		return storagekit.FolderExists, nil
	}
	return storagekit.NotFound, nil
}

// CreateFile implements storagekit.Backend
func (a *Adapter) CreateFile(ctx context.Context, p string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.occupied(p) {
		return &storagekit.PathError{Op: "createfile", Path: p, Err: storagekit.ErrAlreadyExists}
	}
	if _, ok := a.dirs[path.Dir(p)]; !ok {
		return &storagekit.PathError{Op: "createfile", Path: p, Err: storagekit.ErrNotFound}
	}

	a.files[p] = &memFile{modTime: time.Now()}
	return nil
}

// CreateFolder implements storagekit.Backend
func (a *Adapter) CreateFolder(ctx context.Context, p string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.occupied(p) {
		return &storagekit.PathError{Op: "createfolder", Path: p, Err: storagekit.ErrAlreadyExists}
	}
	if _, ok := a.dirs[path.Dir(p)]; !ok {
		return &storagekit.PathError{Op: "createfolder", Path: p, Err: storagekit.ErrNotFound}
	}

	a.dirs[p] = time.Now()
	return nil
}

// DeleteFile implements storagekit.Backend
func (a *Adapter) DeleteFile(ctx context.Context, p string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	file, ok := a.files[p]
	if !ok {
		return &storagekit.PathError{Op: "deletefile", Path: p, Err: storagekit.ErrNotFound}
	}

	a.size -= int64(len(file.content))
	delete(a.files, p)
	return nil
}

// DeleteFolder implements storagekit.Backend. The folder and everything
// beneath it are removed.
func (a *Adapter) DeleteFolder(ctx context.Context, p string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.dirs[p]; !ok {
		return &storagekit.PathError{Op: "deletefolder", Path: p, Err: storagekit.ErrNotFound}
	}

	prefix := p + "/"
	if p == "/" {
		prefix = "/"
	}

	for filePath, file := range a.files {
		if strings.HasPrefix(filePath, prefix) {
			a.size -= int64(len(file.content))
			delete(a.files, filePath)
		}
	}
	for dirPath := range a.dirs {
		if strings.HasPrefix(dirPath, prefix) {
			delete(a.dirs, dirPath)
		}
	}
	if p != "/" {
		delete(a.dirs, p)
	} else {
		// The root itself survives deletion of its contents
		a.dirs["/"] = time.Now()
	}
	return nil
}

// ListFiles implements storagekit.Backend
func (a *Adapter) ListFiles(ctx context.Context, p string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if _, ok := a.dirs[p]; !ok {
		return nil, &storagekit.PathError{Op: "listfiles", Path: p, Err: storagekit.ErrNotFound}
	}

	var names []string
	for filePath := range a.files {
		if path.Dir(filePath) == p {
			names = append(names, path.Base(filePath))
		}
	}
	return names, nil
}

// ListFolders implements storagekit.Backend
func (a *Adapter) ListFolders(ctx context.Context, p string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if _, ok := a.dirs[p]; !ok {
		return nil, &storagekit.PathError{Op: "listfolders", Path: p, Err: storagekit.ErrNotFound}
	}

	var names []string
	for dirPath := range a.dirs {
		if dirPath != "/" && path.Dir(dirPath) == p {
			names = append(names, path.Base(dirPath))
		}
	}
	return names, nil
}

// Move implements storagekit.Backend for files and whole folder subtrees.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.occupied(dst) {
		return &storagekit.PathError{Op: "move", Path: dst, Err: storagekit.ErrAlreadyExists}
	}
	if _, ok := a.dirs[path.Dir(dst)]; !ok {
		return &storagekit.PathError{Op: "move", Path: dst, Err: storagekit.ErrNotFound}
	}

	if file, ok := a.files[src]; ok {
		a.files[dst] = file
		delete(a.files, src)
		return nil
	}

	if modTime, ok := a.dirs[src]; ok {
		a.dirs[dst] = modTime
		delete(a.dirs, src)

		// Re-key the whole subtree
		prefix := src + "/"
		for filePath, file := range a.files {
			if strings.HasPrefix(filePath, prefix) {
				delete(a.files, filePath)
				a.files[dst+"/"+strings.TrimPrefix(filePath, prefix)] = file
			}
		}
		for dirPath, dirMod := range a.dirs {
			if strings.HasPrefix(dirPath, prefix) {
				delete(a.dirs, dirPath)
				a.dirs[dst+"/"+strings.TrimPrefix(dirPath, prefix)] = dirMod
			}
		}
		return nil
	}

	return &storagekit.PathError{Op: "move", Path: src, Err: storagekit.ErrNotFound}
}

// Copy implements storagekit.Backend for files.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	srcFile, ok := a.files[src]
	if !ok {
		if _, isDir := a.dirs[src]; isDir {
			return &storagekit.PathError{Op: "copy", Path: src, Err: storagekit.ErrNotSupported}
		}
		return &storagekit.PathError{Op: "copy", Path: src, Err: storagekit.ErrNotFound}
	}
	if a.occupied(dst) {
		return &storagekit.PathError{Op: "copy", Path: dst, Err: storagekit.ErrAlreadyExists}
	}
	if _, ok := a.dirs[path.Dir(dst)]; !ok {
		return &storagekit.PathError{Op: "copy", Path: dst, Err: storagekit.ErrNotFound}
	}
	if err := a.checkSize(int64(len(srcFile.content))); err != nil {
		return &storagekit.PathError{Op: "copy", Path: dst, Err: err}
	}

	content := make([]byte, len(srcFile.content))
	copy(content, srcFile.content)
	a.files[dst] = &memFile{content: content, modTime: time.Now()}
	a.size += int64(len(content))
	return nil
}

// Open implements storagekit.Backend. Streams buffer the contents in memory
// and writable streams persist on Close.
func (a *Adapter) Open(ctx context.Context, p string, mode storagekit.AccessMode) (storagekit.Stream, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	file, exists := a.files[p]
	if _, isDir := a.dirs[p]; isDir {
		return nil, &storagekit.PathError{Op: "open", Path: p, Err: storagekit.ErrNotFound}
	}

	switch mode {
	case storagekit.Read, storagekit.ReadWrite:
		if !exists {
			return nil, &storagekit.PathError{Op: "open", Path: p, Err: storagekit.ErrNotFound}
		}
	case storagekit.Append, storagekit.Truncate:
		if !exists {
			if _, ok := a.dirs[path.Dir(p)]; !ok {
				return nil, &storagekit.PathError{Op: "open", Path: p, Err: storagekit.ErrNotFound}
			}
		}
	default:
		return nil, &storagekit.PathError{Op: "open", Path: p, Err: storagekit.ErrInvalidArgument}
	}

	var data []byte
	if exists && mode != storagekit.Truncate {
		data = make([]byte, len(file.content))
		copy(data, file.content)
	}

	s := &memStream{
		adapter:  a,
		path:     p,
		data:     data,
		writable: mode != storagekit.Read,
	}
	if mode == storagekit.Append {
		s.off = len(data)
	}
	return s, nil
}

// Stat implements storagekit.Backend
func (a *Adapter) Stat(ctx context.Context, p string) (storagekit.BasicProperties, error) {
	select {
	case <-ctx.Done():
		return storagekit.BasicProperties{}, ctx.Err()
	default:
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if file, ok := a.files[p]; ok {
		return storagekit.BasicProperties{ModTime: file.modTime, Size: int64(len(file.content))}, nil
	}
	if modTime, ok := a.dirs[p]; ok {
		return storagekit.BasicProperties{ModTime: modTime, Size: 0}, nil
	}
	return storagekit.BasicProperties{}, &storagekit.PathError{Op: "stat", Path: p, Err: storagekit.ErrNotFound}
}

// Size returns the current total size of all stored files
func (a *Adapter) Size() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size
}

// FileCount returns the number of files stored
func (a *Adapter) FileCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.files)
}

// Clear removes all files and folders. Useful for testing cleanup.
func (a *Adapter) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.files = make(map[string]*memFile)
	a.dirs = map[string]time.Time{"/": time.Now()}
	a.size = 0
}

// occupied reports whether anything sits at p. Must be called with lock held.
func (a *Adapter) occupied(p string) bool {
	if _, ok := a.files[p]; ok {
		return true
	}
	_, ok := a.dirs[p]
	return ok
}

// checkSize verifies the size limit allows delta more bytes. Must be called
// with lock held.
func (a *Adapter) checkSize(delta int64) error {
	if a.maxSize > 0 && a.size+delta > a.maxSize {
		return storagekit.BackendFailure(errors.New("storage size limit exceeded"))
	}
	return nil
}

// persist stores a stream's buffer back into the adapter.
func (a *Adapter) persist(p string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var old int64
	if file, ok := a.files[p]; ok {
		old = int64(len(file.content))
	}
	if err := a.checkSize(int64(len(data)) - old); err != nil {
		return &storagekit.PathError{Op: "close", Path: p, Err: err}
	}

	a.files[p] = &memFile{content: data, modTime: time.Now()}
	a.size += int64(len(data)) - old
	return nil
}

// memStream is a byte stream over a buffered copy of a file's contents.
// Writable streams persist on Close; read streams never touch the adapter.
type memStream struct {
	adapter  *Adapter
	path     string
	data     []byte
	off      int
	writable bool
	closed   bool
}

func (s *memStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, storagekit.ErrClosed
	}
	if s.off >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.off:])
	s.off += n
	return n, nil
}

func (s *memStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, storagekit.ErrClosed
	}
	if !s.writable {
		return 0, storagekit.ErrReadOnly
	}
	end := s.off + len(p)
	if end > len(s.data) {
		grown := make([]byte, end)
		copy(grown, s.data)
		s.data = grown
	}
	copy(s.data[s.off:end], p)
	s.off = end
	return len(p), nil
}

func (s *memStream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, storagekit.ErrClosed
	}
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(s.off) + offset
	case io.SeekEnd:
		target = int64(len(s.data)) + offset
	default:
		return 0, storagekit.ErrInvalidArgument
	}
	if target < 0 {
		return 0, storagekit.ErrInvalidArgument
	}
	s.off = int(target)
	return target, nil
}

func (s *memStream) Close() error {
	if s.closed {
		return storagekit.ErrClosed
	}
	s.closed = true
	if !s.writable {
		return nil
	}
	return s.adapter.persist(s.path, s.data)
}

// Ensure Adapter implements the backend contract
var _ storagekit.Backend = (*Adapter)(nil)
