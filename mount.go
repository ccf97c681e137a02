package storagekit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrMountNotFound is returned when no mount point matches the path
	ErrMountNotFound = errors.New("no mount point found for path")
	// ErrMountExists is returned when trying to mount at an existing path
	ErrMountExists = errors.New("mount point already exists")
	// ErrEmptyMountPath is returned when the mount path is empty
	ErrEmptyMountPath = errors.New("mount path cannot be empty")
	// ErrNilStorage is returned when trying to mount a nil storage
	ErrNilStorage = errors.New("storage cannot be nil")
)

// MountManager provides virtual path namespacing over multiple storages.
// Different backends can be mounted under virtual prefixes and addressed
// through one path space; item handles returned by the manager are scoped
// to the storage that owns them, with storage-relative paths.
type MountManager struct {
	mu     sync.RWMutex
	mounts map[string]*Storage
	// sorted mount paths for longest-prefix matching
	sortedPaths []string
}

// NewMountManager creates an empty mount manager.
func NewMountManager() *MountManager {
	return &MountManager{
		mounts: make(map[string]*Storage),
	}
}

// Mount attaches a storage at the given virtual path. Nested mounts are
// supported; resolution picks the longest matching prefix.
func (m *MountManager) Mount(mountPath string, storage *Storage) error {
	if storage == nil {
		return ErrNilStorage
	}

	mountPath = normalizePath(mountPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.mounts[mountPath]; exists {
		return fmt.Errorf("%w: %s", ErrMountExists, mountPath)
	}

	m.mounts[mountPath] = storage
	m.updateSortedPaths()

	return nil
}

// Unmount removes the storage mounted at the given path.
func (m *MountManager) Unmount(mountPath string) error {
	mountPath = normalizePath(mountPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.mounts[mountPath]; !exists {
		return fmt.Errorf("%w: %s", ErrMountNotFound, mountPath)
	}

	delete(m.mounts, mountPath)
	m.updateSortedPaths()

	return nil
}

// Mounts returns a copy of all current mount points and their storages.
func (m *MountManager) Mounts() map[string]*Storage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]*Storage, len(m.mounts))
	for k, v := range m.mounts {
		result[k] = v
	}
	return result
}

// MountPaths returns all mount paths, longest first.
func (m *MountManager) MountPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]string, len(m.sortedPaths))
	copy(result, m.sortedPaths)
	return result
}

// resolve finds the owning storage and storage-relative path for a virtual
// path, using longest-prefix matching to honor nested mounts.
func (m *MountManager) resolve(virtualPath string) (*Storage, string, error) {
	virtualPath = normalizePath(virtualPath)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, mountPath := range m.sortedPaths {
		if virtualPath == mountPath || mountPath == "/" || strings.HasPrefix(virtualPath, mountPath+"/") {
			relative := strings.TrimPrefix(virtualPath, mountPath)
			return m.mounts[mountPath], normalizePath(relative), nil
		}
	}

	return nil, "", fmt.Errorf("%w: %s", ErrMountNotFound, virtualPath)
}

// FolderFromPath resolves a folder through the mount table. The returned
// handle is scoped to the owning storage; its Path is storage-relative.
func (m *MountManager) FolderFromPath(ctx context.Context, virtualPath string) (*Folder, error) {
	storage, relative, err := m.resolve(virtualPath)
	if err != nil {
		return nil, err
	}
	return storage.FolderFromPath(ctx, relative)
}

// FileFromPath resolves a file through the mount table.
func (m *MountManager) FileFromPath(ctx context.Context, virtualPath string) (*File, error) {
	storage, relative, err := m.resolve(virtualPath)
	if err != nil {
		return nil, err
	}
	return storage.FileFromPath(ctx, relative)
}

// Copy copies the file at srcPath to the folder and name given by dstPath,
// resolving collisions with policy. Cross-mount copies stream the bytes
// between backends.
func (m *MountManager) Copy(ctx context.Context, srcPath, dstPath string, policy CollisionPolicy) (*File, error) {
	src, err := m.FileFromPath(ctx, srcPath)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}

	dstFolder, dstName, err := m.destination(ctx, dstPath)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	return src.Copy(ctx, dstFolder, dstName, policy)
}

// Move moves the file at srcPath to the folder and name given by dstPath.
// Cross-mount moves fall back to copy-then-delete.
func (m *MountManager) Move(ctx context.Context, srcPath, dstPath string, policy CollisionPolicy) (*File, error) {
	src, err := m.FileFromPath(ctx, srcPath)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}

	dstFolder, dstName, err := m.destination(ctx, dstPath)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	if err := src.Move(ctx, dstFolder, dstName, policy); err != nil {
		return nil, err
	}
	return src, nil
}

// destination splits a virtual destination path into its parent folder and
// leaf name.
func (m *MountManager) destination(ctx context.Context, virtualPath string) (*Folder, string, error) {
	storage, relative, err := m.resolve(virtualPath)
	if err != nil {
		return nil, "", err
	}
	if relative == "/" {
		return nil, "", fmt.Errorf("%w: destination must name a file", ErrInvalidArgument)
	}
	folder, err := storage.FolderFromPath(ctx, ParentPath(relative))
	if err != nil {
		return nil, "", err
	}
	return folder, BaseName(relative), nil
}

// updateSortedPaths updates the sorted paths slice for longest-prefix
// matching. Must be called with lock held.
func (m *MountManager) updateSortedPaths() {
	paths := make([]string, 0, len(m.mounts))
	for p := range m.mounts {
		paths = append(paths, p)
	}
	// Sort by length descending for longest-prefix matching
	sort.Slice(paths, func(i, j int) bool {
		return len(paths[i]) > len(paths[j])
	})
	m.sortedPaths = paths
}
