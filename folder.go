package storagekit

import (
	"context"
)

// Folder is a handle to a folder within a Storage. It owns its own Path
// state and mutates it in place on Rename; it does not cache children or
// existence — every operation re-probes the backing store.
//
// A Folder is not safe for concurrent mutation of the same instance; only
// the operations on a given instance touch its path, and callers are
// expected to issue them from one goroutine at a time.
type Folder struct {
	storage   *Storage
	path      string
	protected bool
}

// Path returns the canonical path of the folder.
func (f *Folder) Path() string {
	return f.path
}

// Name returns the last path segment ("/" for a storage root).
func (f *Folder) Name() string {
	return BaseName(f.path)
}

// IsFolder implements Item.
func (f *Folder) IsFolder() bool {
	return true
}

// Equals reports whether other identifies the same entity: same storage,
// byte-identical path. Paths were normalized when set, so no normalization
// happens here.
func (f *Folder) Equals(other *Folder) bool {
	return other != nil && f.storage == other.storage && f.path == other.path
}

// CreateFile creates a file inside the folder, resolving name collisions
// according to policy. The folder itself must still exist. Under
// OpenIfExists an existing file with the desired name is returned untouched;
// a folder occupying the name fails with ErrAlreadyExists.
func (f *Folder) CreateFile(ctx context.Context, desiredName string, policy CollisionPolicy) (*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if desiredName == "" {
		return nil, &PathError{Op: "createfile", Path: f.path, Err: ErrInvalidName}
	}
	if err := f.mustExist(ctx, "createfile"); err != nil {
		return nil, err
	}

	res, err := resolveName(ctx, desiredName, policy, f.storage.childProbe(f.path), f.storage.childRemove(f.path))
	if err != nil {
		return nil, opError("createfile", Combine(f.path, desiredName), err)
	}

	childPath := Combine(f.path, res.name)
	if res.opened {
		if res.state != FileExists {
			return nil, &PathError{Op: "createfile", Path: childPath, Err: ErrAlreadyExists}
		}
		return &File{storage: f.storage, path: childPath}, nil
	}

	if err := f.storage.backend.CreateFile(ctx, childPath); err != nil {
		return nil, opError("createfile", childPath, err)
	}
	return &File{storage: f.storage, path: childPath}, nil
}

// CreateFolder creates a subfolder, resolving name collisions according to
// policy. ReplaceExisting recursively deletes an existing occupant first.
// Under OpenIfExists an existing folder is returned untouched; a file
// occupying the name fails with ErrAlreadyExists.
func (f *Folder) CreateFolder(ctx context.Context, desiredName string, policy CollisionPolicy) (*Folder, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if desiredName == "" {
		return nil, &PathError{Op: "createfolder", Path: f.path, Err: ErrInvalidName}
	}
	if err := f.mustExist(ctx, "createfolder"); err != nil {
		return nil, err
	}

	res, err := resolveName(ctx, desiredName, policy, f.storage.childProbe(f.path), f.storage.childRemove(f.path))
	if err != nil {
		return nil, opError("createfolder", Combine(f.path, desiredName), err)
	}

	childPath := Combine(f.path, res.name)
	if res.opened {
		if res.state != FolderExists {
			return nil, &PathError{Op: "createfolder", Path: childPath, Err: ErrAlreadyExists}
		}
		return &Folder{storage: f.storage, path: childPath}, nil
	}

	if err := f.storage.backend.CreateFolder(ctx, childPath); err != nil {
		return nil, opError("createfolder", childPath, err)
	}
	return &Folder{storage: f.storage, path: childPath}, nil
}

// GetFile returns the file with the given name. A folder with that name
// does not satisfy the lookup.
func (f *Folder) GetFile(ctx context.Context, name string) (*File, error) {
	if name == "" {
		return nil, &PathError{Op: "getfile", Path: f.path, Err: ErrInvalidName}
	}
	return f.storage.FileFromPath(ctx, Combine(f.path, name))
}

// GetFolder returns the subfolder with the given name. A file with that
// name does not satisfy the lookup.
func (f *Folder) GetFolder(ctx context.Context, name string) (*Folder, error) {
	if name == "" {
		return nil, &PathError{Op: "getfolder", Path: f.path, Err: ErrInvalidName}
	}
	return f.storage.FolderFromPath(ctx, Combine(f.path, name))
}

// Files returns the files directly inside the folder. The result is a
// point-in-time snapshot in backend-defined order; each call constructs
// fresh handles.
func (f *Folder) Files(ctx context.Context) ([]*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	names, err := f.storage.backend.ListFiles(ctx, f.path)
	if err != nil {
		return nil, opError("listfiles", f.path, err)
	}
	files := make([]*File, 0, len(names))
	for _, name := range names {
		files = append(files, &File{storage: f.storage, path: Combine(f.path, name)})
	}
	return files, nil
}

// Folders returns the subfolders directly inside the folder, as a
// point-in-time snapshot in backend-defined order.
func (f *Folder) Folders(ctx context.Context) ([]*Folder, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	names, err := f.storage.backend.ListFolders(ctx, f.path)
	if err != nil {
		return nil, opError("listfolders", f.path, err)
	}
	folders := make([]*Folder, 0, len(names))
	for _, name := range names {
		folders = append(folders, &Folder{storage: f.storage, path: Combine(f.path, name)})
	}
	return folders, nil
}

// Items returns the folder's children, folders first, then files.
func (f *Folder) Items(ctx context.Context) ([]Item, error) {
	folders, err := f.Folders(ctx)
	if err != nil {
		return nil, err
	}
	files, err := f.Files(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(folders)+len(files))
	for _, folder := range folders {
		items = append(items, folder)
	}
	for _, file := range files {
		items = append(items, file)
	}
	return items, nil
}

// CheckExists probes the child with the given name: a single existence
// check, no mutation.
func (f *Folder) CheckExists(ctx context.Context, name string) (ExistenceState, error) {
	select {
	case <-ctx.Done():
		return NotFound, ctx.Err()
	default:
	}

	if name == "" {
		return NotFound, &PathError{Op: "checkexists", Path: f.path, Err: ErrInvalidName}
	}
	state, err := f.storage.backend.Probe(ctx, Combine(f.path, name))
	if err != nil {
		return NotFound, opError("checkexists", Combine(f.path, name), err)
	}
	return state, nil
}

// Delete removes the folder and all of its contents. Storage roots are
// protected and refuse deletion.
func (f *Folder) Delete(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if f.protected {
		return &PathError{Op: "delete", Path: f.path, Err: ErrProtectedRoot}
	}
	if err := f.mustExist(ctx, "delete"); err != nil {
		return err
	}
	if err := f.storage.backend.DeleteFolder(ctx, f.path); err != nil {
		return opError("delete", f.path, err)
	}
	return nil
}

// Rename moves the folder within its parent, resolving collisions on the
// new name according to policy. On success the receiver is mutated in
// place: its Path and Name reflect the final resolved name. OpenIfExists
// is valid for creation only.
func (f *Folder) Rename(ctx context.Context, newName string, policy CollisionPolicy) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if f.protected {
		return &PathError{Op: "rename", Path: f.path, Err: ErrProtectedRoot}
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

// Parent returns the containing folder, resolved through the storage root
// lookup. The storage root has no parent and returns nil.
func (f *Folder) Parent(ctx context.Context) (*Folder, error) {
	if f.path == "/" {
		return nil, nil
	}
	return f.storage.FolderFromPath(ctx, ParentPath(f.path))
}

// Properties returns a point-in-time snapshot of the folder's metadata.
func (f *Folder) Properties(ctx context.Context) (BasicProperties, error) {
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

// mustExist verifies the folder is still present in the backing store.
func (f *Folder) mustExist(ctx context.Context, op string) error {
	state, err := f.storage.backend.Probe(ctx, f.path)
	if err != nil {
		return opError(op, f.path, err)
	}
	if state != FolderExists {
		return &PathError{Op: op, Path: f.path, Err: ErrNotFound}
	}
	return nil
}

var _ Item = (*Folder)(nil)
