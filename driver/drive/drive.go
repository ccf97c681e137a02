package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/gobeaver/storagekit"
)

const (
	mimeTypeFolder          = "application/vnd.google-apps.folder"
	mimeTypePrefixGoogleApp = "application/vnd.google-apps."

	fileFields  = "id,name,mimeType,size,modifiedTime"
	filesFields = "nextPageToken,files(id,name,mimeType,size,modifiedTime)"
)

// Adapter provides a Google Drive implementation of storagekit.Backend.
// Drive addresses entities by opaque ID; the adapter resolves slash-separated
// paths to IDs by walking name-in-parent queries segment by segment, so every
// operation costs one Drive query per path segment.
type Adapter struct {
	service *drive.Service
	rootID  string
}

// New creates a Drive adapter rooted at the folder with the given ID.
func New(service *drive.Service, rootID string) *Adapter {
	return &Adapter{service: service, rootID: rootID}
}

// Probe implements storagekit.Backend
func (a *Adapter) Probe(ctx context.Context, p string) (storagekit.ExistenceState, error) {
	f, found, err := a.resolve(ctx, p)
	if err != nil {
		return storagekit.NotFound, &storagekit.PathError{Op: "probe", Path: p, Err: err}
	}
	if !found {
		return storagekit.NotFound, nil
	}
	if f.MimeType == mimeTypeFolder {
		return storagekit.FolderExists, nil
	}
	return storagekit.FileExists, nil
}

// CreateFile implements storagekit.Backend
func (a *Adapter) CreateFile(ctx context.Context, p string) error {
	parentID, err := a.prepareCreate(ctx, "createfile", p)
	if err != nil {
		return err
	}

	_, err = a.service.Files.Create(&drive.File{
		Name:    path.Base(p),
		Parents: []string{parentID},
	}).
		SupportsAllDrives(true).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return &storagekit.PathError{Op: "createfile", Path: p, Err: driveError(err)}
	}
	return nil
}

// CreateFolder implements storagekit.Backend
func (a *Adapter) CreateFolder(ctx context.Context, p string) error {
	parentID, err := a.prepareCreate(ctx, "createfolder", p)
	if err != nil {
		return err
	}

	_, err = a.service.Files.Create(&drive.File{
		Name:     path.Base(p),
		MimeType: mimeTypeFolder,
		Parents:  []string{parentID},
	}).
		SupportsAllDrives(true).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		return &storagekit.PathError{Op: "createfolder", Path: p, Err: driveError(err)}
	}
	return nil
}

// prepareCreate resolves the parent folder of p and verifies p itself is
// free. Drive happily stores several entities with the same name in one
// folder; the duplicate check keeps path addressing unambiguous.
func (a *Adapter) prepareCreate(ctx context.Context, op, p string) (string, error) {
	parent, found, err := a.resolve(ctx, path.Dir(p))
	if err != nil {
		return "", &storagekit.PathError{Op: op, Path: p, Err: err}
	}
	if !found || parent.MimeType != mimeTypeFolder {
		return "", &storagekit.PathError{Op: op, Path: p, Err: storagekit.ErrNotFound}
	}

	existing, err := a.findByNameIn(ctx, parent.Id, path.Base(p))
	if err != nil {
		return "", &storagekit.PathError{Op: op, Path: p, Err: err}
	}
	if len(existing) > 0 {
		return "", &storagekit.PathError{Op: op, Path: p, Err: storagekit.ErrAlreadyExists}
	}
	return parent.Id, nil
}

// DeleteFile implements storagekit.Backend. Files are deleted permanently,
// not trashed, so that a subsequent create under the same name does not
// collide with a trashed namesake.
func (a *Adapter) DeleteFile(ctx context.Context, p string) error {
	return a.delete(ctx, "deletefile", p, false)
}

// DeleteFolder implements storagekit.Backend. Drive removes the whole
// subtree with the folder.
func (a *Adapter) DeleteFolder(ctx context.Context, p string) error {
	return a.delete(ctx, "deletefolder", p, true)
}

func (a *Adapter) delete(ctx context.Context, op, p string, wantFolder bool) error {
	f, found, err := a.resolve(ctx, p)
	if err != nil {
		return &storagekit.PathError{Op: op, Path: p, Err: err}
	}
	if !found || (f.MimeType == mimeTypeFolder) != wantFolder {
		return &storagekit.PathError{Op: op, Path: p, Err: storagekit.ErrNotFound}
	}

	if err := a.service.Files.Delete(f.Id).
		SupportsAllDrives(true).
		Context(ctx).
		Do(); err != nil {
		return &storagekit.PathError{Op: op, Path: p, Err: driveError(err)}
	}
	return nil
}

// ListFiles implements storagekit.Backend
func (a *Adapter) ListFiles(ctx context.Context, p string) ([]string, error) {
	return a.list(ctx, "listfiles", p, false)
}

// ListFolders implements storagekit.Backend
func (a *Adapter) ListFolders(ctx context.Context, p string) ([]string, error) {
	return a.list(ctx, "listfolders", p, true)
}

func (a *Adapter) list(ctx context.Context, op, p string, wantFolders bool) ([]string, error) {
	f, found, err := a.resolve(ctx, p)
	if err != nil {
		return nil, &storagekit.PathError{Op: op, Path: p, Err: err}
	}
	if !found || f.MimeType != mimeTypeFolder {
		return nil, &storagekit.PathError{Op: op, Path: p, Err: storagekit.ErrNotFound}
	}

	q := fmt.Sprintf("'%s' in parents and trashed = false", f.Id)
	if wantFolders {
		q += fmt.Sprintf(" and mimeType = '%s'", mimeTypeFolder)
	} else {
		q += fmt.Sprintf(" and mimeType != '%s'", mimeTypeFolder)
	}

	var names []string
	err = a.service.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(q).
		Fields(filesFields).
		Pages(ctx, func(list *drive.FileList) error {
			for _, child := range list.Files {
				names = append(names, child.Name)
			}
			return nil
		})
	if err != nil {
		return nil, &storagekit.PathError{Op: op, Path: p, Err: driveError(err)}
	}
	return names, nil
}

// Move implements storagekit.Backend. A move is a single Files.Update that
// renames and reparents in one call; Drive keeps the entity's ID, so a moved
// folder implicitly carries its subtree.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	f, found, err := a.resolve(ctx, src)
	if err != nil {
		return &storagekit.PathError{Op: "move", Path: src, Err: err}
	}
	if !found {
		return &storagekit.PathError{Op: "move", Path: src, Err: storagekit.ErrNotFound}
	}

	newParentID, err := a.prepareCreate(ctx, "move", dst)
	if err != nil {
		return err
	}

	oldParent, _, err := a.resolve(ctx, path.Dir(src))
	if err != nil {
		return &storagekit.PathError{Op: "move", Path: src, Err: err}
	}

	call := a.service.Files.Update(f.Id, &drive.File{Name: path.Base(dst)}).
		SupportsAllDrives(true).
		Context(ctx)
	if oldParent.Id != newParentID {
		call = call.RemoveParents(oldParent.Id).AddParents(newParentID)
	}
	if _, err := call.Do(); err != nil {
		return &storagekit.PathError{Op: "move", Path: src, Err: driveError(err)}
	}
	return nil
}

// Copy implements storagekit.Backend for files via the native Files.Copy.
// Drive has no server-side folder copy.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	f, found, err := a.resolve(ctx, src)
	if err != nil {
		return &storagekit.PathError{Op: "copy", Path: src, Err: err}
	}
	if !found {
		return &storagekit.PathError{Op: "copy", Path: src, Err: storagekit.ErrNotFound}
	}
	if f.MimeType == mimeTypeFolder {
		return &storagekit.PathError{Op: "copy", Path: src, Err: storagekit.ErrNotSupported}
	}

	newParentID, err := a.prepareCreate(ctx, "copy", dst)
	if err != nil {
		return err
	}

	_, err = a.service.Files.Copy(f.Id, &drive.File{
		Name:    path.Base(dst),
		Parents: []string{newParentID},
	}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return &storagekit.PathError{Op: "copy", Path: dst, Err: driveError(err)}
	}
	return nil
}

// Open implements storagekit.Backend. Contents are buffered in memory:
// reads download the whole file up front, writable streams upload the buffer
// on Close with a single Files.Update.
func (a *Adapter) Open(ctx context.Context, p string, mode storagekit.AccessMode) (storagekit.Stream, error) {
	f, found, err := a.resolve(ctx, p)
	if err != nil {
		return nil, &storagekit.PathError{Op: "open", Path: p, Err: err}
	}
	if found && f.MimeType == mimeTypeFolder {
		return nil, &storagekit.PathError{Op: "open", Path: p, Err: storagekit.ErrNotFound}
	}

	switch mode {
	case storagekit.Read, storagekit.ReadWrite:
		if !found {
			return nil, &storagekit.PathError{Op: "open", Path: p, Err: storagekit.ErrNotFound}
		}
	case storagekit.Append, storagekit.Truncate:
		if !found {
			// Materialize an empty file so the stream has an ID to upload to
			parentID, err := a.prepareCreate(ctx, "open", p)
			if err != nil {
				return nil, err
			}
			f, err = a.service.Files.Create(&drive.File{
				Name:    path.Base(p),
				Parents: []string{parentID},
			}).
				SupportsAllDrives(true).
				Fields(fileFields).
				Context(ctx).
				Do()
			if err != nil {
				return nil, &storagekit.PathError{Op: "open", Path: p, Err: driveError(err)}
			}
		}
	default:
		return nil, &storagekit.PathError{Op: "open", Path: p, Err: storagekit.ErrInvalidArgument}
	}

	var data []byte
	if mode != storagekit.Truncate && f.Size > 0 {
		data, err = a.download(ctx, f)
		if err != nil {
			return nil, &storagekit.PathError{Op: "open", Path: p, Err: err}
		}
	}

	s := &driveStream{
		adapter:  a,
		ctx:      ctx,
		fileID:   f.Id,
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
	f, found, err := a.resolve(ctx, p)
	if err != nil {
		return storagekit.BasicProperties{}, &storagekit.PathError{Op: "stat", Path: p, Err: err}
	}
	if !found {
		return storagekit.BasicProperties{}, &storagekit.PathError{Op: "stat", Path: p, Err: storagekit.ErrNotFound}
	}

	modTime, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	size := f.Size
	if f.MimeType == mimeTypeFolder {
		size = 0
	}
	return storagekit.BasicProperties{ModTime: modTime, Size: size}, nil
}

// resolve walks the path from the root folder, one name-in-parent query per
// segment.
func (a *Adapter) resolve(ctx context.Context, p string) (*drive.File, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}

	current, found, err := a.findByID(ctx, a.rootID)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, fmt.Errorf("root folder %s: %w", a.rootID, storagekit.ErrNotFound)
	}

	for _, segment := range splitPath(p) {
		matches, err := a.findByNameIn(ctx, current.Id, segment)
		if err != nil {
			return nil, false, err
		}
		if len(matches) == 0 {
			return nil, false, nil
		}
		// Drive allows same-name siblings; take the first match to keep
		// path addressing deterministic enough to be usable
		current = matches[0]
	}
	return current, true, nil
}

func (a *Adapter) findByID(ctx context.Context, id string) (*drive.File, bool, error) {
	f, err := a.service.Files.Get(id).
		SupportsAllDrives(true).
		Fields(fileFields).
		Context(ctx).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == 404 {
			return nil, false, nil
		}
		return nil, false, driveError(err)
	}
	return f, true, nil
}

func (a *Adapter) findByNameIn(ctx context.Context, parentID, name string) ([]*drive.File, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQuery(name), parentID)

	var matches []*drive.File
	err := a.service.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(q).
		Fields(filesFields).
		Pages(ctx, func(list *drive.FileList) error {
			matches = append(matches, list.Files...)
			return nil
		})
	if err != nil {
		return nil, driveError(err)
	}
	return matches, nil
}

func (a *Adapter) download(ctx context.Context, f *drive.File) ([]byte, error) {
	if strings.HasPrefix(f.MimeType, mimeTypePrefixGoogleApp) {
		return nil, storagekit.ErrNotSupported
	}

	resp, err := a.service.Files.Get(f.Id).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, driveError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, storagekit.BackendFailure(err)
	}
	return data, nil
}

func (a *Adapter) upload(ctx context.Context, fileID string, data []byte) error {
	_, err := a.service.Files.Update(fileID, &drive.File{}).
		SupportsAllDrives(true).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	if err != nil {
		return driveError(err)
	}
	return nil
}

// splitPath breaks a slash-separated path into segments, skipping empties so
// "/" resolves to the root itself.
func splitPath(p string) []string {
	var parts []string
	for _, segment := range strings.Split(p, "/") {
		if segment != "" {
			parts = append(parts, segment)
		}
	}
	return parts
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

// driveError translates a Drive API error into the shared error taxonomy.
func driveError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case 404:
			return storagekit.ErrNotFound
		case 409:
			return storagekit.ErrAlreadyExists
		}
	}
	return storagekit.BackendFailure(err)
}

// driveStream buffers a Drive file's contents in memory. Writable streams
// upload the buffer in one Files.Update when closed.
type driveStream struct {
	adapter  *Adapter
	ctx      context.Context
	fileID   string
	path     string
	data     []byte
	off      int
	writable bool
	closed   bool
}

func (s *driveStream) Read(p []byte) (int, error) {
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

func (s *driveStream) Write(p []byte) (int, error) {
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

func (s *driveStream) Seek(offset int64, whence int) (int64, error) {
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

func (s *driveStream) Close() error {
	if s.closed {
		return storagekit.ErrClosed
	}
	s.closed = true
	if !s.writable {
		return nil
	}
	if err := s.adapter.upload(s.ctx, s.fileID, s.data); err != nil {
		return &storagekit.PathError{Op: "close", Path: s.path, Err: err}
	}
	return nil
}

// Ensure Adapter implements the backend contract
var _ storagekit.Backend = (*Adapter)(nil)
