package storagekit

import (
	"context"
	"strings"

	"github.com/gobwas/glob"
)

// Glob returns the files beneath the folder (recursively) whose path
// relative to the folder matches pattern. Patterns use gobwas/glob syntax
// with '/' as separator: "*.txt" matches direct children only, "**.txt"
// matches any depth.
//
// The result is a point-in-time snapshot assembled from per-folder
// listings; entries created or removed mid-walk may or may not appear.
func (f *Folder) Glob(ctx context.Context, pattern string) ([]*File, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, &PathError{Op: "glob", Path: f.path, Err: err}
	}

	var matches []*File
	if err := f.globWalk(ctx, f, g, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (f *Folder) globWalk(ctx context.Context, dir *Folder, g glob.Glob, matches *[]*File) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	files, err := dir.Files(ctx)
	if err != nil {
		return err
	}
	for _, file := range files {
		if g.Match(f.relativePath(file.Path())) {
			*matches = append(*matches, file)
		}
	}

	folders, err := dir.Folders(ctx)
	if err != nil {
		return err
	}
	for _, folder := range folders {
		if err := f.globWalk(ctx, folder, g, matches); err != nil {
			return err
		}
	}
	return nil
}

// relativePath strips the folder's own path prefix from a descendant path.
func (f *Folder) relativePath(p string) string {
	rel := strings.TrimPrefix(p, f.path)
	return strings.TrimPrefix(rel, "/")
}
