package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobeaver/storagekit"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

func TestProbe(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	if err := os.WriteFile(filepath.Join(a.Root(), "file.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(a.Root(), "dir"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want storagekit.ExistenceState
	}{
		{"/file.txt", storagekit.FileExists},
		{"/dir", storagekit.FolderExists},
		{"/missing", storagekit.NotFound},
	}
	for _, tt := range tests {
		state, err := a.Probe(ctx, tt.path)
		if err != nil {
			t.Errorf("Probe(%s) failed: %v", tt.path, err)
			continue
		}
		if state != tt.want {
			t.Errorf("Probe(%s) = %v, want %v", tt.path, state, tt.want)
		}
	}
}

func TestCreateFile(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	if err := a.CreateFile(ctx, "/new.txt"); err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	t.Run("duplicate", func(t *testing.T) {
		err := a.CreateFile(ctx, "/new.txt")
		if !errors.Is(err, storagekit.ErrAlreadyExists) {
			t.Errorf("error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		err := a.CreateFile(ctx, "/nodir/new.txt")
		if !errors.Is(err, storagekit.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	if err := a.CreateFolder(ctx, "/docs"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if err := a.CreateFolder(ctx, "/docs"); !errors.Is(err, storagekit.ErrAlreadyExists) {
		t.Errorf("duplicate error = %v, want ErrAlreadyExists", err)
	}
	if err := a.CreateFolder(ctx, "/a/b/c"); !errors.Is(err, storagekit.ErrNotFound) {
		t.Errorf("missing parent error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	if err := a.CreateFolder(ctx, "/dir"); err != nil {
		t.Fatal(err)
	}
	if err := a.CreateFile(ctx, "/dir/file.txt"); err != nil {
		t.Fatal(err)
	}

	t.Run("file via deletefolder is refused", func(t *testing.T) {
		err := a.DeleteFolder(ctx, "/dir/file.txt")
		if !errors.Is(err, storagekit.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("folder via deletefile is refused", func(t *testing.T) {
		err := a.DeleteFile(ctx, "/dir")
		if !errors.Is(err, storagekit.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("folder deletes subtree", func(t *testing.T) {
		if err := a.DeleteFolder(ctx, "/dir"); err != nil {
			t.Fatalf("DeleteFolder failed: %v", err)
		}
		state, err := a.Probe(ctx, "/dir/file.txt")
		if err != nil {
			t.Fatal(err)
		}
		if state != storagekit.NotFound {
			t.Errorf("descendant survived folder deletion")
		}
	})
}

func TestOpenModes(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	t.Run("append creates and extends", func(t *testing.T) {
		for _, chunk := range []string{"one", "two"} {
			s, err := a.Open(ctx, "/log.txt", storagekit.Append)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if _, err := s.Write([]byte(chunk)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
		}

		s, err := a.Open(ctx, "/log.txt", storagekit.Read)
		if err != nil {
			t.Fatalf("Open(Read) failed: %v", err)
		}
		defer s.Close()
		data, err := io.ReadAll(s)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "onetwo" {
			t.Errorf("content = %q, want %q", data, "onetwo")
		}
	})

	t.Run("read missing file", func(t *testing.T) {
		_, err := a.Open(ctx, "/nope.txt", storagekit.Read)
		if !errors.Is(err, storagekit.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("open folder", func(t *testing.T) {
		if err := a.CreateFolder(ctx, "/d"); err != nil {
			t.Fatal(err)
		}
		_, err := a.Open(ctx, "/d", storagekit.Read)
		if !errors.Is(err, storagekit.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	if err := a.CreateFile(ctx, "/a.txt"); err != nil {
		t.Fatal(err)
	}

	if err := a.Move(ctx, "/a.txt", "/b.txt"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	state, err := a.Probe(ctx, "/b.txt")
	if err != nil {
		t.Fatal(err)
	}
	if state != storagekit.FileExists {
		t.Errorf("destination missing after move")
	}

	t.Run("occupied destination", func(t *testing.T) {
		if err := a.CreateFile(ctx, "/c.txt"); err != nil {
			t.Fatal(err)
		}
		err := a.Move(ctx, "/b.txt", "/c.txt")
		if !errors.Is(err, storagekit.ErrAlreadyExists) {
			t.Errorf("error = %v, want ErrAlreadyExists", err)
		}
	})
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	s, err := a.Open(ctx, "/src.txt", storagekit.Truncate)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write([]byte("payload")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if err := a.Copy(ctx, "/src.txt", "/dst.txt"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	props, err := a.Stat(ctx, "/dst.txt")
	if err != nil {
		t.Fatal(err)
	}
	if props.Size != int64(len("payload")) {
		t.Errorf("Size = %d, want %d", props.Size, len("payload"))
	}

	t.Run("folder source unsupported", func(t *testing.T) {
		if err := a.CreateFolder(ctx, "/dir"); err != nil {
			t.Fatal(err)
		}
		err := a.Copy(ctx, "/dir", "/dir2")
		if !errors.Is(err, storagekit.ErrNotSupported) {
			t.Errorf("error = %v, want ErrNotSupported", err)
		}
	})
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	if err := a.CreateFolder(ctx, "/docs"); err != nil {
		t.Fatal(err)
	}
	if err := a.CreateFolder(ctx, "/docs/sub"); err != nil {
		t.Fatal(err)
	}
	if err := a.CreateFile(ctx, "/docs/a.txt"); err != nil {
		t.Fatal(err)
	}

	files, err := a.ListFiles(ctx, "/docs")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != "a.txt" {
		t.Errorf("ListFiles = %v, want [a.txt]", files)
	}

	folders, err := a.ListFolders(ctx, "/docs")
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}
	if len(folders) != 1 || folders[0] != "sub" {
		t.Errorf("ListFolders = %v, want [sub]", folders)
	}
}

func TestPathEscape(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	err := a.CreateFile(ctx, "/../outside.txt")
	// filepath.Join collapses "..", so the file either lands inside the root
	// or the escape is refused; it must never appear above the root.
	if err == nil {
		if _, statErr := os.Stat(filepath.Join(filepath.Dir(a.Root()), "outside.txt")); statErr == nil {
			t.Fatalf("file escaped the adapter root")
		}
	}
}

func TestWithStorage(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)
	store := storagekit.NewStorage(a)
	root := store.Root()

	file, err := root.CreateFile(ctx, "report.txt", storagekit.GenerateUniqueName)
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	dup, err := root.CreateFile(ctx, "report.txt", storagekit.GenerateUniqueName)
	if err != nil {
		t.Fatalf("second CreateFile failed: %v", err)
	}

	if file.Name() != "report.txt" {
		t.Errorf("first name = %q, want %q", file.Name(), "report.txt")
	}
	if dup.Name() != "report.txt (2)" {
		t.Errorf("second name = %q, want %q", dup.Name(), "report.txt (2)")
	}
}
