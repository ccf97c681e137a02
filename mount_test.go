package storagekit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gobeaver/storagekit"
	"github.com/gobeaver/storagekit/driver/memory"
)

func TestMountManager(t *testing.T) {
	ctx := context.Background()

	t.Run("mount and resolve", func(t *testing.T) {
		m := storagekit.NewMountManager()
		store := newTestStorage()
		if err := m.Mount("/data", store); err != nil {
			t.Fatalf("Mount failed: %v", err)
		}

		if _, err := store.Root().CreateFile(ctx, "a.txt", storagekit.FailIfExists); err != nil {
			t.Fatal(err)
		}

		file, err := m.FileFromPath(ctx, "/data/a.txt")
		if err != nil {
			t.Fatalf("FileFromPath failed: %v", err)
		}
		// The handle is scoped to the owning storage
		if file.Path() != "/a.txt" {
			t.Errorf("Path = %q, want /a.txt", file.Path())
		}
	})

	t.Run("duplicate mount", func(t *testing.T) {
		m := storagekit.NewMountManager()
		if err := m.Mount("/data", newTestStorage()); err != nil {
			t.Fatal(err)
		}
		if err := m.Mount("/data", newTestStorage()); !errors.Is(err, storagekit.ErrMountExists) {
			t.Errorf("error = %v, want ErrMountExists", err)
		}
	})

	t.Run("nil storage", func(t *testing.T) {
		m := storagekit.NewMountManager()
		if err := m.Mount("/data", nil); !errors.Is(err, storagekit.ErrNilStorage) {
			t.Errorf("error = %v, want ErrNilStorage", err)
		}
	})

	t.Run("unmount", func(t *testing.T) {
		m := storagekit.NewMountManager()
		if err := m.Mount("/data", newTestStorage()); err != nil {
			t.Fatal(err)
		}
		if err := m.Unmount("/data"); err != nil {
			t.Fatalf("Unmount failed: %v", err)
		}
		if err := m.Unmount("/data"); !errors.Is(err, storagekit.ErrMountNotFound) {
			t.Errorf("second unmount error = %v, want ErrMountNotFound", err)
		}
		if _, err := m.FileFromPath(ctx, "/data/a.txt"); !errors.Is(err, storagekit.ErrMountNotFound) {
			t.Errorf("resolve error = %v, want ErrMountNotFound", err)
		}
	})

	t.Run("longest prefix wins", func(t *testing.T) {
		m := storagekit.NewMountManager()
		outer := newTestStorage()
		inner := newTestStorage()
		if err := m.Mount("/data", outer); err != nil {
			t.Fatal(err)
		}
		if err := m.Mount("/data/cache", inner); err != nil {
			t.Fatal(err)
		}

		if _, err := inner.Root().CreateFile(ctx, "hit.txt", storagekit.FailIfExists); err != nil {
			t.Fatal(err)
		}

		file, err := m.FileFromPath(ctx, "/data/cache/hit.txt")
		if err != nil {
			t.Fatalf("FileFromPath failed: %v", err)
		}
		if file.Path() != "/hit.txt" {
			t.Errorf("Path = %q, want /hit.txt (resolved against inner mount)", file.Path())
		}
	})

	t.Run("copy across mounts", func(t *testing.T) {
		m := storagekit.NewMountManager()
		src := storagekit.NewStorage(memory.New())
		dst := storagekit.NewStorage(memory.New())
		if err := m.Mount("/src", src); err != nil {
			t.Fatal(err)
		}
		if err := m.Mount("/dst", dst); err != nil {
			t.Fatal(err)
		}

		file, err := src.Root().CreateFile(ctx, "a.txt", storagekit.FailIfExists)
		if err != nil {
			t.Fatal(err)
		}
		if err := file.WriteAllBytes(ctx, []byte("cross-mount")); err != nil {
			t.Fatal(err)
		}

		dup, err := m.Copy(ctx, "/src/a.txt", "/dst/a.txt", storagekit.FailIfExists)
		if err != nil {
			t.Fatalf("Copy failed: %v", err)
		}
		text, err := dup.ReadAllText(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if text != "cross-mount" {
			t.Errorf("content = %q, want %q", text, "cross-mount")
		}

		// The source survives a copy
		if _, err := m.FileFromPath(ctx, "/src/a.txt"); err != nil {
			t.Errorf("source lookup after copy failed: %v", err)
		}
	})

	t.Run("move across mounts", func(t *testing.T) {
		m := storagekit.NewMountManager()
		src := storagekit.NewStorage(memory.New())
		dst := storagekit.NewStorage(memory.New())
		if err := m.Mount("/src", src); err != nil {
			t.Fatal(err)
		}
		if err := m.Mount("/dst", dst); err != nil {
			t.Fatal(err)
		}

		file, err := src.Root().CreateFile(ctx, "a.txt", storagekit.FailIfExists)
		if err != nil {
			t.Fatal(err)
		}
		if err := file.WriteAllBytes(ctx, []byte("moved")); err != nil {
			t.Fatal(err)
		}

		moved, err := m.Move(ctx, "/src/a.txt", "/dst/b.txt", storagekit.FailIfExists)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if moved.Path() != "/b.txt" {
			t.Errorf("Path = %q, want /b.txt", moved.Path())
		}
		if _, err := m.FileFromPath(ctx, "/src/a.txt"); !storagekit.IsNotFound(err) {
			t.Errorf("source lookup after move = %v, want ErrNotFound", err)
		}
	})

	t.Run("mount paths sorted longest first", func(t *testing.T) {
		m := storagekit.NewMountManager()
		for _, p := range []string{"/a", "/a/b/c", "/a/b"} {
			if err := m.Mount(p, newTestStorage()); err != nil {
				t.Fatal(err)
			}
		}
		paths := m.MountPaths()
		if len(paths) != 3 || paths[0] != "/a/b/c" || paths[2] != "/a" {
			t.Errorf("MountPaths = %v, want longest first", paths)
		}
	})
}
