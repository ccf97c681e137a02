package storagekit_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/gobeaver/storagekit"
)

func TestGlob(t *testing.T) {
	ctx := context.Background()
	root := newTestStorage().Root()

	// /a.txt, /b.log, /sub/c.txt, /sub/deep/d.txt
	for _, name := range []string{"a.txt", "b.log"} {
		if _, err := root.CreateFile(ctx, name, storagekit.FailIfExists); err != nil {
			t.Fatal(err)
		}
	}
	sub, err := root.CreateFolder(ctx, "sub", storagekit.FailIfExists)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sub.CreateFile(ctx, "c.txt", storagekit.FailIfExists); err != nil {
		t.Fatal(err)
	}
	deep, err := sub.CreateFolder(ctx, "deep", storagekit.FailIfExists)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := deep.CreateFile(ctx, "d.txt", storagekit.FailIfExists); err != nil {
		t.Fatal(err)
	}

	paths := func(files []*storagekit.File) []string {
		var out []string
		for _, f := range files {
			out = append(out, f.Path())
		}
		sort.Strings(out)
		return out
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"*.txt", []string{"/a.txt"}},
		{"sub/*.txt", []string{"/sub/c.txt"}},
		{"**.txt", []string{"/a.txt", "/sub/c.txt", "/sub/deep/d.txt"}},
		{"**", []string{"/a.txt", "/b.log", "/sub/c.txt", "/sub/deep/d.txt"}},
		{"*.pdf", nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			matches, err := root.Glob(ctx, tt.pattern)
			if err != nil {
				t.Fatalf("Glob failed: %v", err)
			}
			got := paths(matches)
			if len(got) != len(tt.want) {
				t.Fatalf("matches = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("matches = %v, want %v", got, tt.want)
				}
			}
		})
	}

	t.Run("relative to the folder", func(t *testing.T) {
		matches, err := sub.Glob(ctx, "*.txt")
		if err != nil {
			t.Fatalf("Glob failed: %v", err)
		}
		if len(matches) != 1 || matches[0].Path() != "/sub/c.txt" {
			t.Errorf("matches = %v, want [/sub/c.txt]", paths(matches))
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		if _, err := root.Glob(ctx, "[unclosed"); err == nil {
			t.Error("expected error for malformed pattern")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := root.Glob(cctx, "*.txt"); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}
