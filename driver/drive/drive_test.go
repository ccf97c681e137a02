package drive

import (
	"errors"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/gobeaver/storagekit"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"/a", []string{"a"}},
		{"/a/b/c", []string{"a", "b", "c"}},
		{"/a//b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitPath(tt.path)
		if len(got) != len(tt.want) {
			t.Errorf("splitPath(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitPath(%q) = %v, want %v", tt.path, got, tt.want)
				break
			}
		}
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"it's", `it\'s`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeQuery(tt.in); got != tt.want {
			t.Errorf("escapeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDriveError(t *testing.T) {
	t.Run("404 maps to not found", func(t *testing.T) {
		err := driveError(&googleapi.Error{Code: 404})
		if !errors.Is(err, storagekit.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("409 maps to already exists", func(t *testing.T) {
		err := driveError(&googleapi.Error{Code: 409})
		if !errors.Is(err, storagekit.ErrAlreadyExists) {
			t.Errorf("error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("other errors become backend failures", func(t *testing.T) {
		err := driveError(&googleapi.Error{Code: 500})
		if !errors.Is(err, storagekit.ErrBackend) {
			t.Errorf("error = %v, want ErrBackend", err)
		}
	})
}
