package storagekit

import "testing"

func TestCombine(t *testing.T) {
	tests := []struct {
		base string
		leaf string
		want string
	}{
		{"/", "a.txt", "/a.txt"},
		{"/docs", "a.txt", "/docs/a.txt"},
		{"/docs/", "a.txt", "/docs/a.txt"},
		{"/docs", "/a.txt", "/docs/a.txt"},
		{"/docs//", "//a.txt", "/docs/a.txt"},
		{"", "a.txt", "/a.txt"},
		{"/docs", "", "/docs"},
	}
	for _, tt := range tests {
		if got := Combine(tt.base, tt.leaf); got != tt.want {
			t.Errorf("Combine(%q, %q) = %q, want %q", tt.base, tt.leaf, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a.txt", "a.txt"},
		{"/docs/a.txt", "a.txt"},
		{"/docs/sub/", "sub"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.path); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/docs/a.txt", "/docs"},
		{"/a.txt", "/"},
		{"/", "/"},
		{"/docs/sub/", "/docs"},
	}
	for _, tt := range tests {
		if got := ParentPath(tt.path); got != tt.want {
			t.Errorf("ParentPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"docs", "/docs"},
		{"/docs/", "/docs"},
		{"/docs//sub", "/docs/sub"},
		{"/docs/./sub", "/docs/sub"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
