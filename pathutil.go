package storagekit

import (
	"path"
	"strings"
)

// Paths within a storage are slash-separated and rooted at "/". Two items
// are the same entity iff their paths compare equal as strings; all
// normalization happens when a path is set, never at comparison time.

// Combine joins base and leaf into a canonical child path. Redundant
// trailing separators on base and leading separators on leaf are stripped;
// adjacent separators collapse. Combine performs no existence checks.
func Combine(base, leaf string) string {
	if base == "" {
		base = "/"
	}
	return path.Join("/", base, leaf)
}

// BaseName returns the last segment of p ("/" for the root).
func BaseName(p string) string {
	return path.Base(normalizePath(p))
}

// ParentPath returns the path of p's parent folder. The root is its own
// parent.
func ParentPath(p string) string {
	return path.Dir(normalizePath(p))
}

// normalizePath ensures the path starts with "/" and has no trailing slash.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = path.Clean(p)
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
