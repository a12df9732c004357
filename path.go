package gitmv

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// normalizePath converts a user-supplied path into the canonical
// slash-separated, worktree-relative form used by index entries.
// "." is valid (the worktree root as a directory destination).
func normalizePath(raw string) (string, error) {
	if raw == "" {
		return "", WrapError(ErrUsage, "empty path")
	}

	p := path.Clean(filepath.ToSlash(raw))
	if p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return "", WrapErrorf(ErrUsage, "path %q is outside the worktree", raw)
	}

	return p, nil
}

// isPathWithin reports whether p equals dir or lies beneath it as a path
// component prefix. "a/bc" is not within "a/b".
func isPathWithin(p, dir string) bool {
	return p == dir || strings.HasPrefix(p, dir+"/")
}

// newPathSet creates an ordered set of paths.
func newPathSet() *treeset.Set {
	return treeset.NewWithStringComparator()
}

// pathSetStrings returns the set contents in ascending path order.
func pathSetStrings(s *treeset.Set) []string {
	out := make([]string, 0, s.Size())
	s.Each(func(_ int, v interface{}) {
		out = append(out, v.(string))
	})
	return out
}
