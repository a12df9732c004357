// Package gitmv provides a high-level move operation for git worktrees.
// This file expands user-supplied arguments into per-path move operations.
package gitmv

import (
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// opMode describes how a single move operation touches the worktree and
// the index. A directory source produces one opDirRename for the physical
// rename plus one opIndexOnly per tracked entry beneath it, so the whole
// subtree moves with a single filesystem rename.
type opMode int8

const (
	// opFile renames the path on disk and updates its index entry.
	opFile opMode = iota

	// opDirRename renames a directory on disk. The directory itself has no
	// index entry; its children carry the index updates.
	opDirRename

	// opIndexOnly updates the index entry only. The physical relocation
	// already happened through the parent directory's rename.
	opIndexOnly
)

// String returns a human-readable string representation of the opMode.
func (m opMode) String() string {
	switch m {
	case opFile:
		return "file"
	case opDirRename:
		return "directory-rename"
	case opIndexOnly:
		return "index-only"
	default:
		return "unknown"
	}
}

// moveOp is a single planned move of one path.
type moveOp struct {
	src  string
	dst  string
	mode opMode
}

// planMoves expands the raw source list and destination into a flat,
// ordered operation list. The destination may be an existing directory
// (each source lands at <dest>/<basename>) or, for exactly one source, a
// brand-new path. Directory sources are expanded against the index
// snapshot. Planner failures are fatal regardless of ignore-errors.
func (r *Repo) planMoves(idx *index.Index, sources []string, dest string) ([]moveOp, error) {
	dest, err := normalizePath(dest)
	if err != nil {
		return nil, err
	}

	destIsDir := false
	if fi, statErr := r.wt.Lstat(dest); statErr == nil && fi.IsDir() {
		destIsDir = true
	}

	if !destIsDir && len(sources) != 1 {
		return nil, WrapError(ErrUsage, "moving multiple sources requires an existing directory destination")
	}

	ops := make([]moveOp, 0, len(sources))

	for _, raw := range sources {
		src, err := normalizePath(raw)
		if err != nil {
			return nil, err
		}

		dst := dest
		if destIsDir {
			dst = path.Join(dest, path.Base(src))
		}

		if fi, statErr := r.wt.Lstat(src); statErr == nil && fi.IsDir() {
			expanded, expErr := r.expandDirectory(idx, src, dst)
			if expErr != nil {
				return nil, expErr
			}
			ops = append(ops, expanded...)
			continue
		}

		// Missing sources stay in the list; the classifier reports them
		// so that ignore-errors can drop them individually.
		ops = append(ops, moveOp{src: src, dst: dst, mode: opFile})
	}

	return ops, nil
}

// expandDirectory replaces a directory source with one rename of the
// directory itself plus one index-only operation per tracked entry
// beneath it, rewriting each entry path onto the new prefix.
func (r *Repo) expandDirectory(idx *index.Index, src, dst string) ([]moveOp, error) {
	if isPathWithin(dst, src) {
		return nil, WrapErrorf(ErrSelfMove, "source=%q destination=%q", src, dst)
	}

	if _, err := r.wt.Lstat(dst); err == nil {
		return nil, WrapErrorf(ErrDirOverFile, "source=%q destination=%q", src, dst)
	}

	prefix := src + "/"

	var children []*index.Entry
	for _, e := range idx.Entries {
		if strings.HasPrefix(e.Name, prefix) {
			children = append(children, e)
		}
	}

	if len(children) == 0 {
		return nil, WrapErrorf(ErrSourceDirEmpty, "source=%q destination=%q", src, dst)
	}

	ops := make([]moveOp, 0, len(children)+1)
	ops = append(ops, moveOp{src: src, dst: dst, mode: opDirRename})

	for _, e := range children {
		ops = append(ops, moveOp{
			src:  e.Name,
			dst:  dst + "/" + e.Name[len(prefix):],
			mode: opIndexOnly,
		})
	}

	return ops, nil
}
