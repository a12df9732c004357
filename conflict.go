// Package gitmv provides a high-level move operation for git worktrees.
// This file validates planned operations against the conflict rules.
package gitmv

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// classify validates every planned operation in order against the index
// snapshot and the filesystem, building the overwritten set as it goes.
// Without ignore-errors the first violation aborts the invocation before
// any destructive step. With ignore-errors failing operations are dropped
// into res.Skipped and the relative order of the rest is preserved.
//
// Directory-rename operations were fully validated during planning and
// pass through unchecked.
func (r *Repo) classify(
	idx *index.Index,
	ops []moveOp,
	opts MoveOpts,
	res *MoveResult,
) ([]moveOp, *treeset.Set, error) {
	overwritten := newPathSet()
	claims := newPathSet()

	kept := make([]moveOp, 0, len(ops))

	for _, op := range ops {
		if op.mode == opDirRename {
			kept = append(kept, op)
			continue
		}

		if err := r.checkOp(idx, op, opts.Force, overwritten, claims); err != nil {
			if opts.IgnoreErrors {
				res.Skipped = append(res.Skipped, SkippedMove{
					Source:      op.src,
					Destination: op.dst,
					Reason:      err,
				})
				continue
			}
			return nil, nil, err
		}

		kept = append(kept, op)
	}

	return kept, overwritten, nil
}

// checkOp applies the per-operation rules in their canonical order:
// source existence, destination existence/overwrite, self-move, tracking,
// destination collision. Destinations are claimed on success.
func (r *Repo) checkOp(
	idx *index.Index,
	op moveOp,
	force bool,
	overwritten *treeset.Set,
	claims *treeset.Set,
) error {
	if _, err := r.wt.Lstat(op.src); err != nil {
		return WrapErrorf(ErrBadSource, "source=%q destination=%q", op.src, op.dst)
	}

	if fi, err := r.wt.Lstat(op.dst); err == nil {
		if !force {
			return WrapErrorf(ErrDestinationExists, "source=%q destination=%q", op.src, op.dst)
		}

		// Only files can overwrite each other.
		if !fi.Mode().IsRegular() {
			return WrapErrorf(ErrCannotOverwrite, "source=%q destination=%q", op.src, op.dst)
		}

		overwritten.Add(op.dst)
	}

	// Overwriting never permits moving a path into itself.
	if isPathWithin(op.dst, op.src) {
		return WrapErrorf(ErrSelfMove, "source=%q destination=%q", op.src, op.dst)
	}

	if _, err := idx.Entry(op.src); err != nil {
		return WrapErrorf(ErrNotTracked, "source=%q destination=%q", op.src, op.dst)
	}

	if claims.Contains(op.dst) {
		return WrapErrorf(ErrDestinationConflict, "source=%q destination=%q", op.src, op.dst)
	}
	claims.Add(op.dst)

	return nil
}
