// Package gitmv provides a high-level move operation for git worktrees.
// This file orchestrates planning, classification, execution and commit.
package gitmv

import (
	"context"
)

// MoveOpts configures a single move invocation.
type MoveOpts struct {
	// DryRun computes and reports the full operation set without mutating
	// the filesystem or the index.
	DryRun bool

	// Force permits overwriting existing regular-file destinations.
	Force bool

	// IgnoreErrors drops individually invalid operations instead of
	// aborting the whole invocation.
	IgnoreErrors bool
}

// Rename is one accepted source/destination pair, in execution order.
type Rename struct {
	From string
	To   string
}

// SkippedMove records an operation dropped under IgnoreErrors together
// with the rule it violated.
type SkippedMove struct {
	Source      string
	Destination string
	Reason      error
}

// RenameFailure records a filesystem rename that failed under
// IgnoreErrors. The index updates for the pair were still applied, so the
// worktree and the index disagree about this path until reconciled.
type RenameFailure struct {
	Source      string
	Destination string
	Err         error
}

// MoveResult reports the net effect of a move invocation.
type MoveResult struct {
	// Renames lists every accepted operation in execution order.
	Renames []Rename

	// Added, Deleted and Changed are the index buckets, each ordered by
	// path. Changed holds refreshed overwrite targets.
	Added   []string
	Deleted []string
	Changed []string

	// Overwritten lists destinations that were permitted overwrite
	// targets, ordered by path.
	Overwritten []string

	// Skipped lists operations dropped under IgnoreErrors.
	Skipped []SkippedMove

	// Failed lists renames that failed under IgnoreErrors.
	Failed []RenameFailure
}

// Move relocates tracked paths within the worktree and reconciles the
// index. Sources must be tracked paths or directories containing tracked
// entries; dest may be an existing directory (each source lands at
// <dest>/<basename>) or, for exactly one source, a new path.
//
// The index is held exclusively for the whole invocation: a concurrent
// invocation fails fast with ErrIndexLocked. Classification is fully
// front-loaded, so without IgnoreErrors an invalid operation aborts
// before anything is touched. The index is written through an atomic
// lockfile commit, and only if it changed.
func (r *Repo) Move(ctx context.Context, sources []string, dest string, opts MoveOpts) (*MoveResult, error) {
	if len(sources) == 0 {
		return nil, WrapError(ErrUsage, "at least one source is required")
	}
	if dest == "" {
		return nil, WrapError(ErrUsage, "a destination is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := r.lockIndex()
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			tx.abort()
		}
	}()

	ops, err := r.planMoves(tx.idx, sources, dest)
	if err != nil {
		return nil, err
	}

	res := &MoveResult{}

	ops, overwritten, err := r.classify(tx.idx, ops, opts, res)
	if err != nil {
		return nil, err
	}

	b, err := r.execute(tx.idx, ops, overwritten, opts, res)
	if err != nil {
		return nil, err
	}
	res.Overwritten = pathSetStrings(overwritten)

	if opts.DryRun {
		return res, nil
	}

	dirty, err := r.applyBuckets(tx.idx, b)
	if err != nil {
		return nil, err
	}

	if dirty {
		committed = true
		if err := tx.commit(); err != nil {
			return nil, err
		}
	}

	return res, nil
}
