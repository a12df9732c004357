// Package gitmv provides a high-level move operation for git worktrees.
// This file performs the filesystem renames and builds the index buckets.
package gitmv

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// buckets collects the net index effect of the surviving operations.
// A path appears in at most one bucket per well-formed invocation.
type buckets struct {
	added   *treeset.Set
	deleted *treeset.Set
	changed *treeset.Set
}

func newBuckets() *buckets {
	return &buckets{
		added:   newPathSet(),
		deleted: newPathSet(),
		changed: newPathSet(),
	}
}

// execute renames each surviving operation in order and partitions the
// results into Added/Deleted/Changed. Index-only operations perform no
// filesystem step: the parent directory's rename already relocated them.
// Directory renames perform no bucketing: the directory itself has no
// index entry. Under dry-run the same bucketing runs with no rename.
//
// A rename failure aborts unless ignore-errors is active, in which case
// it is recorded in res.Failed and the invocation completes.
func (r *Repo) execute(
	idx *index.Index,
	ops []moveOp,
	overwritten *treeset.Set,
	opts MoveOpts,
	res *MoveResult,
) (*buckets, error) {
	b := newBuckets()

	for _, op := range ops {
		res.Renames = append(res.Renames, Rename{From: op.src, To: op.dst})

		if !opts.DryRun && op.mode != opIndexOnly {
			if err := r.wt.Rename(op.src, op.dst); err != nil {
				if !opts.IgnoreErrors {
					return nil, WrapErrorf(err, "renaming %q to %q failed", op.src, op.dst)
				}
				res.Failed = append(res.Failed, RenameFailure{
					Source:      op.src,
					Destination: op.dst,
					Err:         err,
				})
			}
		}

		if op.mode == opDirRename {
			continue
		}

		if _, err := idx.Entry(op.src); err == nil {
			b.deleted.Add(op.src)

			// The destination can be an overwritten file, in which case its
			// entry is refreshed rather than re-created.
			if overwritten.Contains(op.dst) {
				b.changed.Add(op.dst)
			} else {
				b.added.Add(op.dst)
			}
		} else {
			b.added.Add(op.dst)
		}
	}

	res.Added = pathSetStrings(b.added)
	res.Deleted = pathSetStrings(b.deleted)
	res.Changed = pathSetStrings(b.changed)

	return b, nil
}
