// Package gitmv provides a high-level move operation for git worktrees.
// This file implements the exclusive index transaction.
package gitmv

import (
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

const (
	indexFileName = "index"
	lockFileName  = "index.lock"
)

// indexTxn is an exclusive hold on the index resource. Acquiring it
// creates .git/index.lock and decodes a snapshot of the current index;
// the lockfile stays open until commit or abort. Committing encodes the
// mutated snapshot into the lockfile and atomically renames it over the
// index, so a failure at any point leaves the previous index intact.
type indexTxn struct {
	dot  billy.Filesystem
	lock billy.File
	idx  *index.Index
	done bool
}

// lockIndex acquires the exclusive index hold and reads the snapshot.
// A concurrent holder causes an immediate ErrIndexLocked; there is no
// queueing or retry.
func (r *Repo) lockIndex() (*indexTxn, error) {
	lock, err := r.dot.OpenFile(lockFileName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, WrapErrorf(ErrIndexLocked, "%s exists", lockFileName)
		}
		return nil, WrapError(err, "failed to create index lock")
	}

	tx := &indexTxn{
		dot:  r.dot,
		lock: lock,
		idx:  &index.Index{Version: index.DecodeVersionSupported.Min},
	}

	f, err := r.dot.Open(indexFileName)
	if err != nil {
		if os.IsNotExist(err) {
			// Fresh repository: start from an empty index.
			return tx, nil
		}
		tx.abort()
		return nil, WrapError(err, "failed to open index")
	}
	defer f.Close()

	if err := index.NewDecoder(f).Decode(tx.idx); err != nil {
		tx.abort()
		return nil, WrapError(ErrIndexCorrupt, err.Error())
	}

	return tx, nil
}

// commit serializes the snapshot and atomically replaces the index.
func (tx *indexTxn) commit() error {
	if tx.done {
		return nil
	}
	tx.done = true

	// Entries must stay ordered by path on disk.
	sort.Slice(tx.idx.Entries, func(i, j int) bool {
		return tx.idx.Entries[i].Name < tx.idx.Entries[j].Name
	})

	if err := index.NewEncoder(tx.lock).Encode(tx.idx); err != nil {
		tx.lock.Close()
		tx.dot.Remove(lockFileName)
		return WrapErrorf(ErrIndexWrite, "encoding index failed: %v", err)
	}

	if err := tx.lock.Close(); err != nil {
		tx.dot.Remove(lockFileName)
		return WrapErrorf(ErrIndexWrite, "closing %s failed: %v", lockFileName, err)
	}

	if err := tx.dot.Rename(lockFileName, indexFileName); err != nil {
		tx.dot.Remove(lockFileName)
		return WrapErrorf(ErrIndexWrite, "committing %s failed: %v", lockFileName, err)
	}

	return nil
}

// abort releases the hold without touching the canonical index.
func (tx *indexTxn) abort() {
	if tx.done {
		return
	}
	tx.done = true

	tx.lock.Close()
	tx.dot.Remove(lockFileName)
}
