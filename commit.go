// Package gitmv provides a high-level move operation for git worktrees.
// This file applies the bucketed paths to the index snapshot.
package gitmv

import (
	"errors"
	"io"
	"os"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// applyBuckets mutates the index snapshot: changed entries are refreshed
// from the current worktree state, added paths get new entries backed by
// freshly stored blobs, deleted paths are removed. It reports whether the
// index was modified at all, so an effect-free invocation writes nothing.
func (r *Repo) applyBuckets(idx *index.Index, b *buckets) (bool, error) {
	dirty := false

	for _, p := range pathSetStrings(b.changed) {
		e, err := idx.Entry(p)
		if err != nil {
			return dirty, WrapErrorf(ErrEntryUnknown, "path %q", p)
		}
		if err := r.refreshEntry(e, p); err != nil {
			return dirty, err
		}
		dirty = true
	}

	for _, p := range pathSetStrings(b.added) {
		e, err := idx.Entry(p)
		if err != nil {
			e = idx.Add(p)
		}
		if err := r.refreshEntry(e, p); err != nil {
			return dirty, err
		}
		dirty = true
	}

	for _, p := range pathSetStrings(b.deleted) {
		if _, err := idx.Remove(p); err == nil {
			dirty = true
		} else if !errors.Is(err, index.ErrEntryNotFound) {
			return dirty, WrapErrorf(err, "removing %q from index failed", p)
		}
	}

	return dirty, nil
}

// refreshEntry updates an entry's cached metadata and blob hash from the
// current worktree state at path p.
func (r *Repo) refreshEntry(e *index.Entry, p string) error {
	fi, err := r.wt.Lstat(p)
	if err != nil {
		return WrapErrorf(err, "stat %q failed", p)
	}

	hash, err := r.storeBlob(p, fi)
	if err != nil {
		return err
	}

	mode, err := filemode.NewFromOSFileMode(fi.Mode())
	if err != nil {
		return WrapErrorf(err, "unsupported file mode for %q", p)
	}

	e.Hash = hash
	e.Mode = mode
	e.Size = uint32(fi.Size())
	e.ModifiedAt = fi.ModTime()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = fi.ModTime()
	}

	return nil
}

// storeBlob hashes the content at path p as a blob and stores it in the
// object database unless it is already present. Symlinks hash their
// target, matching staging semantics.
func (r *Repo) storeBlob(p string, fi os.FileInfo) (plumbing.Hash, error) {
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)

	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, WrapErrorf(err, "hashing %q failed", p)
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		target, rlErr := r.wt.Readlink(p)
		if rlErr != nil {
			w.Close()
			return plumbing.ZeroHash, WrapErrorf(rlErr, "readlink %q failed", p)
		}
		obj.SetSize(int64(len(target)))
		if _, err := w.Write([]byte(target)); err != nil {
			w.Close()
			return plumbing.ZeroHash, WrapErrorf(err, "hashing %q failed", p)
		}
	} else {
		obj.SetSize(fi.Size())
		f, openErr := r.wt.Open(p)
		if openErr != nil {
			w.Close()
			return plumbing.ZeroHash, WrapErrorf(openErr, "open %q failed", p)
		}
		if _, err := io.Copy(w, f); err != nil {
			f.Close()
			w.Close()
			return plumbing.ZeroHash, WrapErrorf(err, "hashing %q failed", p)
		}
		f.Close()
	}

	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, WrapErrorf(err, "hashing %q failed", p)
	}

	hash := obj.Hash()
	if err := r.repo.Storer.HasEncodedObject(hash); err == nil {
		return hash, nil
	}

	return r.repo.Storer.SetEncodedObject(obj)
}
