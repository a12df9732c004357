// Package gitmv relocates tracked paths within a git worktree, keeping the
// on-disk layout and the index consistent. It operates exclusively through
// the billy filesystem abstraction so both on-disk and in-memory
// repositories are supported.
package gitmv

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."

	// gitDirName is the repository metadata directory within the worktree.
	gitDirName = ".git"
)

// Options configures repository discovery and performance.
type Options struct {
	// FS is the REQUIRED filesystem root (OS or in-memory).
	// All repository state lives within this filesystem.
	FS billy.Filesystem

	// Workdir is the path within FS for the worktree root.
	// Defaults to "." (current directory in FS).
	Workdir string

	// StorerCacheSize sets the LRU objects cache entries.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int
}

// Validate checks that the Options are properly configured.
// It returns an error if required fields are missing or invalid.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrUsage, "FS is required")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrUsage, "StorerCacheSize cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}
}

// Repo represents a non-bare git repository and provides the move operation.
// It wraps a go-git Repository for object storage and holds the worktree and
// .git filesystems the operation manipulates directly.
type Repo struct {
	repo    *git.Repository
	wt      billy.Filesystem
	dot     billy.Filesystem
	options Options
}

// Init creates a new non-bare git repository at the specified location.
func Init(ctx context.Context, opts *Options) (*Repo, error) {
	return open(ctx, opts, git.Init)
}

// Open opens an existing non-bare git repository. Both the .git directory
// and the worktree must be present at the specified workdir within the
// filesystem.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	return open(ctx, opts, git.Open)
}

// open builds the scoped filesystems and storage shared by Init and Open.
func open(
	ctx context.Context,
	opts *Options,
	construct func(storage.Storer, billy.Filesystem) (*git.Repository, error),
) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	// Chroot to the workdir to scope the repository location
	worktreeFS, err := opts.FS.Chroot(opts.Workdir)
	if err != nil {
		return nil, fmt.Errorf("failed to chroot to workdir %q: %w", opts.Workdir, err)
	}

	dotGitFS, err := worktreeFS.Chroot(gitDirName)
	if err != nil {
		return nil, fmt.Errorf("failed to access .git directory: %w", err)
	}

	store := newStorage(dotGitFS, opts.StorerCacheSize)

	repo, err := construct(store, worktreeFS)
	if err != nil {
		return nil, WrapError(err, "failed to open repository")
	}

	return &Repo{
		repo:    repo,
		wt:      worktreeFS,
		dot:     dotGitFS,
		options: *opts,
	}, nil
}

// newStorage creates git storage with an LRU cache for object access.
func newStorage(dotGitFS billy.Filesystem, cacheSize int) *filesystem.Storage {
	if cacheSize <= 0 {
		cacheSize = DefaultStorerCacheSize
	}

	objCache := cache.NewObjectLRU(cache.FileSize(cacheSize))
	return filesystem.NewStorage(dotGitFS, objCache)
}
