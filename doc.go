// Package gitmv relocates tracked paths (files or whole directories)
// within a git worktree, keeping the on-disk layout and the index
// mutually consistent. It is the library behind the git-mv command.
//
// The package operates exclusively through the billy filesystem
// abstraction, so on-disk and in-memory repositories are handled the
// same way.
//
// # Basic Usage
//
// Open a repository and move a tracked file:
//
//	import (
//	    "context"
//
//	    "github.com/go-git/go-billy/v5/osfs"
//	    "github.com/input-output-hk/catalyst-forge-libs/gitmv"
//	)
//
//	repo, err := gitmv.Open(context.Background(), &gitmv.Options{
//	    FS: osfs.New("/path/to/repo"),
//	})
//	if err != nil {
//	    // handle error
//	}
//
//	res, err := repo.Move(ctx, []string{"old/name.go"}, "new/name.go", gitmv.MoveOpts{})
//
// Moving several sources into an existing directory:
//
//	res, err := repo.Move(ctx, []string{"a.go", "b.go"}, "pkg", gitmv.MoveOpts{})
//
// Directory sources relocate their whole tracked subtree with a single
// filesystem rename; each contained entry is rewritten in the index.
//
// # Invocation semantics
//
// Every invocation takes an exclusive hold on the index and validates all
// operations up front: existence, tracking, overwrite and collision rules.
// Without MoveOpts.IgnoreErrors the first violation aborts before any
// rename. The index is committed through an atomic lockfile swap, and
// only when it actually changed. MoveOpts.DryRun reports the planned
// effect without mutating anything.
//
// Errors are sentinel values checkable with errors.Is; see errors.go.
package gitmv
