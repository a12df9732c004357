// Package gitmv provides sentinel errors for move operations.
// All errors can be checked using errors.Is() for programmatic handling.
package gitmv

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be checked with errors.Is().
// Each classification rule and persistence failure maps to one sentinel,
// providing a stable API for consumers.

// ErrUsage is returned when the invocation itself is malformed: no sources,
// multiple sources without an existing directory destination, or a path
// that escapes the worktree. Usage errors are detected before any work.
var ErrUsage = errors.New("bad usage")

// ErrIndexLocked is returned when the index is already held by another
// invocation. Callers should not retry automatically.
var ErrIndexLocked = errors.New("index is locked")

// ErrIndexCorrupt is returned when the index file cannot be decoded.
var ErrIndexCorrupt = errors.New("index file corrupt")

// ErrIndexWrite is returned when the new index cannot be serialized or
// atomically committed. The previous index file is left intact.
var ErrIndexWrite = errors.New("unable to write new index file")

// ErrBadSource is returned when a source path cannot be located on disk.
var ErrBadSource = errors.New("bad source")

// ErrDirOverFile is returned when a directory source would be moved over
// an existing path.
var ErrDirOverFile = errors.New("cannot move directory over file")

// ErrSourceDirEmpty is returned when a directory source has no tracked
// entries beneath it.
var ErrSourceDirEmpty = errors.New("source directory is empty")

// ErrDestinationExists is returned when the destination already exists and
// overwriting was not requested.
var ErrDestinationExists = errors.New("destination exists")

// ErrCannotOverwrite is returned when overwriting was requested but the
// destination is not a regular file. Only files can overwrite each other.
var ErrCannotOverwrite = errors.New("cannot overwrite")

// ErrSelfMove is returned when the destination equals the source or lies
// inside it. Overwriting never permits this.
var ErrSelfMove = errors.New("cannot move directory into itself")

// ErrNotTracked is returned when a source path has no index entry.
var ErrNotTracked = errors.New("not under version control")

// ErrDestinationConflict is returned when two sources claim the same
// destination within one invocation.
var ErrDestinationConflict = errors.New("multiple sources for the same target")

// ErrEntryUnknown is returned when a path that should be present in the
// index snapshot cannot be found during the commit phase.
var ErrEntryUnknown = errors.New("unknown index entry")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
