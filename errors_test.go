package gitmv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWrapError tests sentinel preservation through wrapping
func TestWrapError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "context"))
		assert.NoError(t, WrapErrorf(nil, "context %d", 1))
	})

	t.Run("wrapped sentinel remains checkable", func(t *testing.T) {
		err := WrapError(ErrNotTracked, "some context")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotTracked)
		assert.Contains(t, err.Error(), "some context")
	})

	t.Run("formatted wrap keeps arguments and sentinel", func(t *testing.T) {
		err := WrapErrorf(ErrDestinationConflict, "source=%q destination=%q", "a", "z")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDestinationConflict)
		assert.Contains(t, err.Error(), `source="a" destination="z"`)
	})
}

// TestSentinelDistinctness tests that classification sentinels do not alias
func TestSentinelDistinctness(t *testing.T) {
	sentinels := []error{
		ErrUsage, ErrIndexLocked, ErrIndexCorrupt, ErrIndexWrite,
		ErrBadSource, ErrDirOverFile, ErrSourceDirEmpty,
		ErrDestinationExists, ErrCannotOverwrite, ErrSelfMove,
		ErrNotTracked, ErrDestinationConflict, ErrEntryUnknown,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}
