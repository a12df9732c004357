package gitmv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecuteBucketsTrackedFile tests bucketing for a plain tracked move
func TestExecuteBucketsTrackedFile(t *testing.T) {
	tr := setupTestRepo(t)
	tr.addFile(t, "a.txt", "a")

	tx, err := tr.repo.lockIndex()
	require.NoError(t, err)
	defer tx.abort()

	res := &MoveResult{}
	ops := []moveOp{{src: "a.txt", dst: "b.txt", mode: opFile}}

	_, err = tr.repo.execute(tx.idx, ops, newPathSet(), MoveOpts{}, res)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, res.Added)
	assert.Equal(t, []string{"a.txt"}, res.Deleted)
	assert.Empty(t, res.Changed)

	assert.False(t, tr.exists(t, "a.txt"), "source should be renamed away")
	assert.True(t, tr.exists(t, "b.txt"), "destination should exist")
}

// TestExecuteBucketsOverwrite tests that overwrite targets land in Changed
func TestExecuteBucketsOverwrite(t *testing.T) {
	tr := setupTestRepo(t)
	tr.addFile(t, "a.txt", "a")
	tr.addFile(t, "b.txt", "b")

	tx, err := tr.repo.lockIndex()
	require.NoError(t, err)
	defer tx.abort()

	overwritten := newPathSet()
	overwritten.Add("b.txt")

	res := &MoveResult{}
	ops := []moveOp{{src: "a.txt", dst: "b.txt", mode: opFile}}

	_, err = tr.repo.execute(tx.idx, ops, overwritten, MoveOpts{}, res)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, res.Changed)
	assert.Equal(t, []string{"a.txt"}, res.Deleted)
	assert.Empty(t, res.Added, "an overwritten destination is changed, not added")
}

// TestExecuteUntrackedSource tests the defensive added-only branch for a
// surviving operation whose source has no index entry
func TestExecuteUntrackedSource(t *testing.T) {
	tr := setupTestRepo(t)
	tr.writeFile(t, "loose.txt", "loose")

	tx, err := tr.repo.lockIndex()
	require.NoError(t, err)
	defer tx.abort()

	res := &MoveResult{}
	ops := []moveOp{{src: "loose.txt", dst: "moved.txt", mode: opFile}}

	_, err = tr.repo.execute(tx.idx, ops, newPathSet(), MoveOpts{}, res)
	require.NoError(t, err)

	assert.Equal(t, []string{"moved.txt"}, res.Added)
	assert.Empty(t, res.Deleted, "an untracked source has nothing to delete")
	assert.Empty(t, res.Changed)
}

// TestExecuteIndexOnlySkipsRename tests that index-only operations never
// touch the filesystem, even when the source is still physically present
func TestExecuteIndexOnlySkipsRename(t *testing.T) {
	tr := setupTestRepo(t)
	tr.addFile(t, "a/x", "x")

	repo, counter := tr.countingRepo()

	tx, err := repo.lockIndex()
	require.NoError(t, err)
	defer tx.abort()

	res := &MoveResult{}
	ops := []moveOp{{src: "a/x", dst: "b/x", mode: opIndexOnly}}

	_, err = repo.execute(tx.idx, ops, newPathSet(), MoveOpts{}, res)
	require.NoError(t, err)

	assert.Zero(t, counter.renames, "index-only operations must not rename")
	assert.True(t, tr.exists(t, "a/x"), "the file stays where it is")
	assert.Equal(t, []string{"b/x"}, res.Added)
	assert.Equal(t, []string{"a/x"}, res.Deleted)
}

// TestExecuteDirRenameSkipsBuckets tests that a directory rename moves the
// subtree but contributes nothing to the index buckets
func TestExecuteDirRenameSkipsBuckets(t *testing.T) {
	tr := setupTestRepo(t)
	tr.addFile(t, "a/x", "x")

	tx, err := tr.repo.lockIndex()
	require.NoError(t, err)
	defer tx.abort()

	res := &MoveResult{}
	ops := []moveOp{{src: "a", dst: "b", mode: opDirRename}}

	_, err = tr.repo.execute(tx.idx, ops, newPathSet(), MoveOpts{}, res)
	require.NoError(t, err)

	assert.True(t, tr.exists(t, "b/x"), "directory rename should move children")
	assert.False(t, tr.exists(t, "a/x"))
	assert.Empty(t, res.Added)
	assert.Empty(t, res.Deleted)
	assert.Empty(t, res.Changed)
}

// TestExecuteDryRun tests that dry-run buckets without renaming
func TestExecuteDryRun(t *testing.T) {
	tr := setupTestRepo(t)
	tr.addFile(t, "a.txt", "a")

	repo, counter := tr.countingRepo()

	tx, err := repo.lockIndex()
	require.NoError(t, err)
	defer tx.abort()

	res := &MoveResult{}
	ops := []moveOp{{src: "a.txt", dst: "b.txt", mode: opFile}}

	_, err = repo.execute(tx.idx, ops, newPathSet(), MoveOpts{DryRun: true}, res)
	require.NoError(t, err)

	assert.Zero(t, counter.renames, "dry-run must not rename")
	assert.True(t, tr.exists(t, "a.txt"))
	assert.Equal(t, []string{"b.txt"}, res.Added)
	assert.Equal(t, []string{"a.txt"}, res.Deleted)
}

// TestExecuteRenameFailure tests fatal and ignore-errors rename failures
func TestExecuteRenameFailure(t *testing.T) {
	t.Run("fatal without ignore-errors", func(t *testing.T) {
		tr := setupTestRepo(t)

		tx, err := tr.repo.lockIndex()
		require.NoError(t, err)
		defer tx.abort()

		res := &MoveResult{}
		ops := []moveOp{{src: "vanished.txt", dst: "b.txt", mode: opFile}}

		_, err = tr.repo.execute(tx.idx, ops, newPathSet(), MoveOpts{}, res)
		require.Error(t, err, "a failed rename aborts the invocation")
	})

	t.Run("reported under ignore-errors", func(t *testing.T) {
		tr := setupTestRepo(t)
		tr.addFile(t, "a.txt", "a")

		tx, err := tr.repo.lockIndex()
		require.NoError(t, err)
		defer tx.abort()

		res := &MoveResult{}
		ops := []moveOp{
			{src: "vanished.txt", dst: "b.txt", mode: opFile},
			{src: "a.txt", dst: "c.txt", mode: opFile},
		}

		_, err = tr.repo.execute(tx.idx, ops, newPathSet(), MoveOpts{IgnoreErrors: true}, res)
		require.NoError(t, err, "ignore-errors completes the invocation")

		require.Len(t, res.Failed, 1)
		assert.Equal(t, "vanished.txt", res.Failed[0].Source)
		assert.True(t, tr.exists(t, "c.txt"), "later renames still execute")
	})
}
