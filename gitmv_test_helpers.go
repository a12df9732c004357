package gitmv

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/stretchr/testify/require"
)

// testRepo is a helper struct that contains a test repository and its filesystem
type testRepo struct {
	repo *Repo
	fs   billy.Filesystem
	ctx  context.Context
}

// setupTestRepo creates a new test repository with an in-memory filesystem
func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	ctx := context.Background()
	memFS := memfs.New()

	repo, err := Init(ctx, &Options{
		FS:      memFS,
		Workdir: ".",
	})
	require.NoError(t, err, "failed to initialize test repository")
	require.NotNil(t, repo, "repository should not be nil")

	return &testRepo{
		repo: repo,
		fs:   memFS,
		ctx:  ctx,
	}
}

// writeFile writes a file into the worktree, creating parent directories.
func (tr *testRepo) writeFile(t *testing.T, p, content string) {
	t.Helper()

	if dir := path.Dir(p); dir != "." {
		require.NoError(t, tr.fs.MkdirAll(dir, 0o755), "failed to create directories for %s", p)
	}

	require.NoError(t, util.WriteFile(tr.fs, p, []byte(content), 0o644), "failed to write %s", p)
}

// stage stages worktree paths into the index.
func (tr *testRepo) stage(t *testing.T, paths ...string) {
	t.Helper()

	w, err := tr.repo.repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	for _, p := range paths {
		_, err := w.Add(p)
		require.NoError(t, err, "failed to stage %s", p)
	}
}

// addFile writes and stages a file in one step.
func (tr *testRepo) addFile(t *testing.T, p, content string) {
	t.Helper()

	tr.writeFile(t, p, content)
	tr.stage(t, p)
}

// readIndex decodes the canonical index file.
func (tr *testRepo) readIndex(t *testing.T) *index.Index {
	t.Helper()

	f, err := tr.repo.dot.Open(indexFileName)
	require.NoError(t, err, "failed to open index")
	defer f.Close()

	idx := &index.Index{}
	require.NoError(t, index.NewDecoder(f).Decode(idx), "failed to decode index")

	return idx
}

// indexPaths returns the tracked paths in index order.
func (tr *testRepo) indexPaths(t *testing.T) []string {
	t.Helper()

	idx := tr.readIndex(t)
	names := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		names = append(names, e.Name)
	}

	return names
}

// exists reports whether a worktree path exists.
func (tr *testRepo) exists(t *testing.T, p string) bool {
	t.Helper()

	_, err := tr.fs.Lstat(p)
	if err == nil {
		return true
	}
	require.True(t, os.IsNotExist(err), "unexpected lstat error for %s: %v", p, err)

	return false
}

// renameCounter wraps a worktree filesystem and counts Rename calls.
type renameCounter struct {
	billy.Filesystem
	renames int
}

func (c *renameCounter) Rename(from, to string) error {
	c.renames++
	return c.Filesystem.Rename(from, to)
}

// countingRepo returns a Repo whose worktree renames are counted.
func (tr *testRepo) countingRepo() (*Repo, *renameCounter) {
	counter := &renameCounter{Filesystem: tr.repo.wt}

	return &Repo{
		repo:    tr.repo.repo,
		wt:      counter,
		dot:     tr.repo.dot,
		options: tr.repo.options,
	}, counter
}
