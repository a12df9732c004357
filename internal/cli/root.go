// Package cli implements the git-mv command line interface.
package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/gitmv"
)

var (
	dryRun       bool
	force        bool
	ignoreErrors bool
	verbose      bool

	listLabelColor = color.New(color.FgCyan, color.Bold)
)

// rootCmd is the root command for git-mv.
var rootCmd = &cobra.Command{
	Use:   "git-mv [-v] [-n] [-f] [-k] <source>... <destination>",
	Short: "Move or rename tracked paths, updating the index",
	Long: `git-mv relocates tracked files or directories within the worktree and
records the result in the index. The destination may be an existing
directory, in which case every source is moved into it.`,
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMove,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report planned moves without applying them")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing regular-file destinations")
	rootCmd.Flags().BoolVarP(&ignoreErrors, "skip-errors", "k", false, "skip invalid moves instead of aborting")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report each accepted move")
}

// SetVersion sets the reported version of the command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runMove(cmd *cobra.Command, args []string) error {
	root, prefix, err := discoverWorktree()
	if err != nil {
		return err
	}

	repo, err := gitmv.Open(cmd.Context(), &gitmv.Options{FS: osfs.New(root)})
	if err != nil {
		return err
	}

	resolved := resolveArgs(prefix, args)
	sources := resolved[:len(resolved)-1]
	dest := resolved[len(resolved)-1]

	res, err := repo.Move(cmd.Context(), sources, dest, gitmv.MoveOpts{
		DryRun:       dryRun,
		Force:        force,
		IgnoreErrors: ignoreErrors,
	})
	if err != nil {
		return err
	}

	report(cmd, res)
	return nil
}

// report prints the invocation outcome: warnings for overwrites, skips and
// rename failures, the accepted moves when verbose, and the bucket listing
// on a dry run.
func report(cmd *cobra.Command, res *gitmv.MoveResult) {
	for _, p := range res.Overwritten {
		log.Warn("destination exists; will overwrite", "path", p)
	}

	for _, s := range res.Skipped {
		log.Warn("skipping move", "source", s.Source, "destination", s.Destination, "error", s.Reason)
	}

	if verbose || dryRun {
		for _, rn := range res.Renames {
			fmt.Fprintf(cmd.OutOrStdout(), "Renaming %s to %s\n", rn.From, rn.To)
		}
	}

	if dryRun {
		showList(cmd, "Changed  : ", res.Changed)
		showList(cmd, "Adding   : ", res.Added)
		showList(cmd, "Deleting : ", res.Deleted)
	}

	for _, f := range res.Failed {
		log.Error("renaming failed", "source", f.Source, "destination", f.Destination, "error", f.Err)
	}
}

// showList prints a labeled, comma-separated path list, omitting empty lists.
func showList(cmd *cobra.Command, label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", listLabelColor.Sprint(label), strings.Join(paths, ", "))
}

// discoverWorktree locates the enclosing repository root by walking up
// from the current directory, and returns the worktree-relative prefix of
// the current directory for argument resolution.
func discoverWorktree() (root, prefix string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}

	dir := cwd
	for {
		fi, statErr := os.Stat(filepath.Join(dir, ".git"))
		if statErr == nil && fi.IsDir() {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("not a git repository (or any parent up to root): %s", cwd)
		}
		dir = parent
	}

	rel, err := filepath.Rel(dir, cwd)
	if err != nil {
		return "", "", err
	}
	if rel == "." {
		rel = ""
	}

	return dir, filepath.ToSlash(rel), nil
}

// resolveArgs rebases command arguments onto the worktree root using the
// prefix of the invoking directory.
func resolveArgs(prefix string, args []string) []string {
	if prefix == "" {
		out := make([]string, len(args))
		for i, a := range args {
			out[i] = filepath.ToSlash(a)
		}
		return out
	}

	out := make([]string, len(args))
	for i, a := range args {
		out[i] = path.Join(prefix, filepath.ToSlash(a))
	}
	return out
}
