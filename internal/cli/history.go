package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spanmerge/internal/rules"
	"github.com/roach88/spanmerge/internal/store"
	"github.com/roach88/spanmerge/match"
)

// StoreOptions holds flags for commands reading the run store.
type StoreOptions struct {
	*RootOptions
	Database string
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	store.RunSummary
	Groups []match.MatchGroup `json:"groups"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List the runs recorded with match --db, oldest first.

Examples:
  spanmerge history --db runs.db
  spanmerge history --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the groups of a recorded run",
		Long: `Print the groups of one run recorded with match --db.

Example:
  spanmerge show --db runs.db 0192f4c1-7c1e-7d2a-9a8e-3b1f0c2d4e5f`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// openExistingStore opens the database, refusing to create a new one.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runHistory(opts *StoreOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := openExistingStore(opts.Database)
	if err != nil {
		_ = formatter.Error(rules.ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmdContext(cmd))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(runs)
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	fmt.Fprintf(w, "%-5s %-36s %-6s %s\n", "SEQ", "RUN", "GROUPS", "RULES")
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d %-36s %-6d %s\n", r.Seq, r.ID, r.GroupCount, strings.Join(r.Rules, ","))
	}
	return nil
}

func runShow(opts *StoreOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), TraceID: runID}

	st, err := openExistingStore(opts.Database)
	if err != nil {
		_ = formatter.Error(rules.ErrCodeNotFound, err.Error(), nil)
		return err
	}
	defer st.Close()

	run, err := st.ReadRun(cmdContext(cmd), runID)
	if errors.Is(err, store.ErrRunNotFound) {
		_ = formatter.Error(rules.ErrCodeNotFound, fmt.Sprintf("run %s not found", runID), nil)
		return WrapExitError(ExitCommandError, "run not found", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if formatter.IsJSON() {
		groups := run.Groups
		if groups == nil {
			groups = []match.MatchGroup{}
		}
		return formatter.Success(ShowResult{RunSummary: run.Summary(), Groups: groups})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "run %s (seq %d)\n", run.ID, run.Seq)
	fmt.Fprintf(w, "rules: %s\n", strings.Join(run.Rules, ", "))
	fmt.Fprintf(w, "text: %d bytes, hash %s\n", run.TextLength, run.TextHash)
	writeGroups(w, run.Groups)
	return nil
}
