package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/spanmerge/internal/canon"
	"github.com/roach88/spanmerge/internal/logging"
	"github.com/roach88/spanmerge/internal/render"
	"github.com/roach88/spanmerge/internal/rules"
	"github.com/roach88/spanmerge/internal/store"
	"github.com/roach88/spanmerge/match"
)

// MatchOptions holds flags for the match command.
type MatchOptions struct {
	*RootOptions
	Rules     string
	Database  string
	Normalize bool
	Highlight bool
	Color     string
}

// MatchResult is the JSON payload of the match command.
type MatchResult struct {
	RunID       string             `json:"run_id"`
	RuleSetHash string             `json:"ruleset_hash"`
	TextHash    string             `json:"text_hash"`
	Rules       []string           `json:"rules"`
	Warnings    []string           `json:"warnings,omitempty"`
	Seq         int64              `json:"seq,omitempty"`
	Groups      []match.MatchGroup `json:"groups"`
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "match [input]",
		Short: "Merge the matches of a rules file over a text",
		Long: `Run every rule of a rules file over the input and print the groups of
overlapping matches, left to right.

The input is read from the given file, or from stdin when omitted. Without
--rules the default rules file under the XDG config directories is used.

Examples:
  spanmerge match --rules rules.yaml notes.txt
  cat notes.txt | spanmerge match --rules rules.toml --format json
  spanmerge match --rules rules.cue --db runs.db --highlight notes.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMatch(opts, input, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Rules, "rules", "r", "", "rules file (.yaml, .yml, .toml, .cue)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().BoolVar(&opts.Normalize, "normalize", false, "normalize the input to NFC before matching")
	cmd.Flags().BoolVar(&opts.Highlight, "highlight", false, "print the input with each group highlighted")
	cmd.Flags().StringVar(&opts.Color, "color", string(render.ColorAuto), "highlight colors (auto|always|never)")

	return cmd
}

func runMatch(opts *MatchOptions, input string, cmd *cobra.Command) error {
	log := logging.GetLogger("cli.match")
	started := time.Now()

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose > 0,
	}

	colorMode, err := render.ParseColorMode(opts.Color)
	if err != nil {
		_ = formatter.Error(rules.ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid --color", err)
	}

	file, err := loadRulesFile(formatter, opts.Rules)
	if err != nil {
		return err
	}

	set, err := file.Build()
	if err != nil {
		if errs, ok := err.(rules.ValidationErrors); ok {
			return outputValidationErrors(formatter, errs, ExitCommandError)
		}
		_ = formatter.Error(rules.ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to build rules", err)
	}
	warnings := logRuleWarnings(file)

	text, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		_ = formatter.Error(rules.ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	if opts.Normalize {
		text = norm.NFC.String(text)
	}

	groups := slices.Collect(match.MatchAllRules(text, set, match.WithLogger(logging.GetLogger("match"))))
	log.Info().Int("groups", len(groups)).Int("bytes", len(text)).Msg("sweep finished")

	ruleSetHash, err := file.Hash()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash rules", err)
	}

	result := MatchResult{
		RunID:       runIDGenerator(opts.RootOptions).Generate(),
		RuleSetHash: ruleSetHash,
		TextHash:    canon.TextHash(text),
		Rules:       set.Names(),
		Warnings:    warnings,
		Groups:      groups,
	}
	if result.Groups == nil {
		result.Groups = []match.MatchGroup{}
	}

	if opts.Database != "" {
		seq, err := recordRun(cmdContext(cmd), opts.Database, result, len(text))
		if err != nil {
			_ = formatter.Error(rules.ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		result.Seq = seq
		log.Info().Str("run", result.RunID).Int64("seq", seq).Msg("run recorded")
	}

	logging.LogDuration(log, started, "match")

	if formatter.IsJSON() {
		if opts.Highlight {
			log.Warn().Msg("--highlight is ignored with --format json")
		}
		formatter.TraceID = result.RunID
		return formatter.Success(result)
	}

	w := formatter.Writer
	writeGroups(w, groups)
	if opts.Database != "" {
		fmt.Fprintf(w, "recorded run %s (seq %d)\n", result.RunID, result.Seq)
	}
	if opts.Highlight {
		h := render.New(w, colorMode)
		fmt.Fprintln(w)
		fmt.Fprintln(w, h.Legend(result.Rules))
		fmt.Fprintln(w, h.Highlight(text, groups))
	}
	return nil
}

func recordRun(ctx context.Context, dbPath string, result MatchResult, textLen int) (int64, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	return st.WriteRun(ctx, store.Run{
		ID:          result.RunID,
		RuleSetHash: result.RuleSetHash,
		TextHash:    result.TextHash,
		TextLength:  textLen,
		Rules:       result.Rules,
		Groups:      result.Groups,
	})
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// cmdContext returns the command's context, or Background when unset.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
