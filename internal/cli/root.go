package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/spanmerge/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose int    // -v count: 0 warn, 1 info, 2 debug, 3+ trace
	Format  string // "json" | "text"
	LogFile bool

	// RunIDs overrides run id generation (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the spanmerge CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "spanmerge",
		Short: "spanmerge - merge overlapping rule matches",
		Long: `Run several named match rules over one text and merge their matches
into ordered groups of overlapping spans.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			logging.SetupLogger(opts.Verbose, cmd.ErrOrStderr(), opts.LogFile)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v", "increase log verbosity (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.LogFile, "log-file", false, "also append logs to the XDG state log file")

	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
