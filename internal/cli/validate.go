package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/spanmerge/internal/rules"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Rules string
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                   `json:"valid"`
	Path     string                 `json:"path,omitempty"`
	Rules    []string               `json:"rules,omitempty"`
	Hash     string                 `json:"hash,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
	Errors   []rules.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a rules file without running it",
		Long: `Check a rules file for empty or duplicate names, malformed expressions,
unknown flags and unknown builtins.

Patterns without the g and m flags are reported as warnings: they load,
but contribute no matches.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Rules, "rules", "r", "", "rules file (defaults to the XDG config rules file)")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose > 0,
	}

	file, err := loadRulesFile(formatter, opts.Rules)
	if err != nil {
		return err
	}

	if errs := file.Validate(); len(errs) > 0 {
		return outputValidationErrors(formatter, errs, ExitFailure)
	}

	hash, err := file.Hash()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash rules", err)
	}
	warnings := logRuleWarnings(file)

	if formatter.IsJSON() {
		return formatter.Success(ValidationResult{
			Valid:    true,
			Path:     file.Path,
			Rules:    file.Names(),
			Hash:     hash,
			Warnings: warnings,
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d rule(s) valid\n", len(file.Defs))
	for _, w := range warnings {
		fmt.Fprintf(formatter.Writer, "  warning: %s\n", w)
	}
	return nil
}

// outputValidationErrors outputs every validation error and returns an
// ExitError carrying code.
func outputValidationErrors(formatter *OutputFormatter, errs rules.ValidationErrors, code int) error {
	exitErr := NewExitError(code, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.IsJSON() {
		err := formatter.encode(CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		})
		if err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return exitErr
}
