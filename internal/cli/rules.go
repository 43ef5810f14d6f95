package cli

import (
	"errors"

	"github.com/roach88/spanmerge/internal/logging"
	"github.com/roach88/spanmerge/internal/rules"
)

// resolveRulesPath returns path, or the XDG default rules file when empty.
func resolveRulesPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return rules.DefaultPath()
}

// loadRulesFile resolves and loads the rules file, reporting load errors
// through formatter. The returned error is an *ExitError.
func loadRulesFile(formatter *OutputFormatter, path string) (*rules.File, error) {
	log := logging.GetLogger("cli.rules")

	resolved, err := resolveRulesPath(path)
	if err == nil {
		log.Debug().Str("path", resolved).Msg("loading rules")
		var file *rules.File
		if file, err = rules.Load(resolved); err == nil {
			log.Info().Str("path", resolved).Int("rules", len(file.Defs)).Msg("rules loaded")
			return file, nil
		}
	}

	code := rules.ErrCodeGeneric
	message := err.Error()
	var details any
	var loadErr *rules.LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
		message = loadErr.Message
		if loadErr.Err != nil {
			details = loadErr.Err.Error()
		}
		if loadErr.Path != "" {
			message = loadErr.Path + ": " + message
		}
	}
	_ = formatter.Error(code, message, details)
	return nil, WrapExitError(ExitCommandError, code, err)
}

// logRuleWarnings reports rules that will contribute nothing to the sweep.
func logRuleWarnings(file *rules.File) []string {
	warnings := file.Warnings()
	log := logging.GetLogger("cli.rules")
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	return warnings
}
