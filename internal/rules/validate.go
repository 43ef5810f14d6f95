package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/spanmerge/match"
)

// Validation error codes.
const (
	ErrCodeEmptyName      = "E101" // Rule without a name
	ErrCodeDuplicateName  = "E102" // Name declared twice
	ErrCodeRuleKind       = "E103" // Both or neither of pattern and builtin
	ErrCodeBadPattern     = "E104" // Expression does not compile
	ErrCodeBadFlags       = "E105" // Unknown flag letter
	ErrCodeUnknownBuiltin = "E106" // Builtin name not registered
)

// ValidationError represents a single problem with a rule definition.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is the list of problems found in a file.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every definition and returns all problems found.
// A missing g or m flag is not reported here; the sweep warns about it.
func (f *File) Validate() ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(f.Defs))

	for i, def := range f.Defs {
		field := fmt.Sprintf("rules.%s", def.Name)
		if def.Name == "" {
			field = fmt.Sprintf("rules[%d]", i)
			errs = append(errs, ValidationError{Field: field, Code: ErrCodeEmptyName,
				Message: "rule name is required", Line: def.Line})
		} else if seen[def.Name] {
			errs = append(errs, ValidationError{Field: field, Code: ErrCodeDuplicateName,
				Message: fmt.Sprintf("rule %q declared more than once", def.Name), Line: def.Line})
		}
		seen[def.Name] = true

		switch {
		case def.Pattern != "" && def.Builtin != "":
			errs = append(errs, ValidationError{Field: field, Code: ErrCodeRuleKind,
				Message: "rule has both pattern and builtin", Line: def.Line})
		case def.Pattern == "" && def.Builtin == "":
			errs = append(errs, ValidationError{Field: field, Code: ErrCodeRuleKind,
				Message: "rule needs a pattern or a builtin", Line: def.Line})
		case def.Builtin != "":
			if _, ok := builtins[def.Builtin]; !ok {
				errs = append(errs, ValidationError{Field: field + ".builtin", Code: ErrCodeUnknownBuiltin,
					Message: fmt.Sprintf("unknown builtin %q (known: %s)", def.Builtin,
						strings.Join(BuiltinNames(), ", ")), Line: def.Line})
			}
		default:
			flags, err := match.ParseFlags(def.EffectiveFlags())
			if err != nil {
				errs = append(errs, ValidationError{Field: field + ".flags", Code: ErrCodeBadFlags,
					Message: err.Error(), Line: def.Line})
				continue
			}
			if _, err := match.Compile(def.Pattern, flags); err != nil {
				errs = append(errs, ValidationError{Field: field + ".pattern", Code: ErrCodeBadPattern,
					Message: err.Error(), Line: def.Line})
			}
		}
	}
	return errs
}

// Warnings lists pattern rules that will be skipped for missing g or m flags.
func (f *File) Warnings() []string {
	var warnings []string
	for _, def := range f.Defs {
		if def.Pattern == "" || def.Builtin != "" {
			continue
		}
		flags, err := match.ParseFlags(def.EffectiveFlags())
		if err != nil {
			continue
		}
		if flags&match.RequiredFlags != match.RequiredFlags {
			warnings = append(warnings, fmt.Sprintf("rule %q has flags %q: without g and m it matches nothing",
				def.Name, def.EffectiveFlags()))
		}
	}
	return warnings
}

// Names returns the declared rule names in order.
func (f *File) Names() []string {
	names := make([]string, len(f.Defs))
	for i, def := range f.Defs {
		names[i] = def.Name
	}
	return names
}

// HasRule reports whether a rule with the given name is declared.
func (f *File) HasRule(name string) bool {
	return slices.Contains(f.Names(), name)
}
