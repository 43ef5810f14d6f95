package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// DefaultFlags apply when a pattern rule does not name its flags.
const DefaultFlags = "gm"

// DefaultConfigFile is the rules file looked up under the XDG config dirs.
const DefaultConfigFile = "spanmerge/rules.yaml"

// Error codes for loading rule files.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeUnsupported = "E002" // Unknown file extension
	ErrCodeParseFailed = "E004" // File does not parse
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeNoRules     = "E007" // File declares no rules
)

// Definition is one named rule as declared in a file.
type Definition struct {
	Name    string  `json:"name"`
	Pattern string  `json:"pattern,omitempty"`
	Flags   *string `json:"flags,omitempty"`
	Builtin string  `json:"builtin,omitempty"`

	// Line is the 1-based source line, 0 when unknown.
	Line int `json:"line,omitempty"`
}

// EffectiveFlags returns the declared flags or DefaultFlags.
func (d Definition) EffectiveFlags() string {
	if d.Flags == nil {
		return DefaultFlags
	}
	return *d.Flags
}

// File is a loaded rules file.
type File struct {
	Path string
	Defs []Definition
}

// LoadError represents an error that occurred while loading a rules file.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Line    int
	Err     error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" && e.Line > 0 {
		msg = fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	} else if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a rules file, choosing the format from its extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: "rules file not found", Path: path}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "cannot read rules file", Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes rules from data; path selects the format and labels errors.
func Parse(path string, data []byte) (*File, error) {
	var defs []Definition
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		defs, err = parseYAML(data)
	case ".toml":
		defs, err = parseTOML(data)
	case ".cue":
		defs, err = parseCUE(path, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported rules format %q (want .yaml, .yml, .toml or .cue)", ext),
			Path:    path,
		}
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "cannot parse rules", Path: path, Err: err}
	}
	if len(defs) == 0 {
		return nil, &LoadError{Code: ErrCodeNoRules, Message: "no rules declared", Path: path}
	}

	return &File{Path: path, Defs: defs}, nil
}

// DefaultPath finds the user's rules file in the XDG config directories.
func DefaultPath() (string, error) {
	path, err := xdg.SearchConfigFile(DefaultConfigFile)
	if err != nil {
		return "", &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("no --rules given and %s not found in XDG config dirs", DefaultConfigFile),
			Err:     err,
		}
	}
	return path, nil
}
