package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	rulesPath := writeFile(t, t.TempDir(), "rules.yaml", numbersRules)

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), "", "--rules", rulesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 2 rule(s) valid")
}

func TestValidate_ValidJSON(t *testing.T) {
	rulesPath := writeFile(t, t.TempDir(), "rules.cue", `rules: {
	words: builtin: "words"
	digits: pattern: "[0-9]+"
}
`)

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "json"}), "", "--rules", rulesPath)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, []string{"words", "digits"}, resp.Data.Rules)
	assert.Len(t, resp.Data.Hash, 64)
}

func TestValidate_Warnings(t *testing.T) {
	rulesPath := writeFile(t, t.TempDir(), "rules.yaml", "rules:\n  once:\n    pattern: 'a'\n    flags: 'i'\n")

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), "", "--rules", rulesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: rule \"once\"")
}

func TestValidate_Errors(t *testing.T) {
	rulesPath := writeFile(t, t.TempDir(), "rules.yaml", `rules:
  bad:
    pattern: '(unclosed'
  flags:
    pattern: 'x'
    flags: 'gq'
  nothing:
    builtin: 'nope'
`)

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), "", "--rules", rulesPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "E104")
	assert.Contains(t, out, "E105")
	assert.Contains(t, out, "E106")
}

func TestValidate_ErrorsJSON(t *testing.T) {
	rulesPath := writeFile(t, t.TempDir(), "rules.yaml", "rules:\n  bad:\n    pattern: '(unclosed'\n")

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "json"}), "", "--rules", rulesPath)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E104", resp.Error.Code)
}

func TestValidate_NotFound(t *testing.T) {
	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), "",
		"--rules", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, out, "not found")
}

func TestValidate_UnsupportedFormat(t *testing.T) {
	rulesPath := writeFile(t, t.TempDir(), "rules.json", "{}")

	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), "", "--rules", rulesPath)
	require.Error(t, err)
	assert.Contains(t, out, "E002")
}
