package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spanmerge/internal/rules"
)

const scenarioDir = "testdata/scenarios"

func TestScenarios(t *testing.T) {
	scenarios, err := LoadDir(scenarioDir)
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestLoadScenario_KeepsRuleOrder(t *testing.T) {
	s, err := LoadScenario(filepath.Join(scenarioDir, "comments.yaml"))
	require.NoError(t, err)

	names := make([]string, len(s.Rules))
	for i, d := range s.Rules {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"slashStar", "doubleSlash", "newlines"}, names)
	assert.Equal(t, "gm", s.Rules[2].EffectiveFlags())
	assert.Len(t, s.Expect, 3)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "name: x\ndescription: d\ntext: t\nexpects: []\n",
			wantErr: "field expects not found",
		},
		{
			name:    "missing name",
			content: "description: d\ntext: t\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: x\ntext: t\n",
			wantErr: "description is required",
		},
		{
			name:    "bad pattern",
			content: "name: x\ndescription: d\nrules:\n  a:\n    pattern: '('\n",
			wantErr: rules.ErrCodeBadPattern,
		},
		{
			name:    "unknown rule field",
			content: "name: x\ndescription: d\nrules:\n  a:\n    regex: 'a'\n",
			wantErr: "unknown rule field",
		},
		{
			name:    "unknown expected rule",
			content: "name: x\ndescription: d\nrules:\n  a:\n    pattern: 'a'\nexpect:\n  - {start: 0, end: 0, left: b}\n",
			wantErr: `unknown rule "b"`,
		},
		{
			name:    "inverted bounds",
			content: "name: x\ndescription: d\nexpect:\n  - {start: 3, end: 1}\n",
			wantErr: "start 3 is after end 1",
		},
		{
			name:    "diagnostic without code",
			content: "name: x\ndescription: d\ndiagnostics:\n  - {rule: a}\n",
			wantErr: "code is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadDir_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	content := "name: same\ndescription: d\ntext: t\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(content), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario name "same" already used by a.yaml`)
}

func TestRun_ReportsMismatches(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, `name: wrong
description: expectations that do not hold
text: "ab 12"
rules:
  letters:
    pattern: '[a-z]+'
  digits:
    pattern: '[0-9]+'
expect:
  - {start: 0, end: 2, left: digits}
diagnostics:
  - {rule: letters, code: MISSING_MODE}
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Groups, 2)

	joined := strings.Join(result.Errors, "\n")
	assert.Contains(t, joined, "expected 1 group(s), got 2: [[0,1]letters [3,4]digits]")
	assert.Contains(t, joined, "group 0: bounds: expected [0,2], got [0,1]")
	assert.Contains(t, joined, "group 0: left: expected digits, got letters")
	assert.Contains(t, joined, "expected diagnostic MISSING_MODE")
}

func TestRun_NoExpectationsOnlyRoundTrips(t *testing.T) {
	s := &Scenario{
		Name:        "free",
		Description: "no expectations",
		Text:        "x // y",
		Rules: RuleDefs{
			{Name: "comment", Pattern: `//(?<message>.*)`},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Groups, 1)
	assert.Equal(t, map[string]string{"message": " y"}, result.Groups[0].Left.Groups)
}

func TestRun_EmptyExpectMeansNoGroups(t *testing.T) {
	s := &Scenario{
		Name:        "none",
		Description: "expects nothing",
		Text:        "abc",
		Rules:       RuleDefs{{Name: "digits", Pattern: `[0-9]`}},
		Expect:      []ExpectedGroup{},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Groups)
}

func TestRun_InvalidRules(t *testing.T) {
	s := &Scenario{
		Name:        "invalid",
		Description: "bad builtin",
		Rules:       RuleDefs{{Name: "x", Builtin: "nope"}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), rules.ErrCodeUnknownBuiltin)
}

func TestSnapshot_Marshal(t *testing.T) {
	s := &Scenario{
		Name:        "snap",
		Description: "one digit",
		Text:        "a1",
		Rules:       RuleDefs{{Name: "d", Pattern: `[0-9]`}},
	}
	result, err := Run(s)
	require.NoError(t, err)

	snap := Snapshot{Name: s.Name, Groups: result.Groups, Diagnostics: result.Diagnostics}
	data, err := snap.Marshal()
	require.NoError(t, err)

	m := `{"end":1,"rule":"d","start":1,"value":"1"}`
	want := `{"diagnostics":[],"groups":[{"end":1,"left":` + m + `,"matches":[` + m + `],"right":` + m + `,"start":1}],"name":"snap"}`
	assert.Equal(t, want, string(data))
}
