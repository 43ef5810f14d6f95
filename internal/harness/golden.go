package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/spanmerge/internal/canon"
	"github.com/roach88/spanmerge/match"
)

// Snapshot is the golden form of a scenario result.
type Snapshot struct {
	Name        string
	Groups      []match.MatchGroup
	Diagnostics []Diagnostic
}

// toCanonicalMap converts a Snapshot for canonical JSON serialization.
// Diagnostic messages are left out so rewording a log line keeps the files.
func (s *Snapshot) toCanonicalMap() map[string]any {
	diagnostics := make([]any, len(s.Diagnostics))
	for i, d := range s.Diagnostics {
		entry := map[string]any{"level": d.Level}
		if d.Rule != "" {
			entry["rule"] = d.Rule
		}
		if d.Code != "" {
			entry["code"] = d.Code
		}
		diagnostics[i] = entry
	}

	return map[string]any{
		"name":        s.Name,
		"groups":      canon.GroupsValue(s.Groups),
		"diagnostics": diagnostics,
	}
}

// Marshal returns the snapshot's canonical JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return canon.Marshal(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the golden file for
// scenarioName without re-running it.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := Snapshot{
		Name:        scenarioName,
		Groups:      result.Groups,
		Diagnostics: result.Diagnostics,
	}
	data, err := snapshot.Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
