package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/spanmerge/match"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func rm(rule string, start, end int, value string) match.RuleMatch {
	return match.RuleMatch{Rule: rule, Match: match.Match{Start: start, End: end, Value: value}}
}

// createTestRun creates a run with two groups, one carrying captures.
func createTestRun(id string) Run {
	block := rm("block", 0, 5, "/* */\n")
	nl := rm("newlines", 5, 5, "\n")
	line := rm("line", 6, 9, "// x")
	line.Groups = map[string]string{"message": " x"}

	return Run{
		ID:          id,
		RuleSetHash: "ruleset-hash",
		TextHash:    "text-hash",
		TextLength:  10,
		Rules:       []string{"block", "line", "newlines"},
		Groups: []match.MatchGroup{
			{Start: 0, End: 5, Left: block, Right: block, Matches: []match.RuleMatch{block, nl}},
			{Start: 6, End: 9, Left: line, Right: line, Matches: []match.RuleMatch{line}},
		},
	}
}
