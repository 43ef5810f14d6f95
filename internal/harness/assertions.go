package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/spanmerge/match"
)

// AssertionError describes one group that did not match its expectation.
type AssertionError struct {
	Index    int    // Group index
	Field    string // start, end, left, right or rules
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("group %d: %s: expected %s, got %s", e.Index, e.Field, e.Expected, e.Actual)
}

// checkGroups compares groups against the expectations. A nil expect skips
// the check; an empty one asserts there are no groups.
func checkGroups(groups []match.MatchGroup, expect []ExpectedGroup) []string {
	if expect == nil {
		return nil
	}

	var errs []string
	if len(groups) != len(expect) {
		errs = append(errs, fmt.Sprintf("expected %d group(s), got %d: %s",
			len(expect), len(groups), describeGroups(groups)))
	}

	for i := range min(len(groups), len(expect)) {
		for _, err := range checkGroup(i, groups[i], expect[i]) {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func checkGroup(i int, g match.MatchGroup, want ExpectedGroup) []*AssertionError {
	var errs []*AssertionError
	add := func(field, expected, actual string) {
		errs = append(errs, &AssertionError{Index: i, Field: field, Expected: expected, Actual: actual})
	}

	if g.Start != want.Start || g.End != want.End {
		add("bounds", fmt.Sprintf("[%d,%d]", want.Start, want.End), fmt.Sprintf("[%d,%d]", g.Start, g.End))
	}
	if want.Left != "" && g.Left.Rule != want.Left {
		add("left", want.Left, g.Left.Rule)
	}
	if want.Right != "" && g.Right.Rule != want.Right {
		add("right", want.Right, g.Right.Rule)
	}
	if want.Rules != nil && !slices.Equal(g.Rules(), want.Rules) {
		add("rules", fmt.Sprint(want.Rules), fmt.Sprint(g.Rules()))
	}
	return errs
}

// checkDiagnostics requires every expected diagnostic to have been logged.
func checkDiagnostics(got []Diagnostic, expect []ExpectedDiagnostic) []string {
	var errs []string
	for _, want := range expect {
		found := slices.ContainsFunc(got, func(d Diagnostic) bool {
			return d.Code == want.Code && (want.Rule == "" || d.Rule == want.Rule)
		})
		if !found {
			errs = append(errs, fmt.Sprintf("expected diagnostic %s for rule %q, got %v", want.Code, want.Rule, got))
		}
	}
	return errs
}

func describeGroups(groups []match.MatchGroup) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("[%d,%d]%s", g.Start, g.End, strings.Join(g.Rules(), "+"))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
