package canon

import (
	"github.com/roach88/spanmerge/match"
)

// MatchMap converts a RuleMatch to its canonical map form.
// Captures are only present when the rule defines named groups.
func MatchMap(m match.RuleMatch) map[string]any {
	out := map[string]any{
		"rule":  m.Rule,
		"start": m.Start,
		"end":   m.End,
		"value": m.Value,
	}
	if m.Groups != nil {
		out["groups"] = m.Groups
	}
	return out
}

// GroupMap converts a MatchGroup to its canonical map form.
func GroupMap(g match.MatchGroup) map[string]any {
	matches := make([]any, len(g.Matches))
	for i, m := range g.Matches {
		matches[i] = MatchMap(m)
	}
	return map[string]any{
		"start":   g.Start,
		"end":     g.End,
		"left":    MatchMap(g.Left),
		"right":   MatchMap(g.Right),
		"matches": matches,
	}
}

// GroupsValue converts a slice of groups to a canonical array.
func GroupsValue(groups []match.MatchGroup) []any {
	out := make([]any, len(groups))
	for i, g := range groups {
		out[i] = GroupMap(g)
	}
	return out
}

// GroupsHash hashes the canonical form of groups.
func GroupsHash(groups []match.MatchGroup) (string, error) {
	return Hash(DomainGroups, GroupsValue(groups))
}
