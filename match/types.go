package match

import "maps"

// Match is one occurrence of a rule in the text.
// Start and End are inclusive byte offsets.
type Match struct {
	Start  int               `json:"start"`
	End    int               `json:"end"`
	Value  string            `json:"value"`
	Groups map[string]string `json:"groups,omitempty"`
}

// RuleMatch is a Match attributed to the rule that produced it.
type RuleMatch struct {
	Rule string `json:"rule"`
	Match
}

// MatchGroup is a cluster of overlapping matches drawn from any rule.
//
// Left is the match with the smallest start (ties: larger end).
// Right is the match with the largest end (ties: smaller start).
type MatchGroup struct {
	Start   int         `json:"start"`
	End     int         `json:"end"`
	Left    RuleMatch   `json:"left"`
	Right   RuleMatch   `json:"right"`
	Matches []RuleMatch `json:"matches"`
}

// Len returns the number of bytes covered by the match.
func (m Match) Len() int {
	return m.End - m.Start + 1
}

// Overlaps reports whether m touches the inclusive interval [start, end].
func (m Match) Overlaps(start, end int) bool {
	return m.Start <= end && m.End >= start
}

// Rules returns the distinct rule names in the group, in match order.
func (g MatchGroup) Rules() []string {
	seen := make(map[string]bool, len(g.Matches))
	var names []string
	for _, m := range g.Matches {
		if !seen[m.Rule] {
			seen[m.Rule] = true
			names = append(names, m.Rule)
		}
	}
	return names
}

func newRuleMatch(rule string, m Match) RuleMatch {
	return RuleMatch{
		Rule: rule,
		Match: Match{
			Start:  m.Start,
			End:    m.End,
			Value:  m.Value,
			Groups: maps.Clone(m.Groups),
		},
	}
}
