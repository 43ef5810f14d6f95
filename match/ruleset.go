package match

import (
	"maps"
	"slices"
)

// NamedRule pairs a rule with the name reported in RuleMatch.Rule.
type NamedRule struct {
	Name string
	Rule Rule
}

// RuleSet is an ordered collection of named rules.
// Order decides which rule seeds the first bound when several rules start
// at the same position; it does not otherwise affect the groups.
type RuleSet []NamedRule

// FromMap builds a RuleSet ordered by rule name.
func FromMap(rules map[string]Rule) RuleSet {
	set := make(RuleSet, 0, len(rules))
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		set = append(set, NamedRule{Name: name, Rule: rules[name]})
	}
	return set
}

// Add appends a rule and returns the extended set.
func (s RuleSet) Add(name string, rule Rule) RuleSet {
	return append(s, NamedRule{Name: name, Rule: rule})
}

// Names returns the rule names in order.
func (s RuleSet) Names() []string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = r.Name
	}
	return names
}
