package rules

import (
	"fmt"

	"github.com/roach88/spanmerge/internal/canon"
	"github.com/roach88/spanmerge/match"
)

// Build validates the file and compiles it into a RuleSet in declaration order.
func (f *File) Build() (match.RuleSet, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	set := make(match.RuleSet, 0, len(f.Defs))
	for _, def := range f.Defs {
		rule, err := def.compile()
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", def.Name, err)
		}
		set = set.Add(def.Name, rule)
	}
	return set, nil
}

func (d Definition) compile() (match.Rule, error) {
	if d.Builtin != "" {
		f, ok := Builtin(d.Builtin)
		if !ok {
			return nil, fmt.Errorf("unknown builtin %q", d.Builtin)
		}
		return f, nil
	}
	flags, err := match.ParseFlags(d.EffectiveFlags())
	if err != nil {
		return nil, err
	}
	p, err := match.Compile(d.Pattern, flags)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Hash returns a content hash of the definitions. Source lines are ignored,
// so reformatting a file keeps its hash.
func (f *File) Hash() (string, error) {
	defs := make([]any, len(f.Defs))
	for i, d := range f.Defs {
		obj := map[string]any{"name": d.Name}
		if d.Builtin != "" {
			obj["builtin"] = d.Builtin
		} else {
			obj["pattern"] = d.Pattern
			obj["flags"] = d.EffectiveFlags()
		}
		defs[i] = obj
	}
	return canon.Hash(canon.DomainRuleSet, defs)
}
