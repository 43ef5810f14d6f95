package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/spanmerge/internal/rules"
)

// Scenario defines one sweep over a text with its expected groups.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Text is the input the rules run over.
	Text string `yaml:"text"`

	// Rules is the ordered mapping of rule names to rule definitions, in the
	// same form as a YAML rules file.
	Rules RuleDefs `yaml:"rules"`

	// Expect lists the expected groups in order. When nil, only the golden
	// comparison and the store round trip are checked.
	Expect []ExpectedGroup `yaml:"expect,omitempty"`

	// Diagnostics lists warnings the sweep must log, e.g. for a pattern
	// without the g and m flags.
	Diagnostics []ExpectedDiagnostic `yaml:"diagnostics,omitempty"`
}

// RuleDefs is an ordered list of rule definitions decoded from a YAML mapping.
type RuleDefs []rules.Definition

// UnmarshalYAML keeps the mapping's key order.
func (r *RuleDefs) UnmarshalYAML(node *yaml.Node) error {
	defs, err := rules.DecodeYAMLRules(node)
	if err != nil {
		return err
	}
	*r = defs
	return nil
}

// ExpectedGroup is a subset match against one emitted group.
// Empty Left/Right and nil Rules are not checked.
type ExpectedGroup struct {
	Start int      `yaml:"start"`
	End   int      `yaml:"end"`
	Left  string   `yaml:"left,omitempty"`
	Right string   `yaml:"right,omitempty"`
	Rules []string `yaml:"rules,omitempty"`
}

// ExpectedDiagnostic names a warning by rule and code.
type ExpectedDiagnostic struct {
	Rule string `yaml:"rule"`
	Code string `yaml:"code"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every .yaml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	names := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, ok := names[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", filepath.Base(path), s.Name, prev)
		}
		names[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if errs := s.ruleFile().Validate(); len(errs) > 0 {
		return errs
	}

	for i, g := range s.Expect {
		if g.Start > g.End {
			return fmt.Errorf("expect[%d]: start %d is after end %d", i, g.Start, g.End)
		}
		for _, name := range append([]string{g.Left, g.Right}, g.Rules...) {
			if name != "" && !s.ruleFile().HasRule(name) {
				return fmt.Errorf("expect[%d]: unknown rule %q", i, name)
			}
		}
	}

	for i, d := range s.Diagnostics {
		if d.Code == "" {
			return fmt.Errorf("diagnostics[%d]: code is required", i)
		}
	}

	return nil
}

func (s *Scenario) ruleFile() *rules.File {
	return &rules.File{Path: s.Name, Defs: s.Rules}
}
