package harness

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"github.com/rs/zerolog"

	"github.com/roach88/spanmerge/internal/canon"
	"github.com/roach88/spanmerge/internal/store"
	"github.com/roach88/spanmerge/match"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Build the rule set from the scenario's definitions
//  2. Sweep the text, capturing diagnostics at warn level
//  3. Record the run in the store and read it back
//  4. Check expectations against the read-back groups
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	file := scenario.ruleFile()
	set, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build rules: %w", err)
	}

	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf).Level(zerolog.WarnLevel)
	groups := slices.Collect(match.MatchAllRules(scenario.Text, set, match.WithLogger(logger)))

	diagnostics, err := parseDiagnostics(logBuf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to read diagnostics: %w", err)
	}

	stored, err := roundTrip(ctx, scenario, file.Names(), groups)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Groups = stored
	result.Diagnostics = diagnostics

	if !reflect.DeepEqual(normalizeGroups(groups), stored) {
		result.AddError("groups read back from the store differ from the sweep output")
	}
	for _, msg := range checkGroups(stored, scenario.Expect) {
		result.AddError(msg)
	}
	for _, msg := range checkDiagnostics(diagnostics, scenario.Diagnostics) {
		result.AddError(msg)
	}

	return result, nil
}

// roundTrip writes the groups as one run and returns what the store reads back.
func roundTrip(ctx context.Context, scenario *Scenario, names []string, groups []match.MatchGroup) ([]match.MatchGroup, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	hash, err := scenario.ruleFile().Hash()
	if err != nil {
		return nil, fmt.Errorf("failed to hash rules: %w", err)
	}

	run := store.Run{
		ID:          scenario.Name,
		RuleSetHash: hash,
		TextHash:    canon.TextHash(scenario.Text),
		TextLength:  len(scenario.Text),
		Rules:       names,
		Groups:      groups,
	}
	if _, err := st.WriteRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	read, err := st.ReadRun(ctx, scenario.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read run: %w", err)
	}
	return normalizeGroups(read.Groups), nil
}

// normalizeGroups returns a non-nil slice so empty runs compare equal.
func normalizeGroups(groups []match.MatchGroup) []match.MatchGroup {
	if groups == nil {
		return []match.MatchGroup{}
	}
	return groups
}

func parseDiagnostics(data []byte) ([]Diagnostic, error) {
	var out []Diagnostic
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var d Diagnostic
		if err := json.Unmarshal(line, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, sc.Err()
}
