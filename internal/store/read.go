package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/spanmerge/match"
)

// ErrRunNotFound is returned by ReadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns summaries of all runs.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, ruleset_hash, text_hash, text_length, rule_names, group_count
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a run with all of its groups.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, ruleset_hash, text_hash, text_length, rule_names, group_count
		FROM runs
		WHERE id = ?
	`, id)
	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, err
	}

	groups, err := s.readGroups(ctx, id)
	if err != nil {
		return Run{}, err
	}
	if len(groups) != sum.GroupCount {
		return Run{}, fmt.Errorf("read run %s: found %d groups, expected %d", id, len(groups), sum.GroupCount)
	}

	return Run{
		ID:          sum.ID,
		Seq:         sum.Seq,
		RuleSetHash: sum.RuleSetHash,
		TextHash:    sum.TextHash,
		TextLength:  sum.TextLength,
		Rules:       sum.Rules,
		Groups:      groups,
	}, nil
}

type groupRow struct {
	group    match.MatchGroup
	leftIdx  int
	rightIdx int
}

func (s *Store) readGroups(ctx context.Context, runID string) ([]match.MatchGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, start_pos, end_pos, left_idx, right_idx
		FROM match_groups
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}

	var pending []groupRow
	for rows.Next() {
		var idx int
		var gr groupRow
		if err := rows.Scan(&idx, &gr.group.Start, &gr.group.End, &gr.leftIdx, &gr.rightIdx); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan group: %w", err)
		}
		pending = append(pending, gr)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	rows.Close()

	groups := make([]match.MatchGroup, 0, len(pending))
	for gi, gr := range pending {
		matches, err := s.readMatches(ctx, runID, gi)
		if err != nil {
			return nil, err
		}
		if gr.leftIdx >= len(matches) || gr.rightIdx >= len(matches) {
			return nil, fmt.Errorf("group %d: representative index out of range", gi)
		}
		g := gr.group
		g.Matches = matches
		g.Left = matches[gr.leftIdx]
		g.Right = matches[gr.rightIdx]
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *Store) readMatches(ctx context.Context, runID string, groupIdx int) ([]match.RuleMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rule, start_pos, end_pos, value, captures
		FROM group_matches
		WHERE run_id = ? AND group_idx = ?
		ORDER BY idx ASC
	`, runID, groupIdx)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []match.RuleMatch
	for rows.Next() {
		var m match.RuleMatch
		var captures sql.NullString
		if err := rows.Scan(&m.Rule, &m.Start, &m.End, &m.Value, &captures); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if m.Groups, err = unmarshalCaptures(captures); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (RunSummary, error) {
	var sum RunSummary
	var rulesJSON string
	err := row.Scan(&sum.ID, &sum.Seq, &sum.RuleSetHash, &sum.TextHash, &sum.TextLength, &rulesJSON, &sum.GroupCount)
	if errors.Is(err, sql.ErrNoRows) {
		return RunSummary{}, err
	}
	if err != nil {
		return RunSummary{}, fmt.Errorf("scan run: %w", err)
	}
	if sum.Rules, err = unmarshalRuleNames(rulesJSON); err != nil {
		return RunSummary{}, err
	}
	return sum, nil
}
