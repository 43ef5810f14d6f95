package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/spanmerge/match"
)

// ErrEmptyRunID is returned when a run has no ID.
var ErrEmptyRunID = errors.New("run id is required")

// WriteRun records a run with all of its groups in one transaction and
// returns the assigned seq.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same run ID
// again leaves the first record untouched and returns its seq.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	if run.ID == "" {
		return 0, fmt.Errorf("write run: %w", ErrEmptyRunID)
	}

	rulesJSON, err := marshalRuleNames(run.Rules)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&existing)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("write run: lookup: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, ruleset_hash, text_hash, text_length, rule_names, group_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		seq,
		run.RuleSetHash,
		run.TextHash,
		run.TextLength,
		rulesJSON,
		len(run.Groups),
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	for gi, g := range run.Groups {
		if err := writeGroup(ctx, tx, run.ID, gi, g); err != nil {
			return 0, fmt.Errorf("write run: group %d: %w", gi, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

func writeGroup(ctx context.Context, tx *sql.Tx, runID string, gi int, g match.MatchGroup) error {
	leftIdx := slices.IndexFunc(g.Matches, func(m match.RuleMatch) bool { return sameMatch(m, g.Left) })
	rightIdx := slices.IndexFunc(g.Matches, func(m match.RuleMatch) bool { return sameMatch(m, g.Right) })
	if leftIdx < 0 || rightIdx < 0 {
		return fmt.Errorf("left/right not among the group's matches")
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO match_groups (run_id, idx, start_pos, end_pos, left_idx, right_idx)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, gi, g.Start, g.End, leftIdx, rightIdx)
	if err != nil {
		return err
	}

	for mi, m := range g.Matches {
		captures, err := marshalCaptures(m.Groups)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO group_matches (run_id, group_idx, idx, rule, start_pos, end_pos, value, captures)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, gi, mi, m.Rule, m.Start, m.End, m.Value, captures)
		if err != nil {
			return err
		}
	}
	return nil
}

// sameMatch compares identity fields; captures are ignored because a rule
// yields at most one match per span.
func sameMatch(a, b match.RuleMatch) bool {
	return a.Rule == b.Rule && a.Start == b.Start && a.End == b.End && a.Value == b.Value
}
