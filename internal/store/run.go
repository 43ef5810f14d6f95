package store

import (
	"github.com/roach88/spanmerge/match"
)

// Run is one recorded invocation of the sweep.
type Run struct {
	ID          string
	Seq         int64 // assigned by WriteRun
	RuleSetHash string
	TextHash    string
	TextLength  int
	Rules       []string
	Groups      []match.MatchGroup
}

// RunSummary is a run without its groups.
type RunSummary struct {
	ID          string   `json:"id"`
	Seq         int64    `json:"seq"`
	RuleSetHash string   `json:"ruleset_hash"`
	TextHash    string   `json:"text_hash"`
	TextLength  int      `json:"text_length"`
	Rules       []string `json:"rules"`
	GroupCount  int      `json:"group_count"`
}

// Summary returns the run's summary.
func (r Run) Summary() RunSummary {
	return RunSummary{
		ID:          r.ID,
		Seq:         r.Seq,
		RuleSetHash: r.RuleSetHash,
		TextHash:    r.TextHash,
		TextLength:  r.TextLength,
		Rules:       r.Rules,
		GroupCount:  len(r.Groups),
	}
}
