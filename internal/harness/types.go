package harness

import (
	"github.com/roach88/spanmerge/match"
)

// Diagnostic is a warning logged by the sweep while running a scenario.
type Diagnostic struct {
	Level   string `json:"level"`
	Rule    string `json:"rule,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation matched and the
	// groups survived the store round trip unchanged.
	Pass bool `json:"pass"`

	// Groups are the groups read back from the store, in emission order.
	Groups []match.MatchGroup `json:"groups"`

	// Diagnostics are the warnings the sweep logged.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Groups: []match.MatchGroup{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
