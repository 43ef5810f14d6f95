// Package testutil holds deterministic stand-ins for tests.
package testutil

import (
	"fmt"
	"sync"
)

// FixedRunIDGenerator returns predetermined run IDs.
//
// The first call returns the prefix itself, later calls append a counter:
// "run", "run-2", "run-3". Recording the same command twice therefore
// produces distinct runs with predictable IDs.
//
// Thread-safety: safe for concurrent use.
type FixedRunIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewFixedRunIDGenerator creates a generator for prefix.
// If prefix is empty, it defaults to "test-run".
func NewFixedRunIDGenerator(prefix string) *FixedRunIDGenerator {
	if prefix == "" {
		prefix = "test-run"
	}
	return &FixedRunIDGenerator{prefix: prefix}
}

// Generate returns the next run ID.
func (g *FixedRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	if g.n == 1 {
		return g.prefix
	}
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
