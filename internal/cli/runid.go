package cli

import "github.com/google/uuid"

// RunIDGenerator produces IDs for recorded runs.
// Implemented by UUIDv7Generator (production) and
// testutil.FixedRunIDGenerator (tests).
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs, so IDs sort by
// creation time like the store's seq.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

func runIDGenerator(opts *RootOptions) RunIDGenerator {
	if opts.RunIDs != nil {
		return opts.RunIDs
	}
	return UUIDv7Generator{}
}
