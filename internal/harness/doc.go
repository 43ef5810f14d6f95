// Package harness runs match-merging scenarios described in YAML files.
//
// A scenario names a text, an ordered mapping of rules and the groups the
// sweep is expected to produce:
//
//	name: numbers
//	description: digits and spaces never overlap
//	text: "   11  22 "
//	rules:
//	  spaces:
//	    pattern: '\s+'
//	  numbers:
//	    pattern: '[0-9]+'
//	expect:
//	  - {start: 0, end: 2, left: spaces, right: spaces}
//	  - {start: 3, end: 4, left: numbers, right: numbers, rules: [numbers]}
//
// Run executes the sweep, records the groups in a fresh in-memory store,
// reads them back, and checks both the expectations and the round trip.
// RunWithGolden additionally compares the canonical JSON of the groups
// against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
