// Package store provides SQLite-backed storage for recorded match runs.
//
// A run is one invocation of the sweep over one text with one rule set:
//   - runs: identity, content hashes of the rules and text, rule names
//   - match_groups: the emitted groups in order, with Left/Right indexes
//   - group_matches: every RuleMatch of every group, captures as canonical JSON
//
// The text itself is not stored, only its hash and length.
//
// # Ordering
//
// Runs carry a seq logical clock assigned at write time. Listing uses
// ORDER BY seq ASC, id ASC COLLATE BINARY so results are identical across
// machines regardless of wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
