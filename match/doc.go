// Package match merges the matches of several named rules over one text into
// ordered clusters of overlapping matches.
//
// A Rule is either a compiled *Pattern or a Func producing matches itself.
// MatchRule adapts a single rule into a lazy sequence of Match values;
// MatchAllRules runs every rule of a RuleSet side by side and yields one
// MatchGroup per cluster of mutually overlapping matches, left to right.
//
// ARCHITECTURE:
//
// Both layers are pull-based iter.Seq values. Nothing is computed until the
// caller ranges over the sequence, and a rule stream is only pulled when its
// current match has joined the cluster being assembled. Each range owns its
// own cursor table, so the same sequence can be ranged again and yields the
// same groups.
//
// Sweep:
//  1. Prime: pull one match per rule (RuleSet order) and seed the bound.
//  2. Scan: every rule whose current match overlaps the bound contributes it
//     and is advanced; the others are folded into the next bound.
//  3. Emit the group and move to the next bound, or stop when a pass
//     contributes nothing.
//
// OFFSETS:
//
// Start and End are byte offsets into the text and both are inclusive:
// for pattern rules Value == text[Start:End+1].
//
// DIAGNOSTICS:
//
// A pattern missing the Global or Multiline flag is not an error for the
// merge. It is logged as a warning (code MISSING_MODE) and contributes no
// matches, so one misconfigured rule does not abort the others.
package match
