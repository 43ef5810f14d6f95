// Package rules loads named rule definitions from YAML, TOML or CUE files
// and builds them into a match.RuleSet.
//
// Declaration order is preserved in every format because it decides the
// seeding precedence of the sweep.
//
// YAML:
//
//	rules:
//	  comment:
//	    pattern: '(/\*[\s\S]*?\*/)(\n?)'
//	  newlines:
//	    pattern: '\n'
//	    flags: gm
//	  letters:
//	    builtin: chars
//
// TOML:
//
//	[[rule]]
//	name = "newlines"
//	pattern = '\n'
//
// CUE:
//
//	rules: newlines: pattern: "\\n"
//
// Flags default to "gm" when omitted. A pattern with explicit flags that lack
// g or m still loads; the sweep then logs a warning and skips it.
package rules
