package match

import (
	"iter"
	"slices"
	"strings"
)

var (
	slashStarComments   = MustCompile(`(/\*[\s\S]*?\*/)(\n?)`, RequiredFlags)
	doubleSlashComments = MustCompile(`(//)(?<message>.*)(\n?)`, RequiredFlags)
	newlines            = MustCompile(`\n`, RequiredFlags)
	spaces              = MustCompile(`\s+`, RequiredFlags)
	numbers             = MustCompile(`[0-9]+`, RequiredFlags)
)

const commentText = "/**\n * JSDoc\n * Comment\n */\nText A\n/* // Comment */ Text\nText B"

func collect[T any](seq iter.Seq[T]) []T {
	return slices.Collect(seq)
}

// span builds a match over [start, end] with a placeholder value.
func span(start, end int) Match {
	n := end - start + 1
	if n < 1 {
		n = 1
	}
	return Match{Start: start, End: end, Value: strings.Repeat("x", n)}
}

// fixed is a custom rule yielding the given matches regardless of text.
func fixed(ms ...Match) Func {
	return func(string) iter.Seq[Match] {
		return slices.Values(ms)
	}
}

func ruleMatch(rule string, m Match) RuleMatch {
	return RuleMatch{Rule: rule, Match: m}
}
