package rules

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/spanmerge/match"
)

var builtins = map[string]match.Func{
	"chars": chars,
	"lines": lines,
	"words": words,
}

// Builtin returns the custom rule registered under name.
func Builtin(name string) (match.Func, bool) {
	f, ok := builtins[name]
	return f, ok
}

// BuiltinNames returns the registered builtin names, sorted.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// chars yields one match per rune.
func chars(text string) iter.Seq[match.Match] {
	return func(yield func(match.Match) bool) {
		for i := 0; i < len(text); {
			_, size := utf8.DecodeRuneInString(text[i:])
			if !yield(match.Match{Start: i, End: i + size - 1, Value: text[i : i+size]}) {
				return
			}
			i += size
		}
	}
}

// lines yields each non-empty line without its terminator.
func lines(text string) iter.Seq[match.Match] {
	return func(yield func(match.Match) bool) {
		start := 0
		for start < len(text) {
			end := strings.IndexByte(text[start:], '\n')
			next := start + end + 1
			if end < 0 {
				end = len(text) - start
				next = len(text)
			}
			line := strings.TrimSuffix(text[start:start+end], "\r")
			if line != "" {
				if !yield(match.Match{Start: start, End: start + len(line) - 1, Value: line}) {
					return
				}
			}
			start = next
		}
	}
}

// words yields maximal runs of letters and digits.
func words(text string) iter.Seq[match.Match] {
	return func(yield func(match.Match) bool) {
		start := -1
		for i, r := range text {
			inWord := unicode.IsLetter(r) || unicode.IsDigit(r)
			switch {
			case inWord && start < 0:
				start = i
			case !inWord && start >= 0:
				if !yield(match.Match{Start: start, End: i - 1, Value: text[start:i]}) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(match.Match{Start: start, End: len(text) - 1, Value: text[start:]})
		}
	}
}
