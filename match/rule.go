package match

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Rule produces the matches of one named rule over a text.
//
// Matches from a single rule must be non-decreasing in Start and must not
// overlap each other. Only the Pattern flag check is enforced; a rule that
// breaks the contract yields undefined clustering.
type Rule interface {
	Matches(text string) iter.Seq[Match]
}

// validator is implemented by rules that can be misconfigured.
type validator interface {
	Validate() error
}

// Func is a custom rule.
type Func func(text string) iter.Seq[Match]

// Matches calls f.
func (f Func) Matches(text string) iter.Seq[Match] {
	return f(text)
}

// Flag selects pattern iteration and matching modes.
type Flag uint8

const (
	// Global finds every non-overlapping occurrence across the text.
	Global Flag = 1 << iota
	// Multiline makes ^ and $ match at line boundaries.
	Multiline
	// IgnoreCase matches case-insensitively.
	IgnoreCase
	// DotAll lets . match newlines.
	DotAll
)

// RequiredFlags must be set on every pattern rule.
const RequiredFlags = Global | Multiline

var flagLetters = []struct {
	letter byte
	flag   Flag
}{
	{'g', Global},
	{'i', IgnoreCase},
	{'m', Multiline},
	{'s', DotAll},
}

// ParseFlags parses flag letters such as "gm" or "gim".
func ParseFlags(s string) (Flag, error) {
	var flags Flag
	for i := 0; i < len(s); i++ {
		found := false
		for _, fl := range flagLetters {
			if s[i] == fl.letter {
				flags |= fl.flag
				found = true
				break
			}
		}
		if !found {
			return 0, &RuleError{
				Code:    ErrCodeBadFlags,
				Message: fmt.Sprintf("unknown flag %q in %q", s[i], s),
			}
		}
	}
	return flags, nil
}

// String returns the flag letters in canonical order.
func (f Flag) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b.WriteByte(fl.letter)
		}
	}
	return b.String()
}

// Pattern is a compiled regular expression rule.
type Pattern struct {
	expr  string
	flags Flag
	re    *regexp2.Regexp
	names []string // named captures, nil when there are none
}

// Compile compiles expr with the given flags.
//
// The syntax is that of github.com/dlclark/regexp2: named captures are
// written (?<name>...), and \s, \d and [\s\S] behave as in JavaScript.
func Compile(expr string, flags Flag) (*Pattern, error) {
	opts := regexp2.None
	if flags&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if flags&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if flags&DotAll != 0 {
		opts |= regexp2.Singleline
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, &RuleError{
			Code:    ErrCodeBadPattern,
			Message: "expression does not compile",
			Pattern: expr,
			Err:     err,
		}
	}

	var names []string
	for _, name := range re.GetGroupNames() {
		// Unnamed groups are reported by number.
		if _, err := strconv.Atoi(name); err == nil {
			continue
		}
		names = append(names, name)
	}

	return &Pattern{expr: expr, flags: flags, re: re, names: names}, nil
}

// MustCompile is like Compile but panics on error.
// Use only in tests or for expressions known to be valid.
func MustCompile(expr string, flags Flag) *Pattern {
	p, err := Compile(expr, flags)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern in /expr/flags form.
func (p *Pattern) String() string {
	return "/" + p.expr + "/" + p.flags.String()
}

// Expr returns the source expression.
func (p *Pattern) Expr() string {
	return p.expr
}

// Flags returns the pattern's flags.
func (p *Pattern) Flags() Flag {
	return p.flags
}

// SetTimeout bounds the time spent on a single match attempt.
// Zero means no limit.
func (p *Pattern) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = time.Duration(math.MaxInt64)
	}
	p.re.MatchTimeout = d
}

// Validate reports a missing Global or Multiline flag.
func (p *Pattern) Validate() error {
	if p == nil || p.re == nil {
		return &RuleError{Code: ErrCodeNilRule, Message: "pattern is not compiled"}
	}
	if p.flags&RequiredFlags != RequiredFlags {
		return &RuleError{
			Code:    ErrCodeMissingMode,
			Message: "pattern rules must have the global and multiline flags",
			Pattern: p.String(),
		}
	}
	return nil
}

// Matches yields every non-empty occurrence of the pattern in text.
// A match error such as a timeout ends the sequence early; use MatchRule to
// have it reported.
func (p *Pattern) Matches(text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		_ = p.scan(text, yield)
	}
}

// scan walks the occurrences, converting regexp2's rune indexes to byte offsets.
func (p *Pattern) scan(text string, yield func(Match) bool) error {
	pos := offsets{text: text}

	m, err := p.re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = p.re.FindNextMatch(m) {
		if m.Length == 0 {
			continue
		}

		start := pos.byteAt(m.Index)
		end := pos.byteAt(m.Index + m.Length)
		if !yield(Match{
			Start:  start,
			End:    end - 1,
			Value:  text[start:end],
			Groups: p.captures(m),
		}) {
			return nil
		}
	}
	if err != nil {
		return &RuleError{
			Code:    ErrCodeBadPattern,
			Message: "match failed",
			Pattern: p.String(),
			Err:     err,
		}
	}
	return nil
}

func (p *Pattern) captures(m *regexp2.Match) map[string]string {
	if p.names == nil {
		return nil
	}
	groups := make(map[string]string, len(p.names))
	for _, name := range p.names {
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		groups[name] = g.String()
	}
	return groups
}

// offsets maps increasing rune indexes to byte offsets in a single pass.
type offsets struct {
	text  string
	runes int
	bytes int
}

func (o *offsets) byteAt(runeIndex int) int {
	for o.runes < runeIndex && o.bytes < len(o.text) {
		_, size := utf8.DecodeRuneInString(o.text[o.bytes:])
		o.bytes += size
		o.runes++
	}
	return o.bytes
}
