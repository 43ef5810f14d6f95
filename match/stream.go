package match

import (
	"errors"
	"iter"
)

// MatchRule adapts rule into a lazy sequence of matches over text.
//
// A pattern rule without the Global and Multiline flags logs a warning and
// yields nothing. Zero-length pattern occurrences are skipped. Custom Func
// rules are forwarded unmodified.
func MatchRule(rule Rule, text string, opts ...Option) iter.Seq[Match] {
	cfg := newConfig(opts)

	return func(yield func(Match) bool) {
		if rule == nil {
			cfg.logger.Warn().
				Str("code", string(ErrCodeNilRule)).
				Msg("nil rule contributes no matches")
			return
		}

		if v, ok := rule.(validator); ok {
			if err := v.Validate(); err != nil {
				event := cfg.logger.Warn().Err(err)
				var re *RuleError
				if errors.As(err, &re) {
					event = event.Str("code", string(re.Code))
				}
				event.Msg("pattern rule disabled, contributes no matches")
				return
			}
		}

		p, ok := rule.(*Pattern)
		if !ok {
			for m := range rule.Matches(text) {
				if !yield(m) {
					return
				}
			}
			return
		}

		if err := p.scan(text, yield); err != nil {
			cfg.logger.Warn().Err(err).Msg("pattern rule stopped early")
		}
	}
}

// cursor is a resumable position in one rule's match stream.
type cursor struct {
	name    string
	current Match
	next    func() (Match, bool)
	stop    func()
}

// advance moves to the next match, reporting false when the stream is done.
func (c *cursor) advance() bool {
	m, ok := c.next()
	if !ok {
		return false
	}
	c.current = m
	return true
}
