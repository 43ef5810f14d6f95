package match

import (
	"iter"
	"math"
)

// bound is the running [start, end] interval of a cluster.
// The zero-width empty bound is [+inf, -inf].
type bound struct {
	start, end int
}

func emptyBound() bound {
	return bound{start: math.MaxInt, end: math.MinInt}
}

// fold applies the bound-update policy for a match that is not consumed:
// union when it overlaps, reset when it starts at or before the bound,
// otherwise leave the bound alone.
//
// The reset branch discards the previous bound even if it still covers
// unscanned matches. Group boundaries for three or more staggered rules
// depend on this.
func (b *bound) fold(m Match) {
	switch {
	case m.Overlaps(b.start, b.end):
		b.start = min(b.start, m.Start)
		b.end = max(b.end, m.End)
	case m.Start <= b.start:
		b.start = m.Start
		b.end = m.End
	}
}

// MatchAllRules runs every rule over text and yields clusters of
// overlapping matches in ascending position order.
//
// Streams are pulled lazily: a rule only advances once its current match has
// joined the cluster being built. Iteration stops when every stream is
// exhausted or when a pass over the remaining streams adds nothing to the
// current cluster.
func MatchAllRules(text string, rules RuleSet, opts ...Option) iter.Seq[MatchGroup] {
	cfg := newConfig(opts)

	return func(yield func(MatchGroup) bool) {
		s := &sweep{}
		defer s.close()

		s.prime(text, rules, cfg)
		for len(s.active) > 0 {
			group, ok := s.pass()
			if !ok {
				cfg.logger.Debug().
					Int("active", len(s.active)).
					Msg("no stream joined the cluster, stopping")
				return
			}
			if !yield(group) {
				return
			}
		}
	}
}

// sweep holds the per-iteration state of MatchAllRules.
type sweep struct {
	active  []*cursor
	current bound
}

// prime pulls the first match of every rule and seeds the bound.
// Rules that are empty from the start are dropped for good.
func (s *sweep) prime(text string, rules RuleSet, cfg config) {
	s.current = emptyBound()
	for _, r := range rules {
		next, stop := iter.Pull(MatchRule(r.Rule, text, WithLogger(cfg.logger.With().Str("rule", r.Name).Logger())))
		m, ok := next()
		if !ok || m.Value == "" {
			stop()
			continue
		}

		s.current.fold(m)
		s.active = append(s.active, &cursor{
			name:    r.Name,
			current: m,
			next:    next,
			stop:    stop,
		})
	}
}

// pass consumes every current match overlapping the bound and computes the
// bound of the following cluster from the rest.
func (s *sweep) pass() (MatchGroup, bool) {
	var matches []RuleMatch
	var left, right *RuleMatch
	next := emptyBound()

	for i := 0; i < len(s.active); {
		c := s.active[i]
		m := c.current

		if !m.Overlaps(s.current.start, s.current.end) {
			next.fold(m)
			i++
			continue
		}

		rm := newRuleMatch(c.name, m)
		if left == nil || m.Start < left.Start || (m.Start == left.Start && m.End > left.End) {
			left = &rm
		}
		if right == nil || m.End > right.End || (m.End == right.End && m.Start < right.Start) {
			right = &rm
		}
		matches = append(matches, rm)

		// The advanced cursor is examined again at the same index.
		if !c.advance() {
			c.stop()
			s.active = append(s.active[:i], s.active[i+1:]...)
		}
	}

	if len(matches) == 0 || left == nil || right == nil {
		return MatchGroup{}, false
	}

	group := MatchGroup{
		Start:   s.current.start,
		End:     s.current.end,
		Left:    *left,
		Right:   *right,
		Matches: matches,
	}
	s.current = next
	return group, true
}

// close releases every cursor still open.
func (s *sweep) close() {
	for _, c := range s.active {
		c.stop()
	}
	s.active = nil
}
