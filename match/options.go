package match

import (
	"github.com/rs/zerolog"

	"github.com/roach88/spanmerge/internal/logging"
)

// Option configures MatchRule and MatchAllRules.
type Option func(*config)

type config struct {
	logger *zerolog.Logger
}

// WithLogger sends rule diagnostics to logger instead of the global
// "match" component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = &logger
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		logger := logging.GetLogger("match")
		c.logger = &logger
	}
	return c
}
