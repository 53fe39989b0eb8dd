package capture

import (
	"io"
	"log/slog"
)

// DefaultMaxDepth bounds nesting when no WithMaxDepth option is given.
const DefaultMaxDepth = 1024

// Option configures a capture.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	maxDepth int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger used for debug output. Logs are discarded by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxDepth bounds how deeply values may nest. Nesting maps directly to
// call-stack depth, so this is the only resource limit capture has.
// n <= 0 means no limit.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}
