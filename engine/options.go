package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/spektr-org/cadrelens/category"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Process()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Categories   category.Map
	PassOutcomes []string
	Now          func() time.Time
	Logger       *slog.Logger
}

// WithCategoryMap sets the table labels are categorized against.
func WithCategoryMap(m category.Map) Option {
	return func(c *config) {
		c.Categories = m
	}
}

// WithPassOutcomes sets the outcome codes counted as a pass.
func WithPassOutcomes(outcomes ...string) Option {
	return func(c *config) {
		c.PassOutcomes = outcomes
	}
}

// WithClock sets the wall clock used for relative period ranges.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.Now = now
		}
	}
}

// WithLogger routes engine debug logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Categories:   category.Cadres,
		PassOutcomes: DefaultPassOutcomes,
		Now:          time.Now,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
