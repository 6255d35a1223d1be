package toast

import (
	"log/slog"
	"time"

	"github.com/notedeck/notedeck/pkg/clock"
)

const (
	DefaultDuration    = 5 * time.Second
	DefaultEventBuffer = 32
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock, typically with a clock.Manual in tests.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDefaultDuration sets the lifetime used when Options.Duration is nil.
// Non-positive values are ignored.
func WithDefaultDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.defaultDuration = d
		}
	}
}

// WithIDGenerator overrides uuid-based id generation.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.eventBuffer = n
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithPresets(p Presets) Option {
	return func(e *Engine) {
		e.presets = p
	}
}
