package ratelimiter

import (
	"fmt"
	"time"
)

// Config is the token bucket shape, loadable with config.Load.
type Config struct {
	// Capacity is the burst size.
	Capacity int `env:"RATE_LIMIT_BURST" envDefault:"20"`
	// RefillRate tokens are added every RefillInterval, up to Capacity.
	RefillRate     int           `env:"RATE_LIMIT_REFILL" envDefault:"5"`
	RefillInterval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the next refill lands.
	ResetAt time.Time
	// RetryAfter is zero when Allowed.
	RetryAfter time.Duration
}
