package ratelimiter

import (
	"fmt"
	"time"

	"github.com/notedeck/notedeck/pkg/clock"
)

// DefaultIdleTTL is how long an untouched bucket is kept.
const DefaultIdleTTL = time.Hour

// Bucket is a keyed token bucket limiter. Safe for concurrent use.
type Bucket struct {
	cfg   Config
	store *memoryStore
}

// Option configures NewBucket.
type Option func(*options)

type options struct {
	clock   clock.Clock
	idleTTL time.Duration
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithIdleTTL sets how long an untouched bucket is kept before it is swept.
func WithIdleTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleTTL = d
		}
	}
}

func NewBucket(cfg Config, opts ...Option) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := options{clock: clock.System, idleTTL: DefaultIdleTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return &Bucket{cfg: cfg, store: newMemoryStore(o.clock, o.idleTTL)}, nil
}

// MustNewBucket is NewBucket that panics on an invalid config.
func MustNewBucket(cfg Config, opts ...Option) *Bucket {
	b, err := NewBucket(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Allow spends one token for key.
func (b *Bucket) Allow(key string) Result {
	res, _ := b.AllowN(key, 1)
	return res
}

// AllowN spends n tokens for key. A denied request spends nothing.
func (b *Bucket) AllowN(key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.store.consume(key, n, b.cfg), nil
}

// Reset forgets key, giving it a full bucket on next use.
func (b *Bucket) Reset(key string) {
	b.store.reset(key)
}

// Len returns the number of tracked keys.
func (b *Bucket) Len() int {
	return b.store.len()
}
