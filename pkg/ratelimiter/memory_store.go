package ratelimiter

import (
	"sync"
	"time"

	"github.com/notedeck/notedeck/pkg/clock"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// memoryStore keeps buckets in process. Idle buckets are swept lazily on
// access, at most once per sweepInterval.
type memoryStore struct {
	mu            sync.Mutex
	clock         clock.Clock
	buckets       map[string]*bucket
	idleTTL       time.Duration
	sweepInterval time.Duration
	lastSweep     time.Time
}

func newMemoryStore(clk clock.Clock, idleTTL time.Duration) *memoryStore {
	return &memoryStore{
		clock:         clk,
		buckets:       make(map[string]*bucket),
		idleTTL:       idleTTL,
		sweepInterval: idleTTL / 4,
		lastSweep:     clk.Now(),
	}
}

// consume refills the bucket for key and takes n tokens if there are enough.
// A denied request consumes nothing.
func (s *memoryStore) consume(key string, n int, cfg Config) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now)

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		s.buckets[key] = b
	}
	b.lastAccess = now

	if intervals := int64(now.Sub(b.lastRefill) / cfg.RefillInterval); intervals > 0 {
		// Capped so a long idle period cannot overflow.
		intervals = min(intervals, int64(cfg.Capacity/cfg.RefillRate+1))
		b.tokens = min(b.tokens+int(intervals)*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
		if b.tokens == cfg.Capacity {
			b.lastRefill = now
		}
	}

	res := Result{
		Limit:   cfg.Capacity,
		ResetAt: b.lastRefill.Add(cfg.RefillInterval),
	}
	if b.tokens >= n {
		b.tokens -= n
		res.Allowed = true
	} else {
		res.RetryAfter = res.ResetAt.Sub(now)
	}
	res.Remaining = b.tokens
	return res
}

func (s *memoryStore) reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
}

func (s *memoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *memoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.sweepInterval {
		return
	}
	s.lastSweep = now
	for key, b := range s.buckets {
		if now.Sub(b.lastAccess) > s.idleTTL {
			delete(s.buckets, key)
		}
	}
}
