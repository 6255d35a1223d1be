package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedeck/notedeck/pkg/clock"
	"github.com/notedeck/notedeck/pkg/ratelimiter"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newBucket(t *testing.T, opts ...ratelimiter.Option) (*ratelimiter.Bucket, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(epoch)
	b, err := ratelimiter.NewBucket(ratelimiter.Config{
		Capacity:       2,
		RefillRate:     1,
		RefillInterval: time.Second,
	}, append([]ratelimiter.Option{ratelimiter.WithClock(clk)}, opts...)...)
	require.NoError(t, err)
	return b, clk
}

func TestBucket_Allow(t *testing.T) {
	t.Parallel()
	b, clk := newBucket(t)

	assert.True(t, b.Allow("a").Allowed)
	res := b.Allow("a")
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	res = b.Allow("a")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining, "denied requests consume nothing")
	assert.Equal(t, time.Second, res.RetryAfter)

	assert.True(t, b.Allow("b").Allowed, "keys are independent")

	clk.Advance(time.Second)
	assert.True(t, b.Allow("a").Allowed)
	assert.False(t, b.Allow("a").Allowed)

	clk.Advance(time.Hour / 2)
	res = b.Allow("a")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining, "refill is capped at capacity")
}

func TestBucket_AllowN(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t)

	_, err := b.AllowN("a", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := b.AllowN("a", 3)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestBucket_ResetAndSweep(t *testing.T) {
	t.Parallel()
	b, clk := newBucket(t, ratelimiter.WithIdleTTL(time.Minute))

	b.Allow("a")
	b.Allow("a")
	b.Reset("a")
	assert.Equal(t, 1, b.Allow("a").Remaining, "reset gives a full bucket")

	b.Allow("b")
	assert.Equal(t, 2, b.Len())

	clk.Advance(2 * time.Minute)
	b.Allow("c")
	assert.Equal(t, 1, b.Len())
}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.NewBucket(cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
	assert.Panics(t, func() { ratelimiter.MustNewBucket(ratelimiter.Config{}) })
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t)

	h := ratelimiter.Middleware(b, func(r *http.Request) string {
		return r.Header.Get("X-Client")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	call := func(client string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		if client != "" {
			r.Header.Set("X-Client", client)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	assert.Equal(t, http.StatusCreated, call("x").Code)
	rec := call("x")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = call("x")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too_many_requests")

	for range 5 {
		assert.Equal(t, http.StatusCreated, call("").Code, "requests without a key pass")
	}
}
