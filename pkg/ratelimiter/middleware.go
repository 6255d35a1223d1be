package ratelimiter

import (
	"math"
	"net/http"
	"strconv"

	"github.com/notedeck/notedeck/handler"
)

// ErrTooManyRequests is the body of a limited response.
var ErrTooManyRequests = handler.NewHTTPError(http.StatusTooManyRequests, "too_many_requests")

// KeyFunc names the bucket a request draws from, e.g. clientip.Key.
type KeyFunc func(r *http.Request) string

// Middleware limits requests per key and sets the X-RateLimit-* headers.
// Requests with an empty key are not limited.
func Middleware(b *Bucket, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res := b.Allow(k)
			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
				_ = handler.JSONError(ErrTooManyRequests).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
