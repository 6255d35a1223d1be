package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header = "X-Request-ID"

	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Option configures New.
type Option func(*config)

type config struct {
	header   string
	generate func() string
}

// WithHeader reads and echoes the id under a header other than X-Request-ID.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.header = name
		}
	}
}

// WithGenerator replaces the UUIDv4 generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// New returns middleware that reuses a valid client supplied id or generates
// a fresh one, stores it in the request context and echoes it back.
func New(opts ...Option) func(http.Handler) http.Handler {
	cfg := config{header: Header, generate: uuid.NewString}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(cfg.header)
			if !valid(id) {
				id = cfg.generate()
			}
			w.Header().Set(cfg.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with the defaults.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
