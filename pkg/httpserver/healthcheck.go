package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/notedeck/notedeck/pkg/logger"
)

// HealthCheck reports whether a dependency is ready to serve.
type HealthCheck func(ctx context.Context) error

// HealthCheckHandler answers liveness probes with "ALIVE" when no checks are
// given and readiness probes with "READY" or a 503 "NOT_READY" otherwise.
func HealthCheckHandler(log *slog.Logger, checks ...HealthCheck) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
