package requestid

import (
	"context"
	"log/slog"

	"github.com/notedeck/notedeck/pkg/logger"
)

// LoggerExtractor adds "request_id" to every record logged with a request
// context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}
