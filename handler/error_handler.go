package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/notedeck/notedeck/pkg/environment"
	"github.com/notedeck/notedeck/pkg/logger"
	"github.com/notedeck/notedeck/pkg/requestid"
	"github.com/notedeck/notedeck/pkg/toast"
)

// ToastPublisher is the part of *toast.Engine the error handler needs.
type ToastPublisher interface {
	Publish(ctx context.Context, o toast.Options) string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Toasts receives one toast per failed DataStar request; the page's
	// viewport stream renders it. Nil disables toasts.
	Toasts ToastPublisher

	// ToastDuration overrides the engine default for error toasts.
	ToastDuration *time.Duration
}

// ErrorInfo is the classified form of a handler error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Variant    toast.Variant
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Variant = toast.VariantWarning
		info.LogLevel = slog.LevelWarn
	} else {
		info.Variant = toast.VariantError
		info.LogLevel = slog.LevelError
	}
	return info
}

// NewErrorHandler logs every error and answers according to the caller.
// DataStar requests get a toast published into the engine and an empty body;
// the open toast stream shows the error. Other requests get
// a JSON error body. In development, server error toasts also carry the
// error text.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := requestid.FromContext(ctx)
		info := classifyError(err)

		log.LogAttrs(ctx, info.LogLevel, "request error",
			logger.RequestID(requestID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		var response Response
		if IsDataStar(r) && cfg.Toasts != nil {
			o := toast.Options{
				Title:    info.Message,
				Variant:  info.Variant,
				Duration: cfg.ToastDuration,
			}
			if requestID != "" {
				o.Description = "Request ID: " + requestID
			}
			if environment.IsDevelopment(ctx) && info.StatusCode >= http.StatusInternalServerError {
				o.Description = strings.TrimSpace(o.Description + "\n" + err.Error())
			}
			cfg.Toasts.Publish(ctx, o)
			response = Empty()
		} else {
			response = JSONError(err)
		}

		if renderErr := response.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "failed to render error response",
				logger.RequestID(requestID),
				logger.Error(renderErr),
			)
		}
	}
}
