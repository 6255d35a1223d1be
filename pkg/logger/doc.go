// Package logger builds slog loggers with functional options, attribute
// helpers with consistent key names, and context attribute injection.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "notedeck"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "toast expired",
//	    logger.ToastID(id),
//	    logger.State(toast.StateExpired),
//	)
//
// # Context extraction
//
// New wraps the concrete text or JSON handler in LogHandlerDecorator, which
// runs every registered ContextExtractor on each record. That is how request
// ids set by middleware end up on log lines emitted deep inside the engine.
//
// # Nil-safe attributes
//
// Error, ToastID and RequestID return an empty slog.Attr for zero input, so
//
//	log.Warn("action callback failed", logger.Error(err))
//
// needs no nil check; slog drops empty attributes.
package logger
