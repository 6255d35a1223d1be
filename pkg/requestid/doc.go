// Package requestid tags every HTTP request with a correlation id.
//
// The middleware reuses a client supplied X-Request-ID when it is a short
// token of letters, digits, '-' and '_', and otherwise generates a UUIDv4.
// The id is stored in the request context, echoed in the response header and
// picked up by the logger through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// The error handler in package handler quotes the id in error toasts so a
// user report can be matched to the server log.
package requestid
