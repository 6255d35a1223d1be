// Package handler provides typed HTTP handlers with DataStar and templ
// responses.
//
// A handler binds the request into a struct and returns a Response:
//
//	type toastRequest struct {
//		ID string `path:"id"`
//	}
//
//	pause := func(ctx handler.Context, req toastRequest) handler.Response {
//		if !engine.Pause(ctx, req.ID) {
//			return handler.EmptyWithStatus(http.StatusConflict)
//		}
//		return handler.Empty()
//	}
//
//	r.Post("/{id}/pause", handler.Wrap(pause,
//		handler.WithBinders[handler.Context, toastRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, toastRequest](errHandler),
//	))
//
// Responses: JSON and JSONError for API clients, Templ for HTML or DataStar
// patches, SSE for long-lived streams, and Empty.
//
// # DataStar
//
// Requests with Accept: text/event-stream are DataStar requests. Templ
// responses become element patches and SSE handlers receive a StreamContext.
//
// # Errors
//
// NewErrorHandler logs failures with the request id. For DataStar requests
// it publishes a warning or error toast so the failure shows up in the
// toast viewport; other clients get a JSON error.
package handler
