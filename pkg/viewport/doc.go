// Package viewport is the HTTP face of a toast engine.
//
// It renders the live toasts as an accessible region (role "status" with
// polite announcements, "alert" and assertive for errors) and keeps it
// current over a DataStar SSE stream. The rendered markup calls back into
// the engine: pointer or focus entering a toast pauses its countdown,
// leaving resumes it, and the buttons dismiss it or run its action.
//
//	vp := viewport.New(engine, viewport.WithBasePath("/toasts"), viewport.WithLogger(log))
//	r.Mount("/toasts", vp.Routes())
//
// The page includes the region once and opens the stream:
//
//	<div data-init="@get('/toasts')"></div>
package viewport
