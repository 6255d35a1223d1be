package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// Context is the request context passed to handlers. It embeds the request's
// context.Context, so it can be handed straight to the toast engine.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// SSE is non-nil only for DataStar requests.
	SSE() *datastar.ServerSentEventGenerator
}

func NewContext(w http.ResponseWriter, r *http.Request) Context {
	ctx := &httpContext{w: w, r: r}
	if IsDataStar(r) {
		ctx.sse = datastar.NewSSE(w, r)
	}
	return ctx
}

type httpContext struct {
	w   http.ResponseWriter
	r   *http.Request
	sse *datastar.ServerSentEventGenerator
}

func (c *httpContext) Request() *http.Request                  { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter     { return c.w }
func (c *httpContext) SSE() *datastar.ServerSentEventGenerator { return c.sse }

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }
