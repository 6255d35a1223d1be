package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is a Context with an open DataStar SSE connection.
type StreamContext interface {
	Context

	// SendComponent patches a templ component into the page.
	SendComponent(component templ.Component, opts ...TemplOption) error

	// SendSignals merges values into the frontend signal store.
	SendSignals(signals map[string]any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component templ.Component, opts ...TemplOption) error {
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

// SSEHandler runs for the lifetime of an SSE connection. It should return
// when the context is done.
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		sub := engine.Subscribe(stream)
//		defer sub.Close()
//		for range sub.Receive(stream) {
//			if err := stream.SendComponent(views.Region(engine.Toasts())); err != nil {
//				return err
//			}
//		}
//		return nil
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

// Render rejects non-DataStar requests with 400 and runs the handler otherwise.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "SSE endpoint requires DataStar connection")
	}

	base := NewContext(w, r)
	if base.SSE() == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: base.SSE()})
}

func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
