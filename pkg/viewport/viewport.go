package viewport

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/notedeck/notedeck/handler"
	"github.com/notedeck/notedeck/pkg/binder"
	"github.com/notedeck/notedeck/pkg/broadcast"
	"github.com/notedeck/notedeck/pkg/logger"
	"github.com/notedeck/notedeck/pkg/toast"
)

// Engine is the part of *toast.Engine the viewport drives.
type Engine interface {
	Publish(ctx context.Context, o toast.Options) string
	PublishPreset(ctx context.Context, name, id string) (string, error)
	Dismiss(ctx context.Context, id string)
	Clear(ctx context.Context)
	Pause(ctx context.Context, id string) bool
	Resume(ctx context.Context, id string) bool
	Activate(ctx context.Context, id string) error
	Status(id string) (toast.Status, bool)
	Toasts() []toast.Toast
	Subscribe(ctx context.Context) broadcast.Subscriber[toast.Event]
}

// Viewport renders the live toasts of one engine and forwards the pointer,
// focus and button callbacks of the rendered region back to it.
type Viewport struct {
	engine       Engine
	logger       *slog.Logger
	basePath     string
	errorHandler handler.ErrorHandler[handler.Context]
	publishMW    []func(http.Handler) http.Handler
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithBasePath sets the prefix the region's callback URLs use. It must match
// where Routes is mounted.
func WithBasePath(path string) Option {
	return func(v *Viewport) {
		v.basePath = strings.TrimSuffix(path, "/")
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Viewport) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithErrorHandler replaces the default handler.NewErrorHandler, which
// reports failed DataStar requests as toasts on the same engine.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(v *Viewport) {
		if h != nil {
			v.errorHandler = h
		}
	}
}

// WithPublishMiddleware wraps only the publish endpoints, e.g. with a rate
// limiter. Callbacks from the rendered region are never limited.
func WithPublishMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(v *Viewport) {
		v.publishMW = append(v.publishMW, mw...)
	}
}

func New(engine Engine, opts ...Option) *Viewport {
	v := &Viewport{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With(logger.Component("viewport"))
	if v.errorHandler == nil {
		v.errorHandler = handler.NewErrorHandler(v.logger, handler.ErrorHandlerConfig{Toasts: engine})
	}
	return v
}

// Routes returns the viewport router:
//
//	GET    /                 region HTML, or a DataStar stream of region patches
//	GET    /list             live toasts as JSON
//	POST   /                 publish
//	POST   /presets/{name}   publish a preset, ?id= replaces
//	DELETE /                 clear
//	POST   /{id}/pause       pointer or focus entered
//	POST   /{id}/resume      pointer or focus left
//	POST   /{id}/dismiss     close button
//	POST   /{id}/action      action button
func (v *Viewport) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", wrap(v, v.stream))
	r.Get("/list", wrap(v, v.list))
	r.With(v.publishMW...).Post("/", wrap(v, v.publish, binder.JSON()))
	r.With(v.publishMW...).Post("/presets/{name}", wrap(v, v.publishPreset, binder.Path(urlParam), binder.Query()))
	r.Delete("/", wrap(v, v.clear))

	r.Route("/{id}", func(r chi.Router) {
		r.Post("/pause", wrap(v, v.pause, binder.Path(urlParam)))
		r.Post("/resume", wrap(v, v.resume, binder.Path(urlParam)))
		r.Post("/dismiss", wrap(v, v.dismiss, binder.Path(urlParam)))
		r.Post("/action", wrap(v, v.activate, binder.Path(urlParam)))
	})

	return r
}

func wrap[R any](v *Viewport, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](v.errorHandler),
	)
}

// urlParam returns the decoded path parameter. chi matches against
// URL.RawPath when it is set, e.g. for an id containing an escaped "/", and
// then hands back the still-escaped segment.
func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// region snapshots the engine for rendering.
func (v *Viewport) region() templ.Component {
	return Region(v.basePath, v.items())
}

func (v *Viewport) items() []Item {
	toasts := v.engine.Toasts()
	items := make([]Item, 0, len(toasts))
	for _, t := range toasts {
		status, ok := v.engine.Status(t.ID)
		if !ok {
			continue
		}
		items = append(items, Item{Toast: t, Status: status})
	}
	return items
}
