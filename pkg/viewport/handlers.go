package viewport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/notedeck/notedeck/handler"
	"github.com/notedeck/notedeck/pkg/logger"
	"github.com/notedeck/notedeck/pkg/sanitizer"
	"github.com/notedeck/notedeck/pkg/toast"
)

// Limits for text published over HTTP.
const (
	MaxIDRunes          = 64
	MaxTitleRunes       = 120
	MaxDescriptionRunes = 500
	MaxLabelRunes       = 40
)

var (
	cleanTitle       = sanitizer.Line(MaxTitleRunes)
	cleanDescription = sanitizer.Paragraph(MaxDescriptionRunes)
	cleanLabel       = sanitizer.Line(MaxLabelRunes)
)

// maxDurationMS is the longest duration_ms that fits a time.Duration.
// Anything longer is treated as persistent.
const maxDurationMS = int64(time.Duration(1<<63-1) / time.Millisecond)

var errIDTooLong = handler.NewHTTPError(http.StatusBadRequest, "id_too_long")

type publishRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
	// DurationMS nil uses the engine default; zero, negative or beyond
	// maxDurationMS persists.
	DurationMS  *int64 `json:"duration_ms"`
	ActionLabel string `json:"action_label"`
}

type presetRequest struct {
	Name string `path:"name" query:"-"`
	ID   string `path:"-" query:"id"`
}

type toastRequest struct {
	ID string `path:"id"`
}

type publishResponse struct {
	ID string `json:"id"`
}

// ToastView is the JSON form of a live toast.
type ToastView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Variant     toast.Variant `json:"variant"`
	State       toast.State   `json:"state"`
	RemainingMS int64         `json:"remaining_ms"`
	Persistent  bool          `json:"persistent"`
	ActionLabel string        `json:"action_label,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// stream serves the region. Plain requests get HTML for the initial page
// render; DataStar requests get a stream that re-renders the region and the
// CountSignal after every engine event until the client goes away or the
// engine closes.
func (v *Viewport) stream(ctx handler.Context, _ struct{}) handler.Response {
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Templ(v.region())
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		sub := v.engine.Subscribe(stream)
		defer sub.Close()

		push := func() error {
			items := v.items()
			if err := stream.SendComponent(Region(v.basePath, items)); err != nil {
				return err
			}
			return stream.SendSignals(map[string]any{CountSignal: len(items)})
		}

		if err := push(); err != nil {
			return err
		}
		for range sub.Receive(stream) {
			if err := push(); err != nil {
				return err
			}
		}
		if n := sub.Dropped(); n > 0 {
			v.logger.DebugContext(stream, "viewport stream dropped events", logger.Count(int(n)))
		}
		return nil
	})
}

func (v *Viewport) list(ctx handler.Context, _ struct{}) handler.Response {
	toasts := v.engine.Toasts()
	views := make([]ToastView, 0, len(toasts))
	for _, t := range toasts {
		status, ok := v.engine.Status(t.ID)
		if !ok {
			continue
		}
		view := ToastView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Variant:     t.Variant,
			State:       status.State,
			RemainingMS: status.Remaining.Milliseconds(),
			Persistent:  status.Persistent,
			CreatedAt:   t.CreatedAt,
		}
		if t.Action != nil {
			view.ActionLabel = t.Action.Label
		}
		views = append(views, view)
	}
	return handler.JSON(views)
}

func (v *Viewport) publish(ctx handler.Context, req publishRequest) handler.Response {
	id := sanitizer.Trim(sanitizer.RemoveControlChars(req.ID))
	if utf8.RuneCountInString(id) > MaxIDRunes {
		return handler.JSONError(errIDTooLong)
	}

	o := toast.Options{
		ID:          id,
		Title:       cleanTitle(req.Title),
		Description: cleanDescription(req.Description),
		Variant:     toast.Variant(sanitizer.Trim(req.Variant)),
	}
	if req.DurationMS != nil {
		o.Duration = durationFromMS(*req.DurationMS)
	}
	if label := cleanLabel(req.ActionLabel); label != "" {
		o.Action = v.remoteAction(label)
	}

	published := v.engine.Publish(ctx, o)
	if published == "" {
		return handler.JSONError(handler.ErrServiceUnavailable)
	}
	return handler.JSON(publishResponse{ID: published}, handler.WithJSONStatus(http.StatusCreated))
}

func durationFromMS(ms int64) *time.Duration {
	if ms <= 0 || ms > maxDurationMS {
		return toast.Persist()
	}
	return toast.Duration(time.Duration(ms) * time.Millisecond)
}

func (v *Viewport) publishPreset(ctx handler.Context, req presetRequest) handler.Response {
	id, err := v.engine.PublishPreset(ctx, req.Name, req.ID)
	switch {
	case errors.Is(err, toast.ErrPresetNotFound):
		return handler.JSONError(errors.Join(handler.ErrNotFound, err))
	case errors.Is(err, toast.ErrEngineClosed):
		return handler.JSONError(handler.ErrServiceUnavailable)
	case err != nil:
		return handler.JSONError(err)
	}
	return handler.JSON(publishResponse{ID: id}, handler.WithJSONStatus(http.StatusCreated))
}

func (v *Viewport) clear(ctx handler.Context, _ struct{}) handler.Response {
	v.engine.Clear(ctx)
	return handler.Empty()
}

// The callbacks below answer 204 whatever the outcome; the stream carries
// the visible result and unknown ids are no-ops.

func (v *Viewport) pause(ctx handler.Context, req toastRequest) handler.Response {
	v.engine.Pause(ctx, req.ID)
	return handler.Empty()
}

func (v *Viewport) resume(ctx handler.Context, req toastRequest) handler.Response {
	v.engine.Resume(ctx, req.ID)
	return handler.Empty()
}

func (v *Viewport) dismiss(ctx handler.Context, req toastRequest) handler.Response {
	v.engine.Dismiss(ctx, req.ID)
	return handler.Empty()
}

// activate runs the toast action. The engine has already logged a failing
// callback and the toast is gone either way.
func (v *Viewport) activate(ctx handler.Context, req toastRequest) handler.Response {
	_ = v.engine.Activate(ctx, req.ID)
	return handler.Empty()
}

// remoteAction backs actions published over HTTP. The publisher cannot send
// code, so activation is only recorded.
func (v *Viewport) remoteAction(label string) *toast.Action {
	return &toast.Action{
		Label: label,
		OnClick: func(ctx context.Context) error {
			v.logger.InfoContext(ctx, "toast action activated", slog.String("label", label))
			return nil
		},
	}
}
