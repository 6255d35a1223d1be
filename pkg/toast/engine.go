package toast

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notedeck/notedeck/pkg/broadcast"
	"github.com/notedeck/notedeck/pkg/clock"
	"github.com/notedeck/notedeck/pkg/logger"
)

// Engine is the notification API. It owns the store and every scheduler and
// serializes all mutations, timer callbacks included, behind one mutex.
// Construct one per host view and Close it on teardown.
type Engine struct {
	mu              sync.Mutex
	store           *Store
	clock           clock.Clock
	logger          *slog.Logger
	defaultDuration time.Duration
	newID           func() string
	eventBuffer     int
	events          *broadcast.MemoryBroadcaster[Event]
	metrics         *Metrics
	presets         Presets
	closed          bool
}

func New(opts ...Option) *Engine {
	e := &Engine{
		store:           NewStore(),
		clock:           clock.System,
		logger:          slog.Default(),
		defaultDuration: DefaultDuration,
		newID:           uuid.NewString,
		eventBuffer:     DefaultEventBuffer,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("toast"))
	e.events = broadcast.NewMemoryBroadcaster[Event](e.eventBuffer)
	return e
}

// Publish normalizes o, inserts the toast and starts its countdown. A live
// id is replaced in place. It returns the toast id, or "" after Close.
func (e *Engine) Publish(ctx context.Context, o Options) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ""
	}

	t := o.normalize(e.defaultDuration)
	if t.ID == "" {
		t.ID = e.newID()
	}
	t.CreatedAt = e.clock.Now()

	var sched *Scheduler
	sched = NewScheduler(e.clock, t.Duration, func(gen uint64) {
		e.expire(t.ID, sched, gen)
	})

	if previous, ok := e.store.Get(t.ID); ok {
		e.metrics.ended(EventReplaced, previous, t.CreatedAt)
	}
	replaced := e.store.Insert(ctx, t, sched)
	sched.Start(ctx)

	kind := EventPublished
	if replaced {
		kind = EventReplaced
	}
	e.metrics.published(t.Variant)
	e.metrics.setActive(e.store.Len())
	e.emit(ctx, kind, t)

	e.logger.DebugContext(ctx, "toast published",
		logger.ToastID(t.ID),
		logger.Variant(t.Variant),
		logger.Duration(t.Duration),
		slog.Bool("replaced", replaced),
	)
	return t.ID
}

// PublishPreset publishes the named preset. A non-empty id replaces a live
// toast just like Options.ID.
func (e *Engine) PublishPreset(ctx context.Context, name, id string) (string, error) {
	o, err := e.presets.Options(name)
	if err != nil {
		return "", err
	}
	o.ID = id
	published := e.Publish(ctx, o)
	if published == "" {
		return "", ErrEngineClosed
	}
	return published, nil
}

// Dismiss removes id. Unknown or already removed ids are ignored.
func (e *Engine) Dismiss(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.dismissLocked(ctx, id)
}

func (e *Engine) dismissLocked(ctx context.Context, id string) (Toast, bool) {
	t, ok := e.store.Remove(ctx, id)
	if !ok {
		return Toast{}, false
	}
	now := e.clock.Now()
	e.metrics.ended(EventDismissed, t, now)
	e.metrics.setActive(e.store.Len())
	e.emit(ctx, EventDismissed, t)
	e.logger.DebugContext(ctx, "toast dismissed", logger.ToastID(id))
	return t, true
}

// Clear removes every live toast and releases every timer.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clearLocked(ctx)
}

func (e *Engine) clearLocked(ctx context.Context) {
	removed := e.store.Clear(ctx)
	if len(removed) == 0 {
		return
	}
	now := e.clock.Now()
	for _, t := range removed {
		e.metrics.ended(EventCleared, t, now)
	}
	e.metrics.setActive(0)
	e.emit(ctx, EventCleared, Toast{})
	e.logger.DebugContext(ctx, "toasts cleared", logger.Count(len(removed)))
}

// Pause freezes the countdown of id, e.g. on pointer or focus enter.
// It reports whether the state changed.
func (e *Engine) Pause(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	sched, ok := e.store.scheduler(id)
	if !ok || !sched.Pause(ctx) {
		return false
	}
	t, _ := e.store.Get(id)
	e.emit(ctx, EventPaused, t)
	e.logger.DebugContext(ctx, "toast paused",
		logger.ToastID(id),
		logger.Remaining(sched.Remaining()),
	)
	return true
}

// Resume continues the countdown of id, e.g. on pointer or focus leave.
// A toast with no time left expires immediately. It reports whether the
// state changed.
func (e *Engine) Resume(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	sched, ok := e.store.scheduler(id)
	if !ok || !sched.Resume(ctx) {
		return false
	}
	if sched.State() == StateExpired {
		e.removeExpiredLocked(ctx, id)
		return true
	}
	t, _ := e.store.Get(id)
	e.emit(ctx, EventResumed, t)
	e.logger.DebugContext(ctx, "toast resumed",
		logger.ToastID(id),
		logger.Remaining(sched.Remaining()),
	)
	return true
}

// Activate runs the toast's action and dismisses it. The toast is removed
// before the callback runs, so a failing callback cannot keep it alive.
// Callback errors and panics are logged and returned wrapped in
// ErrActionFailed. Unknown ids and toasts without an action return nil;
// the latter are still dismissed.
func (e *Engine) Activate(ctx context.Context, id string) error {
	e.mu.Lock()
	t, ok := e.dismissLocked(ctx, id)
	e.mu.Unlock()

	if !ok || t.Action == nil || t.Action.OnClick == nil {
		return nil
	}

	if err := runAction(ctx, t.Action); err != nil {
		e.metrics.actionFailed()
		e.logger.WarnContext(ctx, "toast action failed",
			logger.ToastID(id),
			logger.Error(err),
		)
		return err
	}
	return nil
}

// Status reports the scheduler state of a live toast.
func (e *Engine) Status(id string) (Status, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sched, ok := e.store.scheduler(id)
	if !ok {
		return Status{}, false
	}
	return sched.Status(), true
}

// Get returns the live toast with the given id.
func (e *Engine) Get(id string) (Toast, bool) {
	return e.store.Get(id)
}

// List yields live toasts in insertion order. The sequence may be ranged
// repeatedly and always reflects the current store.
func (e *Engine) List() iter.Seq[Toast] {
	return e.store.All()
}

// Toasts returns the live toasts in insertion order.
func (e *Engine) Toasts() []Toast {
	return slices.Collect(e.store.All())
}

func (e *Engine) Len() int {
	return e.store.Len()
}

// Subscribe returns a change feed that ends when ctx is canceled or the
// engine closes. Renderers should re-read List on every event; events may be
// dropped for a consumer whose buffer is full.
func (e *Engine) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return e.events.Subscribe(ctx)
}

// Ping returns ErrEngineClosed once the engine is closed. It fits
// httpserver.HealthCheck.
func (e *Engine) Ping(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return nil
}

// Close clears every toast, releases every timer and ends all subscriptions.
// Later calls are no-ops and Publish returns "".
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.clearLocked(context.Background())
	e.closed = true
	return e.events.Close()
}

// expire is the timer callback. It acts only if sched is still the live
// scheduler for id and gen is its current timer.
func (e *Engine) expire(id string, sched *Scheduler, gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	ctx := context.Background()
	current, ok := e.store.scheduler(id)
	if !ok || current != sched || !sched.Fire(ctx, gen) {
		return
	}
	e.removeExpiredLocked(ctx, id)
}

func (e *Engine) removeExpiredLocked(ctx context.Context, id string) {
	t, ok := e.store.Remove(ctx, id)
	if !ok {
		return
	}
	e.metrics.ended(EventExpired, t, e.clock.Now())
	e.metrics.setActive(e.store.Len())
	e.emit(ctx, EventExpired, t)
	e.logger.DebugContext(ctx, "toast expired", logger.ToastID(id))
}

func (e *Engine) emit(ctx context.Context, kind EventKind, t Toast) {
	if err := e.events.Broadcast(ctx, broadcast.Message[Event]{Data: Event{
		Kind:  kind,
		Toast: t,
		At:    e.clock.Now(),
	}}); err != nil && !errors.Is(err, broadcast.ErrClosed) {
		e.logger.WarnContext(ctx, "failed to broadcast toast event", logger.Event(string(kind)), logger.Error(err))
	}
}

func runAction(ctx context.Context, a *Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrActionFailed, r)
		}
	}()
	if err := a.OnClick(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	return nil
}
