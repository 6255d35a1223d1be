package toast

import "time"

// EventKind names a change to the live set.
type EventKind string

const (
	EventPublished EventKind = "published"
	EventReplaced  EventKind = "replaced"
	EventPaused    EventKind = "paused"
	EventResumed   EventKind = "resumed"
	EventExpired   EventKind = "expired"
	EventDismissed EventKind = "dismissed"
	EventCleared   EventKind = "cleared"
)

// Event is delivered to Subscribe consumers after every change. Toast is the
// zero value for EventCleared.
type Event struct {
	Kind  EventKind
	Toast Toast
	At    time.Time
}
