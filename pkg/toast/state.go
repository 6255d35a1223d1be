package toast

import "time"

// State is a scheduler lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateExpired   State = "expired"
	StateDismissed State = "dismissed"
)

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateExpired || s == StateDismissed
}

// Status is a read-only view of a scheduler, for progress indicators.
type Status struct {
	State      State
	Remaining  time.Duration
	Persistent bool
}
