package clock

import (
	"time"
)

// Timer is a pending callback that can be canceled.
type Timer interface {
	// Stop prevents the timer from firing.
	// Returns false if the timer already fired or was stopped.
	Stop() bool
}

// Clock provides the current time and one-shot callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// System is the Clock backed by the standard library.
// Readings carry the monotonic component, so Sub is safe against wall clock jumps.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
