package toast

import (
	"context"
	"time"

	"github.com/notedeck/notedeck/pkg/clock"
	"github.com/notedeck/notedeck/pkg/statemachine"
)

type trigger string

const (
	triggerStart   trigger = "start"
	triggerPause   trigger = "pause"
	triggerResume  trigger = "resume"
	triggerFire    trigger = "fire"
	triggerDismiss trigger = "dismiss"
)

// Scheduler is the per-toast countdown.
//
//	idle ──start──▶ running ◀──resume── paused
//	  │               │ ──pause──────────▶ │
//	  │               ▼ fire               │ resume (nothing left)
//	  │            expired ◀───────────────┘
//	  └──start (persistent)──▶ paused
//	idle | running | paused ──dismiss──▶ dismissed
//
// Remaining time is charged only while running, so repeated pause/resume
// cycles never extend the total running time past the duration.
//
// A Scheduler is not safe for concurrent use. Engine serializes access to it,
// including the timer callback, which arrives through onFire with the
// generation of the timer that produced it.
type Scheduler struct {
	clock        clock.Clock
	remaining    time.Duration
	runStartedAt time.Time
	persistent   bool
	timer        clock.Timer
	generation   uint64
	onFire       func(generation uint64)
	machine      *statemachine.Machine[State, trigger]
}

// NewScheduler creates an idle scheduler. onFire is called from the clock's
// timer goroutine and is expected to call Fire with the given generation.
// A non-positive duration makes the toast persistent.
func NewScheduler(clk clock.Clock, duration time.Duration, onFire func(generation uint64)) *Scheduler {
	s := &Scheduler{
		clock:     clk,
		remaining: max(duration, 0),
		onFire:    onFire,
	}

	s.machine = statemachine.MustNew[State, trigger](StateIdle,
		statemachine.WithTerminal[State, trigger](StateExpired, StateDismissed),

		statemachine.WithTransition(StateIdle, StateRunning, triggerStart,
			statemachine.WithGuard[State, trigger](s.timed),
			statemachine.WithAction[State, trigger](s.arm),
		),
		statemachine.WithTransition(StateIdle, StatePaused, triggerStart,
			statemachine.WithAction[State, trigger](s.hold),
		),

		statemachine.WithTransition(StateRunning, StatePaused, triggerPause,
			statemachine.WithAction[State, trigger](s.freeze),
		),

		statemachine.WithTransition(StatePaused, StateRunning, triggerResume,
			statemachine.WithGuard[State, trigger](s.resumable),
			statemachine.WithGuard[State, trigger](s.hasRemaining),
			statemachine.WithAction[State, trigger](s.arm),
		),
		statemachine.WithTransition(StatePaused, StateExpired, triggerResume,
			statemachine.WithGuard[State, trigger](s.resumable),
		),

		statemachine.WithTransition(StateRunning, StateExpired, triggerFire,
			statemachine.WithAction[State, trigger](s.exhaust),
		),

		statemachine.WithTransition(StateIdle, StateDismissed, triggerDismiss),
		statemachine.WithTransition(StateRunning, StateDismissed, triggerDismiss,
			statemachine.WithAction[State, trigger](s.freeze),
		),
		statemachine.WithTransition(StatePaused, StateDismissed, triggerDismiss),
	)

	return s
}

// Start leaves idle. A timed toast begins counting down; a persistent one is
// held paused forever.
func (s *Scheduler) Start(ctx context.Context) bool {
	return s.machine.Fire(ctx, triggerStart) == nil
}

// Pause freezes the countdown. It is a no-op unless running.
func (s *Scheduler) Pause(ctx context.Context) bool {
	return s.machine.Fire(ctx, triggerPause) == nil
}

// Resume continues the countdown from where Pause left it. If nothing is left
// the scheduler expires instead. No-op unless paused, and always a no-op for
// persistent toasts.
func (s *Scheduler) Resume(ctx context.Context) bool {
	return s.machine.Fire(ctx, triggerResume) == nil
}

// Dismiss ends the lifecycle from any non-terminal state. Idempotent.
func (s *Scheduler) Dismiss(ctx context.Context) bool {
	return s.machine.Fire(ctx, triggerDismiss) == nil
}

// Fire expires a running scheduler. Callbacks from timers that have since
// been stopped or replaced carry an old generation and are rejected.
func (s *Scheduler) Fire(ctx context.Context, generation uint64) bool {
	if generation != s.generation || s.timer == nil {
		return false
	}
	return s.machine.Fire(ctx, triggerFire) == nil
}

func (s *Scheduler) State() State {
	return s.machine.Current()
}

func (s *Scheduler) Persistent() bool {
	return s.persistent
}

// Remaining returns the time left before expiry, computed live while running.
func (s *Scheduler) Remaining() time.Duration {
	if s.machine.Current() == StateRunning {
		return s.remainingAt(s.clock.Now())
	}
	return s.remaining
}

func (s *Scheduler) Status() Status {
	return Status{
		State:      s.State(),
		Remaining:  s.Remaining(),
		Persistent: s.persistent,
	}
}

// Armed reports whether a timer is outstanding.
func (s *Scheduler) Armed() bool {
	return s.timer != nil
}

func (s *Scheduler) remainingAt(now time.Time) time.Duration {
	return max(0, s.remaining-now.Sub(s.runStartedAt))
}

func (s *Scheduler) timed(context.Context, State, trigger) bool {
	return s.remaining > 0
}

func (s *Scheduler) resumable(context.Context, State, trigger) bool {
	return !s.persistent
}

func (s *Scheduler) hasRemaining(context.Context, State, trigger) bool {
	return s.remaining > 0
}

// arm schedules the single outstanding timer for the current remaining time.
func (s *Scheduler) arm(context.Context, State, State, trigger) error {
	s.stopTimer()
	gen := s.generation
	s.runStartedAt = s.clock.Now()
	s.timer = s.clock.AfterFunc(s.remaining, func() { s.onFire(gen) })
	return nil
}

func (s *Scheduler) hold(context.Context, State, State, trigger) error {
	s.persistent = true
	return nil
}

// freeze charges the elapsed running time and cancels the timer.
func (s *Scheduler) freeze(context.Context, State, State, trigger) error {
	s.remaining = s.remainingAt(s.clock.Now())
	s.stopTimer()
	return nil
}

func (s *Scheduler) exhaust(context.Context, State, State, trigger) error {
	s.remaining = 0
	s.stopTimer()
	return nil
}

// stopTimer cancels the outstanding timer and invalidates its generation so
// a callback that already escaped Stop cannot act.
func (s *Scheduler) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}
