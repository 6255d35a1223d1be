// Package statemachine provides a small generic finite state machine.
//
// States and events are any comparable types, typically string-backed
// constants declared by the owning package:
//
//	type phase string
//	type signal string
//
//	const (
//	    Idle    phase  = "idle"
//	    Running phase  = "running"
//	    Done    phase  = "done"
//	    Start   signal = "start"
//	    Finish  signal = "finish"
//	)
//
//	m := statemachine.MustNew(Idle,
//	    statemachine.WithTerminal[phase, signal](Done),
//	    statemachine.WithTransition(Idle, Running, Start),
//	    statemachine.WithTransition(Running, Done, Finish),
//	)
//
//	_ = m.Fire(ctx, Start)
//
// # Guards and Actions
//
// Guards veto a transition based on runtime data. Several transitions may share
// a from/event pair; the first whose guards all pass is taken, which gives
// guard-based branching:
//
//	statemachine.WithTransition(Paused, Running, Resume,
//	    statemachine.WithGuard[phase, signal](hasTimeLeft),
//	)
//	statemachine.WithTransition(Paused, Expired, Resume)
//
// Actions run after guards and before the state changes. An action error
// aborts the transition and is returned wrapped from Fire.
//
// # Error Handling
//
//	if statemachine.IsNoTransitionAvailableError(err) { /* event not valid here */ }
//	if statemachine.IsTransitionRejectedError(err)   { /* guards said no */ }
//
// # Concurrency
//
// Machine guards its state with a RWMutex. Guards and actions run while the
// lock is held and must not call back into the same machine.
package statemachine
