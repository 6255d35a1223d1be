package statemachine

import (
	"fmt"
)

// Option configures a Machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// New creates a machine in the given initial state.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := newMachine[S, E](initial)
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics if any option fails to apply.
// Transition tables are static program data, so a bad table is a programming error.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTerminal marks states from which no transition may leave.
// It must precede any WithTransition that starts in one of these states,
// otherwise construction fails with ErrTerminalState.
func WithTerminal[S, E comparable](states ...S) Option[S, E] {
	return func(m *Machine[S, E]) error {
		for _, s := range states {
			if _, ok := m.transitions[s]; ok {
				return NewErrTerminalState(fmt.Sprint(s))
			}
			m.terminal[s] = struct{}{}
		}
		return nil
	}
}

// WithTransition adds a transition from one state to another on event.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		if err := m.AddTransition(t); err != nil {
			return fmt.Errorf("failed to add transition %v->%v on %v: %w", from, to, event, err)
		}
		return nil
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
