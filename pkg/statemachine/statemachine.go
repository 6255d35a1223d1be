package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Action executes side effects during a transition. Returning an error aborts the
// transition and leaves the machine in its current state.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E) error

// Guard decides whether a transition may proceed given the current runtime state.
type Guard[S, E comparable] func(ctx context.Context, from S, event E) bool

// Transition defines a state change triggered by an event.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // All must pass for transition to proceed
	Actions []Action[S, E] // Executed in order before state change
}

// Machine is a concurrency-safe in-memory finite state machine over
// comparable state and event types.
// Transitions are indexed as [from][event][]Transition; when several share a
// from/event pair the first one whose guards all pass wins.
type Machine[S, E comparable] struct {
	current     S
	transitions map[S]map[E][]Transition[S, E]
	terminal    map[S]struct{}
	mu          sync.RWMutex
}

func newMachine[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
		terminal:    make(map[S]struct{}),
	}
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Terminal reports whether the current state was declared terminal with WithTerminal.
func (m *Machine[S, E]) Terminal() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.terminal[m.current]
	return ok
}

func (m *Machine[S, E]) AddTransition(t Transition[S, E]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.terminal[t.From]; ok {
		return NewErrTerminalState(fmt.Sprint(t.From))
	}

	if _, ok := m.transitions[t.From]; !ok {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
	return nil
}

// Fire applies event to the current state. Guards are evaluated first, then
// actions run in order, and only if every action succeeds does the state change.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return NewErrNoTransitionAvailable(fmt.Sprint(m.current), fmt.Sprint(event))
	}

	t := m.selectLocked(ctx, candidates, event)
	if t == nil {
		return NewErrTransitionRejected(fmt.Sprint(m.current), fmt.Sprint(event))
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.To, event); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.To
	return nil
}

// selectLocked returns the first candidate whose guards all pass. Caller must hold m.mu.
func (m *Machine[S, E]) selectLocked(ctx context.Context, candidates []Transition[S, E], event E) *Transition[S, E] {
	for i := range candidates {
		passed := true
		for _, guard := range candidates[i].Guards {
			if guard != nil && !guard(ctx, m.current, event) {
				passed = false
				break
			}
		}
		if passed {
			return &candidates[i]
		}
	}
	return nil
}
