package toast

import (
	"context"
	"iter"
	"slices"
	"sync"
)

type entry struct {
	toast     Toast
	scheduler *Scheduler
}

// Store is the ordered set of live toasts. Position is insertion order and
// removal never reorders the rest. Removing an entry is the only way its
// scheduler is torn down.
type Store struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
	}
}

// Insert appends t. If t.ID is live the entry is replaced at the same
// position and the previous scheduler is dismissed first.
func (s *Store) Insert(ctx context.Context, t Toast, sched *Scheduler) (replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[t.ID]; ok {
		teardown(ctx, old)
		s.entries[t.ID] = &entry{toast: t, scheduler: sched}
		return true
	}

	s.order = append(s.order, t.ID)
	s.entries[t.ID] = &entry{toast: t, scheduler: sched}
	return false
}

// Remove drops id if present. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Toast{}, false
	}
	teardown(ctx, e)
	delete(s.entries, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return e.toast, true
}

// Clear tears down every scheduler and empties the store in one step.
// It returns the removed toasts in order.
func (s *Store) Clear(ctx context.Context) []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]Toast, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		teardown(ctx, e)
		removed = append(removed, e.toast)
	}
	s.order = nil
	clear(s.entries)
	return removed
}

func (s *Store) Get(id string) (Toast, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return Toast{}, false
	}
	return e.toast, true
}

func (s *Store) scheduler(id string) (*Scheduler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return e.scheduler, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// All yields live toasts in order. Every range reads the store afresh, so a
// sequence held by a renderer never goes stale.
func (s *Store) All() iter.Seq[Toast] {
	return func(yield func(Toast) bool) {
		for _, t := range s.snapshot() {
			if !yield(t) {
				return
			}
		}
	}
}

func (s *Store) snapshot() []Toast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Toast, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].toast)
	}
	return out
}

func teardown(ctx context.Context, e *entry) {
	if e.scheduler != nil {
		e.scheduler.Dismiss(ctx)
	}
}
