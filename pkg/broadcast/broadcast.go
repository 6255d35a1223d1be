package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
)

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed when the subscriber
	// is closed, its context is canceled, or the broadcaster shuts down.
	Receive(ctx context.Context) <-chan Message[T]

	// Dropped reports how many messages were discarded because the buffer was full.
	Dropped() uint64

	// Close detaches the subscriber. Idempotent.
	Close() error
}

// Broadcaster sends messages to multiple subscribers without blocking on
// slow consumers.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context) Subscriber[T]
	Broadcast(ctx context.Context, msg Message[T]) error
	Close() error
}

type subscriber[T any] struct {
	ch      chan Message[T]
	dropped atomic.Uint64
	detach  func(*subscriber[T])
	stop    func() bool // releases the context watcher
	closed  bool
	mu      sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch: make(chan Message[T], bufferSize),
	}
}

func (s *subscriber[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *subscriber[T]) Close() error {
	if s.stop != nil {
		s.stop()
	}
	if s.detach != nil {
		s.detach(s)
		return nil
	}
	s.close()
	return nil
}

func (s *subscriber[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// send delivers without blocking. A full buffer drops the message but keeps
// the subscription alive.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}
