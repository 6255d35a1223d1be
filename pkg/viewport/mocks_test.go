package viewport_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/notedeck/notedeck/pkg/broadcast"
	"github.com/notedeck/notedeck/pkg/toast"
)

// MockEngine is a mock implementation of viewport.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Publish(ctx context.Context, o toast.Options) string {
	args := m.Called(ctx, o)
	return args.String(0)
}

func (m *MockEngine) PublishPreset(ctx context.Context, name, id string) (string, error) {
	args := m.Called(ctx, name, id)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) Dismiss(ctx context.Context, id string) {
	m.Called(ctx, id)
}

func (m *MockEngine) Clear(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockEngine) Pause(ctx context.Context, id string) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}

func (m *MockEngine) Resume(ctx context.Context, id string) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}

func (m *MockEngine) Activate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEngine) Status(id string) (toast.Status, bool) {
	args := m.Called(id)
	return args.Get(0).(toast.Status), args.Bool(1)
}

func (m *MockEngine) Toasts() []toast.Toast {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]toast.Toast)
}

func (m *MockEngine) Subscribe(ctx context.Context) broadcast.Subscriber[toast.Event] {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(broadcast.Subscriber[toast.Event])
}
