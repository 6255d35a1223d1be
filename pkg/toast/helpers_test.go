package toast_test

import (
	"context"
	"testing"
	"time"

	"github.com/notedeck/notedeck/pkg/clock"
	"github.com/notedeck/notedeck/pkg/logger"
	"github.com/notedeck/notedeck/pkg/toast"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...toast.Option) (*toast.Engine, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(epoch)
	base := []toast.Option{
		toast.WithClock(clk),
		toast.WithLogger(logger.Discard()),
	}
	e := toast.New(append(base, opts...)...)
	t.Cleanup(func() { _ = e.Close() })
	return e, clk
}

func ids(e *toast.Engine) []string {
	var out []string
	for t := range e.List() {
		out = append(out, t.ID)
	}
	return out
}

func publish(e *toast.Engine, id string, d time.Duration) string {
	return e.Publish(context.Background(), toast.Options{ID: id, Duration: toast.Duration(d)})
}

// captureClock keeps every callback it is given, even after Stop, which is
// what a real timer looks like when its goroutine has already started.
type captureClock struct {
	now       time.Time
	callbacks []func()
}

func (c *captureClock) Now() time.Time { return c.now }

func (c *captureClock) AfterFunc(_ time.Duration, f func()) clock.Timer {
	c.callbacks = append(c.callbacks, f)
	return leakyTimer{}
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return true }
