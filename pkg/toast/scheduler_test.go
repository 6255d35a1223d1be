package toast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedeck/notedeck/pkg/clock"
	"github.com/notedeck/notedeck/pkg/toast"
)

func newScheduler(clk clock.Clock, d time.Duration) (*toast.Scheduler, *int) {
	fired := new(int)
	var s *toast.Scheduler
	s = toast.NewScheduler(clk, d, func(gen uint64) {
		if s.Fire(context.Background(), gen) {
			*fired++
		}
	})
	return s, fired
}

func TestScheduler_Start(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("timed toast runs and expires", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		s, fired := newScheduler(clk, time.Second)

		assert.Equal(t, toast.StateIdle, s.State())
		require.True(t, s.Start(ctx))
		assert.Equal(t, toast.StateRunning, s.State())
		assert.True(t, s.Armed())
		assert.Equal(t, 1, clk.Pending())

		clk.Advance(999 * time.Millisecond)
		assert.Equal(t, toast.StateRunning, s.State())
		assert.Equal(t, time.Millisecond, s.Remaining())

		clk.Advance(time.Millisecond)
		assert.Equal(t, toast.StateExpired, s.State())
		assert.Equal(t, 1, *fired)
		assert.False(t, s.Armed())
		assert.Equal(t, time.Duration(0), s.Remaining())
	})

	t.Run("zero duration holds without a timer", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		s, fired := newScheduler(clk, 0)

		require.True(t, s.Start(ctx))
		assert.Equal(t, toast.StatePaused, s.State())
		assert.True(t, s.Persistent())
		assert.Equal(t, 0, clk.Pending())

		assert.False(t, s.Resume(ctx))
		assert.False(t, s.Pause(ctx))
		clk.Advance(24 * time.Hour)
		assert.Equal(t, toast.StatePaused, s.State())
		assert.Zero(t, *fired)

		require.True(t, s.Dismiss(ctx))
		assert.Equal(t, toast.StateDismissed, s.State())
	})

	t.Run("start twice is a no-op", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		s, _ := newScheduler(clk, time.Second)

		require.True(t, s.Start(ctx))
		assert.False(t, s.Start(ctx))
		assert.Equal(t, 1, clk.Pending())
	})
}

func TestScheduler_PauseResume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("charges only running time", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		s, fired := newScheduler(clk, time.Second)
		require.True(t, s.Start(ctx))

		clk.Advance(300 * time.Millisecond)
		require.True(t, s.Pause(ctx))
		assert.Equal(t, 700*time.Millisecond, s.Remaining())
		assert.Equal(t, 0, clk.Pending())

		clk.Advance(time.Hour)
		assert.Equal(t, 700*time.Millisecond, s.Remaining())

		require.True(t, s.Resume(ctx))
		clk.Advance(699 * time.Millisecond)
		assert.Equal(t, toast.StateRunning, s.State())
		clk.Advance(time.Millisecond)
		assert.Equal(t, toast.StateExpired, s.State())
		assert.Equal(t, 1, *fired)
	})

	t.Run("many cycles sum to the duration", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		s, _ := newScheduler(clk, time.Second)
		require.True(t, s.Start(ctx))

		for range 9 {
			clk.Advance(100 * time.Millisecond)
			require.True(t, s.Pause(ctx))
			clk.Advance(5 * time.Second)
			require.True(t, s.Resume(ctx))
		}
		assert.Equal(t, 100*time.Millisecond, s.Remaining())

		clk.Advance(99 * time.Millisecond)
		assert.Equal(t, toast.StateRunning, s.State())
		clk.Advance(time.Millisecond)
		assert.Equal(t, toast.StateExpired, s.State())
	})

	t.Run("repeated pause and resume are no-ops", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		s, _ := newScheduler(clk, time.Second)
		require.True(t, s.Start(ctx))

		assert.False(t, s.Resume(ctx))
		clk.Advance(200 * time.Millisecond)
		require.True(t, s.Pause(ctx))
		clk.Advance(200 * time.Millisecond)
		assert.False(t, s.Pause(ctx))
		assert.Equal(t, 800*time.Millisecond, s.Remaining())
	})

	t.Run("resume with nothing left expires", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		// The callback is dropped, as if it were still waiting for the engine lock.
		s := toast.NewScheduler(clk, time.Second, func(uint64) {})
		require.True(t, s.Start(ctx))

		clk.Advance(time.Second)
		require.True(t, s.Pause(ctx))
		assert.Equal(t, time.Duration(0), s.Remaining())

		require.True(t, s.Resume(ctx))
		assert.Equal(t, toast.StateExpired, s.State())
		assert.Equal(t, 0, clk.Pending())
	})
}

func TestScheduler_Dismiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(s *toast.Scheduler)
	}{
		{"from idle", func(*toast.Scheduler) {}},
		{"from running", func(s *toast.Scheduler) { s.Start(ctx) }},
		{"from paused", func(s *toast.Scheduler) { s.Start(ctx); s.Pause(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			clk := clock.NewManual(epoch)
			s, fired := newScheduler(clk, time.Second)
			tt.setup(s)

			require.True(t, s.Dismiss(ctx))
			assert.Equal(t, toast.StateDismissed, s.State())
			assert.False(t, s.Armed())
			assert.Equal(t, 0, clk.Pending())

			assert.False(t, s.Dismiss(ctx))
			assert.False(t, s.Resume(ctx))
			clk.Advance(time.Hour)
			assert.Zero(t, *fired)
		})
	}

	t.Run("after expiry", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(epoch)
		s, _ := newScheduler(clk, time.Second)
		s.Start(ctx)
		clk.Advance(time.Second)

		assert.False(t, s.Dismiss(ctx))
		assert.Equal(t, toast.StateExpired, s.State())
	})
}

func TestScheduler_StaleCallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	clk := &captureClock{now: epoch}
	fired := 0
	var s *toast.Scheduler
	s = toast.NewScheduler(clk, time.Second, func(gen uint64) {
		if s.Fire(ctx, gen) {
			fired++
		}
	})

	require.True(t, s.Start(ctx))
	require.True(t, s.Pause(ctx))
	require.True(t, s.Resume(ctx))
	require.Len(t, clk.callbacks, 2)

	clk.callbacks[0]()
	assert.Equal(t, toast.StateRunning, s.State())
	assert.Zero(t, fired)

	clk.callbacks[1]()
	assert.Equal(t, toast.StateExpired, s.State())
	assert.Equal(t, 1, fired)

	clk.callbacks[1]()
	assert.Equal(t, 1, fired)
}

func TestScheduler_Status(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(epoch)
	s, _ := newScheduler(clk, 2*time.Second)
	s.Start(context.Background())
	clk.Advance(500 * time.Millisecond)

	assert.Equal(t, toast.Status{
		State:     toast.StateRunning,
		Remaining: 1500 * time.Millisecond,
	}, s.Status())
}
