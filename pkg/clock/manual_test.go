package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedeck/notedeck/pkg/clock"
)

func TestManual_AfterFunc(t *testing.T) {
	t.Parallel()

	start := time.Unix(1_700_000_000, 0)

	t.Run("fires once deadline is reached", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(start)

		fired := 0
		clk.AfterFunc(100*time.Millisecond, func() { fired++ })

		clk.Advance(99 * time.Millisecond)
		assert.Equal(t, 0, fired)
		assert.Equal(t, 1, clk.Pending())

		clk.Advance(time.Millisecond)
		assert.Equal(t, 1, fired)
		assert.Equal(t, 0, clk.Pending())

		clk.Advance(time.Second)
		assert.Equal(t, 1, fired, "timer must fire only once")
	})

	t.Run("now reports the deadline inside the callback", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(start)

		var seen time.Time
		clk.AfterFunc(250*time.Millisecond, func() { seen = clk.Now() })
		clk.Advance(time.Second)

		assert.Equal(t, start.Add(250*time.Millisecond), seen)
		assert.Equal(t, start.Add(time.Second), clk.Now())
	})

	t.Run("fires in deadline order then arm order", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(start)

		var order []string
		clk.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
		clk.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
		clk.AfterFunc(20*time.Millisecond, func() { order = append(order, "c") })

		clk.Advance(20 * time.Millisecond)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("timers armed by callbacks fire within the same advance", func(t *testing.T) {
		t.Parallel()
		clk := clock.NewManual(start)

		fired := 0
		clk.AfterFunc(10*time.Millisecond, func() {
			fired++
			clk.AfterFunc(10*time.Millisecond, func() { fired++ })
		})

		clk.Advance(15 * time.Millisecond)
		assert.Equal(t, 1, fired)

		clk.Advance(5 * time.Millisecond)
		assert.Equal(t, 2, fired)
	})
}

func TestManual_Stop(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(time.Unix(0, 0))

	fired := false
	timer := clk.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports already stopped")
	assert.Equal(t, 0, clk.Pending())

	clk.Advance(time.Hour)
	assert.False(t, fired)
}

func TestManual_StopAfterFire(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(time.Unix(0, 0))
	timer := clk.AfterFunc(time.Millisecond, func() {})
	clk.Advance(time.Millisecond)

	assert.False(t, timer.Stop())
}

func TestSystem(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	clock.System.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("system timer did not fire")
	}

	before := clock.System.Now()
	assert.False(t, clock.System.Now().Before(before))
}
