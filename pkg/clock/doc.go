// Package clock abstracts time so that timer-driven code can be tested
// deterministically.
//
// Production code depends on the Clock interface and receives System:
//
//	engine := toast.New(toast.WithClock(clock.System))
//
// Tests use Manual and move time explicitly:
//
//	clk := clock.NewManual(time.Unix(0, 0))
//	clk.AfterFunc(time.Second, func() { fired = true })
//	clk.Advance(time.Second) // fired == true
//
// Manual fires callbacks synchronously from Advance, so a test observes every
// side effect as soon as Advance returns. Pending reports how many timers are
// still armed, which makes leaked timers easy to assert against.
package clock
