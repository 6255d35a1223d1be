// Package toast implements the notification lifecycle engine: ephemeral
// messages that expire on their own, pause while the user interacts with
// them and can be dismissed at any point.
//
// The engine is an explicit instance. Create one per host view and close it
// when the view goes away:
//
//	engine := toast.New(
//		toast.WithLogger(log),
//		toast.WithMetrics(toast.NewMetrics()),
//	)
//	defer engine.Close()
//
//	id := engine.Publish(ctx, toast.Options{
//		Title:    "Saving…",
//		Duration: toast.Persist(),
//	})
//	// later
//	engine.Publish(ctx, toast.Options{ID: id, Title: "Saved", Variant: toast.VariantSuccess})
//
// # Lifecycle
//
// Each toast has a Scheduler built on pkg/statemachine. The countdown is
// charged only while running: a toast of one second paused after 300ms has
// exactly 700ms of running time left, however many pause/resume cycles follow.
// A zero duration means the toast stays until it is dismissed.
//
// # Concurrency
//
// Every mutation, including timer callbacks, runs under one engine mutex.
// Stopping a timer bumps the scheduler's generation, and a callback is also
// checked against the live store entry, so a timer that fires after its toast
// was paused, replaced, dismissed or cleared changes nothing. Action
// callbacks run outside the lock.
//
// # Rendering
//
// Renderers subscribe with Subscribe and re-read List on every Event. Store
// order is insertion order; visual stacking is up to the renderer.
package toast
