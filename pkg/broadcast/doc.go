// Package broadcast provides type-safe in-process fan-out.
//
// The toast engine publishes its change events through a MemoryBroadcaster so
// that every open viewport stream re-renders:
//
//	b := broadcast.NewMemoryBroadcaster[toast.Event](32)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	for msg := range sub.Receive(ctx) {
//		render(msg.Data)
//	}
//
// Broadcast never blocks. When a subscriber's buffer is full the message is
// dropped for that subscriber and counted in Dropped; the subscription itself
// stays open. Subscriptions end when their context is canceled, when Close is
// called on them, or when the broadcaster closes.
package broadcast
