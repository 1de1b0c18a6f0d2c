package events

import "testing"

func TestSubscribeEmitOrder(t *testing.T) {
	b := NewBus()
	var order []int
	b.Subscribe("ping", func(any) { order = append(order, 1) })
	b.Subscribe("ping", func(any) { order = append(order, 2) })

	b.Emit("ping", nil)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("handlers ran out of order: %v", order)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	unsub := b.Subscribe("ping", func(any) { calls++ })

	b.Emit("ping", nil)
	unsub()
	b.Emit("ping", nil)

	if calls != 1 {
		t.Fatalf("expected 1 call after unsubscribe, got %d", calls)
	}
	if n := b.SubscriberCount("ping"); n != 0 {
		t.Fatalf("expected 0 subscribers, got %d", n)
	}

	// Calling the unsubscribe func again is harmless.
	unsub()
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	b := NewBus()
	var unsub func()
	first := 0
	second := 0
	unsub = b.Subscribe("ping", func(any) {
		first++
		unsub()
	})
	b.Subscribe("ping", func(any) { second++ })

	b.Emit("ping", nil)
	if first != 1 || second != 1 {
		t.Fatalf("mid-dispatch unsubscribe skipped a handler: first=%d second=%d", first, second)
	}

	b.Emit("ping", nil)
	if first != 1 || second != 2 {
		t.Fatalf("unsubscribed handler still running: first=%d second=%d", first, second)
	}
}

func TestEmitPayload(t *testing.T) {
	b := NewBus()
	var got any
	b.Subscribe(GridSizeChange, func(data any) { got = data })

	b.Emit(GridSizeChange, 16)
	if got != 16 {
		t.Fatalf("payload lost: %v", got)
	}

	// Emitting an event nobody listens to is a no-op.
	b.Emit(TestStop, nil)
}
