package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_FansOutToAllSubscribers(t *testing.T) {
	bus := NewBus()
	ch1, cancel1 := bus.Subscribe()
	ch2, cancel2 := bus.Subscribe()
	defer cancel1()
	defer cancel2()

	bus.Publish(Event{Type: EventIdleTick, Payload: 42})

	ev := <-ch1
	assert.Equal(t, EventIdleTick, ev.Type)
	assert.Equal(t, 42, ev.Payload)
	ev = <-ch2
	assert.Equal(t, EventIdleTick, ev.Type)
}

func TestPublish_NoSubscribersIsFine(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Type: EventToast})
	bus.Toast("hello")
}

func TestPublish_DropsWhenBufferFull(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	for i := 0; i < 100; i++ {
		bus.Publish(Event{Type: EventIdleTick, Payload: i})
	}

	// The buffer holds 64; the overflow was dropped, not blocked on.
	assert.Len(t, ch, 64)
	first := <-ch
	assert.Equal(t, 0, first.Payload)
}

func TestCancel_ClosesChannelIdempotently(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	bus.Publish(Event{Type: EventToast})
}

func TestToast(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Toast("egg ready")
	ev := <-ch
	require.Equal(t, EventToast, ev.Type)
	assert.Equal(t, "egg ready", ev.Payload)
}