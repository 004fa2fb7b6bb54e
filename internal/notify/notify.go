// Package notify is the in-process event feed: subsystems publish
// typed events, subscribers (the websocket feed, tests) receive them
// on buffered channels. Publish never blocks; a slow subscriber drops.
package notify

import "sync"

type EventType string

const (
	EventIdleTick       EventType = "idle_tick"
	EventOfflineSummary EventType = "offline_summary"
	EventAdProgress     EventType = "ad_progress"
	EventToast          EventType = "toast"
)

// Event is a published notification with a free-form payload.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: map[int]chan Event{}}
}

// Subscribe returns a buffered event channel and a cancel func that
// closes it.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, 64)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the event out without blocking. Full subscriber
// buffers lose the event.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Toast publishes a user-facing message.
func (b *Bus) Toast(msg string) {
	b.Publish(Event{Type: EventToast, Payload: msg})
}
