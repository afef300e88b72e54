// Package events provides the in-process event broadcast used to signal
// state changes to currently subscribed observers. Delivery is
// fire-and-forget: there is no replay for subscribers absent at emission
// time, and a slow subscriber loses events rather than blocking the
// publisher.
package events

import (
	"sync"

	"fiilar/internal/core/ports"

	"github.com/rs/zerolog"
)

// Bus implements ports.EventPublisher with named in-process channels.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]chan ports.Event
	log  zerolog.Logger
}

// NewBus creates a new Bus.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[string][]chan ports.Event),
		log:  log,
	}
}

// Subscribe registers an observer for events with the given name. The
// returned cancel func must be called to release the subscription.
func (b *Bus) Subscribe(name string, buffer int) (<-chan ports.Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan ports.Event, buffer)

	b.mu.Lock()
	b.subs[name] = append(b.subs[name], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		channels := b.subs[name]
		for i, c := range channels {
			if c == ch {
				b.subs[name] = append(channels[:i], channels[i+1:]...)
				close(c)
				return
			}
		}
	}
	return ch, cancel
}

// Publish broadcasts the event to current subscribers without blocking.
// Events for full subscriber buffers are dropped.
func (b *Bus) Publish(event ports.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[event.Name] {
		select {
		case ch <- event:
		default:
			b.log.Warn().Str("event", event.Name).Msg("subscriber buffer full, event dropped")
		}
	}
}
