package events

import (
	"context"
	"sync"
)

// HandlerFunc receives a published event. Handlers run synchronously on
// the publisher's goroutine, in subscription order; a handler that wants
// asynchrony owns its own queue.
type HandlerFunc func(ctx context.Context, e Event)

// Bus is a minimal typed publish/subscribe hub. It replaces the ad-hoc
// cross-component refresh signals the mobile client used to push through
// global DOM events.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]HandlerFunc
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]HandlerFunc)}
}

func (b *Bus) Subscribe(topic string, h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := b.subs[e.Topic()]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}
