package fixtures

import (
	"context"
	"sync"

	"github.com/tincan-finance/tincan/pkg/eventbus"
)

// RecorderBus records emitted events and forwards them to any registered
// handlers, so tests can assert both on emission and on downstream effects.
type RecorderBus struct {
	mu       sync.Mutex
	events   []eventbus.Event
	handlers map[string][]eventbus.HandlerFunc
}

// NewRecorderBus creates an empty recorder bus.
func NewRecorderBus() *RecorderBus {
	return &RecorderBus{handlers: map[string][]eventbus.HandlerFunc{}}
}

// Register implements eventbus.Bus.
func (b *RecorderBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit implements eventbus.Bus. Handler errors are swallowed, matching the
// in-memory bus the server runs with.
func (b *RecorderBus) Emit(ctx context.Context, e eventbus.Event) error {
	b.mu.Lock()
	b.events = append(b.events, e)
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[e.Type()]...)
	b.mu.Unlock()
	for _, h := range handlers {
		_ = h(ctx, e)
	}
	return nil
}

// Events returns everything emitted so far.
func (b *RecorderBus) Events() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.Event(nil), b.events...)
}

// EventsOf returns the emitted events of one type.
func (b *RecorderBus) EventsOf(eventType string) []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.Event
	for _, e := range b.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

var _ eventbus.Bus = (*RecorderBus)(nil)
