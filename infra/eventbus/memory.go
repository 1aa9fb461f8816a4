// Package eventbus provides the in-process event bus implementation.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tincan-finance/tincan/pkg/eventbus"
)

// MemoryEventBus dispatches events synchronously to in-process handlers.
// Handler errors are logged, never propagated to the emitter: a failed alert
// write must not roll back the business operation that raised the event.
type MemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]eventbus.HandlerFunc
	logger   *slog.Logger
}

// NewWithMemory creates an in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
}

// Register adds a handler for an event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to every handler registered for its type.
func (b *MemoryEventBus) Emit(ctx context.Context, e eventbus.Event) error {
	b.mu.RLock()
	handlers := b.handlers[e.Type()]
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			b.logger.Error("event handler failed", "type", e.Type(), "error", err)
		}
	}
	return nil
}
