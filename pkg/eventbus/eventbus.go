// Package eventbus defines the event contract used to decouple the services
// that detect notable conditions from the alert service that records them.
package eventbus

import "context"

// Event is anything that can be published on the bus.
type Event interface {
	// Type returns the registration key handlers subscribe under.
	Type() string
}

// HandlerFunc consumes a single event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus dispatches events to registered handlers.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, e Event) error
}
