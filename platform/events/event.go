// Package events provides the in-process event bus the modules use to
// communicate without importing each other. Domain event definitions
// live in internal/events; this package only carries the machinery.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName uniquely identifies the event type, e.g. "leads.lead.created".
	EventName() string
	// OccurredAt reports when the event happened.
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events; embed it in each
// concrete event type.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a BaseEvent with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events it subscribed to.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to subscribed handlers.
type Bus interface {
	// Publish delivers the event to all handlers registered for its
	// name. Delivery is asynchronous; handler errors are logged, not
	// returned.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event in order and returns the joined
	// handler errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the event name as returned by
	// Event.EventName().
	Subscribe(eventName string, handler Handler)
}
