// Package pubsub provides a generic publish/subscribe event system used to
// push registry and ledger changes to observers such as the TUI.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of change being published.
type EventType string

const (
	CreatedEvent  EventType = "created"
	UpdatedEvent  EventType = "updated"
	DeletedEvent  EventType = "deleted"
	ReplacedEvent EventType = "replaced" // bulk overwrite (import, clear-for-exercise)
)

// Event carries the full collection after a change. Seq increases by one per
// Publish on a broker, so a gap means the subscriber dropped an event.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Seq       uint64
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
