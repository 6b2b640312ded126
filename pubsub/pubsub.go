// Package pubsub provides the generic publish/subscribe event system used
// for host navigated events, registry changes, and log fan-out.
package pubsub

import (
	"context"
	"time"
)

// EventType identifies what happened to the payload.
type EventType string

const (
	// NavigatedEvent is published by a host after a content swap.
	NavigatedEvent EventType = "navigated"

	// HostRegisteredEvent is published when a host joins a manager's registry.
	HostRegisteredEvent EventType = "host_registered"

	// HostUnregisteredEvent is published when a host leaves a manager's registry.
	HostUnregisteredEvent EventType = "host_unregistered"

	// LogEvent is published for each log entry written by the log package.
	LogEvent EventType = "log"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
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
