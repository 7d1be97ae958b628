package domain

import "context"

// Event subjects, relative to the configured prefix.
const (
	EventEntryAppended    = "entries.appended"
	EventTaskFinished     = "tasks.finished"
	EventNotificationRead = "notifications.read"
)

// EventPublisher is the port for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements EventPublisher.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }
