// Package events publishes roster changes for downstream consumers.
package events

import (
	"context"
	"time"
)

// Event types carried in the event_type header and payload.
const (
	EventParticipantSignedUp     = "participant.signed_up"
	EventParticipantUnregistered = "participant.unregistered"
)

// RosterChanged is emitted after a participant is added to or removed from an activity.
type RosterChanged struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Delta reports the roster length change implied by the event.
func (e RosterChanged) Delta() int {
	switch e.EventType {
	case EventParticipantSignedUp:
		return 1
	case EventParticipantUnregistered:
		return -1
	default:
		return 0
	}
}

// Publisher defines the roster event delivery contract.
type Publisher interface {
	Publish(ctx context.Context, evt RosterChanged) error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

// Publish performs no action.
func (NoopPublisher) Publish(context.Context, RosterChanged) error { return nil }
