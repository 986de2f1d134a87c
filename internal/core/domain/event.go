package domain

import "time"

// EventType names a domain event published after a successful mutation.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventUserUpdated    EventType = "user.updated"
	EventUserDeleted    EventType = "user.deleted"

	EventProductCreated EventType = "product.created"
	EventProductUpdated EventType = "product.updated"
	EventProductDeleted EventType = "product.deleted"
)

// Event describes a change to a user or product. Payload never carries
// password material.
type Event struct {
	Type        EventType      `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(t EventType, aggregateID string, payload map[string]any) Event {
	return Event{
		Type:        t,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}
