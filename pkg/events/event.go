package events

import "time"

// Event is the contract for domain events emitted on the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by this service.
const (
	TypeDocumentProcessed = "DOCUMENT_PROCESSED"
	TypeDocumentDeleted   = "DOCUMENT_DELETED"
	TypeMembershipGranted = "MEMBERSHIP_GRANTED"
	TypeContactReceived   = "CONTACT_RECEIVED"
)
