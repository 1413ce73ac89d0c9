package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_TURN_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes published on the internal bus and mirrored to NATS.
const (
	TypeUserRegistered     = "USER_REGISTERED"
	TypeUserLogin          = "USER_LOGIN"
	TypeChatTurnCompleted  = "CHAT_TURN_COMPLETED"
	TypeChatHistoryCleared = "CHAT_HISTORY_CLEARED"
	TypeAttachmentUploaded = "ATTACHMENT_UPLOADED"
)

// BaseEvent is the plain implementation used across services.
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
