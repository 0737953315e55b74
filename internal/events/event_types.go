package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded       EventType = "login_succeeded"
	EventLoginFailed          EventType = "login_failed"
	EventTokenRejected        EventType = "token_rejected"
	EventTokenInternalFailure EventType = "token_internal_failure"
	EventDefaultUserCreated   EventType = "default_user_created"
)

// Event represents an authentication event emitted by services and middleware.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Principal string      `json:"principal,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps a new event with an id and the current time.
func NewEvent(eventType EventType, principal string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Principal: principal,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Authorities []string  `json:"authorities"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenRejectedPayload payload.
type TokenRejectedPayload struct {
	Reason string `json:"reason"`
	Method string `json:"method"`
	Path   string `json:"path"`
}
