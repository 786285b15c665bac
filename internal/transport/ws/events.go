package ws

import (
	"encoding/json"
	"time"
)

// Protocol-level event types. Workflow event names live in the gateway
// package; these are the ones the transport itself owns.
const (
	EventTypeAuthError  = "auth_error"
	EventTypeDisconnect = "disconnect"
	EventTypePing       = "ping"
	EventTypePong       = "pong"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// AuthErrorPayload carries the single message sent before a failed
// handshake is closed.
type AuthErrorPayload struct {
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
