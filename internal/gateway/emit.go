package gateway

import (
	"github.com/google/uuid"
	"github.com/vedran77/taskmate/pkg/validator"
)

// Emitter sends a named event back to the connection that triggered the
// handler. Implementations must be safe to call from the handler goroutine
// and must drop emissions to closed connections.
type Emitter interface {
	Emit(event string, payload any)
}

// PeerNotifier pushes an event to another connected user. Delivery is
// best-effort: an offline peer is not an error.
type PeerNotifier interface {
	NotifyUser(userID uuid.UUID, event string, payload any)
}

// ErrorPayload is the body of every *_error event.
type ErrorPayload struct {
	Message string           `json:"message"`
	Details validator.Errors `json:"details,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Error codes carried in ErrorPayload.Error.
const (
	ErrCodeNotFound = "not_found"
	ErrCodeStorage  = "storage_error"
)
