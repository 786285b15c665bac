package gateway

import (
	"time"

	"github.com/google/uuid"
)

// Session is the identity bound to a connection at handshake time. It is
// built once by the authenticator and never mutated afterwards; the token
// is not re-verified for the lifetime of the connection.
type Session struct {
	UserID      uuid.UUID
	Claims      map[string]any
	ConnectedAt time.Time
}
