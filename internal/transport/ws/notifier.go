package ws

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier implements gateway.PeerNotifier on top of the Hub. Delivery is
// best-effort: offline users and full buffers are silently skipped.
type Notifier struct {
	hub *Hub
	log *zap.Logger
}

func NewNotifier(hub *Hub, log *zap.Logger) *Notifier {
	return &Notifier{hub: hub, log: log}
}

func (n *Notifier) NotifyUser(userID uuid.UUID, event string, payload any) {
	client := n.hub.client(userID)
	if client == nil {
		return
	}
	evt, err := NewEvent(event, payload)
	if err != nil {
		n.log.Error("notifier marshal failed", zap.String("event", event), zap.Error(err))
		return
	}
	client.enqueue(evt)
}
