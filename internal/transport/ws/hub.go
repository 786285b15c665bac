package ws

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub tracks all active WebSocket clients by user id. A user reconnecting
// replaces their previous client; the old connection is told to stop.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
		log:     log,
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	prev := h.clients[client.sess.UserID]
	h.clients[client.sess.UserID] = client
	total := len(h.clients)
	h.mu.Unlock()

	if prev != nil {
		prev.stop()
	}
	h.log.Info("client connected",
		zap.String("user_id", client.sess.UserID.String()),
		zap.Int("total", total),
	)
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if h.clients[client.sess.UserID] == client {
		delete(h.clients, client.sess.UserID)
	}
	total := len(h.clients)
	h.mu.Unlock()

	client.stop()
	h.log.Info("client disconnected",
		zap.String("user_id", client.sess.UserID.String()),
		zap.Int("total", total),
	)
}

func (h *Hub) client(userID uuid.UUID) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[userID]
}
