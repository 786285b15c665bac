package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/vedran77/taskmate/internal/gateway"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Client represents a single authenticated WebSocket connection. It
// implements gateway.Emitter, so lifecycle handlers report outcomes
// straight back to the connection that raised the event.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	sess   gateway.Session
	router *gateway.Router

	send chan []byte
	done chan struct{}
	once sync.Once

	log *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, sess gateway.Session, log *zap.Logger) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		sess: sess,
		send: make(chan []byte, sendBufSize),
		done: make(chan struct{}),
		log:  log.With(zap.String("user_id", sess.UserID.String())),
	}
}

// bind installs the connection's handler table. Called once, before the
// pumps start.
func (c *Client) bind(registrars []gateway.Registrar) {
	c.router = gateway.NewRouter(c, c.log)
	for _, reg := range registrars {
		reg.Register(c.router, c.sess, c)
	}
}

// Emit marshals a named event and queues it for the write pump. Emissions
// to a stopped connection are dropped.
func (c *Client) Emit(event string, payload any) {
	evt, err := NewEvent(event, payload)
	if err != nil {
		c.log.Error("emit marshal failed", zap.String("event", event), zap.Error(err))
		return
	}
	c.enqueue(evt)
}

func (c *Client) enqueue(evt *Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- data:
	default:
		// Buffer full: drop rather than block a handler.
	}
}

func (c *Client) stop() {
	c.once.Do(func() { close(c.done) })
}

// ReadPump reads inbound events and dispatches them one at a time. Each
// event runs to completion, repository round-trips included, before the
// next read, which is what gives a single connection its in-order,
// non-interleaved processing.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(ctx, c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				c.log.Info("client closed connection")
			} else {
				c.log.Warn("read error", zap.Error(err))
			}
			return
		}

		c.handleEvent(ctx, &event)
	}
}

func (c *Client) handleEvent(ctx context.Context, event *Event) {
	switch event.Type {
	case EventTypePing:
		c.Emit(EventTypePong, nil)

	case EventTypeDisconnect:
		// Log only. In-flight repository work is neither cancelled nor
		// rolled back.
		c.log.Info("disconnect requested")

	default:
		c.router.Dispatch(ctx, event.Type, event.Payload)
	}
}

// WritePump writes queued events to the WebSocket and keeps the
// connection alive with pings.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(wctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.log.Warn("write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(wctx)
			cancel()
			if err != nil {
				c.log.Warn("ping error", zap.Error(err))
				return
			}

		case <-c.done:
			return
		}
	}
}
