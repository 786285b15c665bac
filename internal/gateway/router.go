package gateway

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// HandlerFunc processes one inbound event. The session and emitter are
// closed over at registration time, so a handler only sees the payload.
type HandlerFunc func(ctx context.Context, payload json.RawMessage)

// EventError is the catch-all outbound event for protocol-level failures
// (unknown event names, recovered panics).
const EventError = "error"

// Registrar installs a set of event handlers for one connection. Both
// workflow lifecycles implement it.
type Registrar interface {
	Register(r *Router, sess Session, emit Emitter)
}

// Router is a per-connection table of named event handlers, bound once
// after authentication succeeds. Dispatch runs one handler to completion
// before the caller reads the next event, so handlers on a single
// connection never interleave.
type Router struct {
	handlers map[string]HandlerFunc
	emit     Emitter
	log      *zap.Logger
}

func NewRouter(emit Emitter, log *zap.Logger) *Router {
	return &Router{
		handlers: make(map[string]HandlerFunc),
		emit:     emit,
		log:      log,
	}
}

func (r *Router) Handle(event string, h HandlerFunc) {
	r.handlers[event] = h
}

// Dispatch routes one inbound event. A panicking handler is recovered and
// reported on this connection only; the connection stays usable.
func (r *Router) Dispatch(ctx context.Context, event string, payload json.RawMessage) {
	h, ok := r.handlers[event]
	if !ok {
		r.emit.Emit(EventError, ErrorPayload{Message: "unknown event: " + event})
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("handler panic", zap.String("event", event), zap.Any("panic", rec))
			r.emit.Emit(EventError, ErrorPayload{Message: "Something went wrong"})
		}
	}()

	h(ctx, payload)
}
