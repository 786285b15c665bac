package gateway_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/taskmate/internal/gateway"
	"go.uber.org/zap"
)

func TestRouterDispatch(t *testing.T) {
	t.Run("routes to the registered handler", func(t *testing.T) {
		emit := &recordingEmitter{}
		r := gateway.NewRouter(emit, zap.NewNop())

		var got json.RawMessage
		r.Handle("custom_event", func(_ context.Context, payload json.RawMessage) {
			got = payload
		})

		r.Dispatch(context.Background(), "custom_event", json.RawMessage(`{"a":1}`))
		assert.JSONEq(t, `{"a":1}`, string(got))
		assert.Empty(t, emit.events)
	})

	t.Run("unknown event is reported on the error channel", func(t *testing.T) {
		emit := &recordingEmitter{}
		r := gateway.NewRouter(emit, zap.NewNop())

		r.Dispatch(context.Background(), "no_such_event", nil)

		require.Len(t, emit.events, 1)
		assert.Equal(t, gateway.EventError, emit.events[0].event)
		body := emit.events[0].payload.(gateway.ErrorPayload)
		assert.Contains(t, body.Message, "no_such_event")
	})

	t.Run("a panicking handler does not take down the connection", func(t *testing.T) {
		emit := &recordingEmitter{}
		r := gateway.NewRouter(emit, zap.NewNop())

		r.Handle("explodes", func(context.Context, json.RawMessage) {
			panic("boom")
		})
		calls := 0
		r.Handle("fine", func(context.Context, json.RawMessage) {
			calls++
		})

		require.NotPanics(t, func() {
			r.Dispatch(context.Background(), "explodes", nil)
		})
		require.Len(t, emit.events, 1)
		assert.Equal(t, gateway.EventError, emit.events[0].event)

		// The next event on the same connection still dispatches.
		r.Dispatch(context.Background(), "fine", nil)
		assert.Equal(t, 1, calls)
	})
}
