package gateway_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/taskmate/internal/domain"
	"github.com/vedran77/taskmate/internal/gateway"
	"github.com/vedran77/taskmate/internal/repository"
	"go.uber.org/zap"
)

// fakeSharedTaskRepo mirrors fakeFriendRepo for the task workflow.
type fakeSharedTaskRepo struct {
	recs        map[uuid.UUID]domain.SharedTaskRequest
	createCalls int
}

func newFakeSharedTaskRepo() *fakeSharedTaskRepo {
	return &fakeSharedTaskRepo{recs: make(map[uuid.UUID]domain.SharedTaskRequest)}
}

func (f *fakeSharedTaskRepo) List(_ context.Context, filters repository.RequestFilters) ([]domain.SharedTaskRequest, error) {
	var out []domain.SharedTaskRequest
	for _, rec := range f.recs {
		if filters.Task != nil && rec.IDTask != *filters.Task {
			continue
		}
		if filters.Initiator != nil && rec.IDCreator != *filters.Initiator {
			continue
		}
		if filters.Target != nil && rec.IDAssignedUser != *filters.Target {
			continue
		}
		if filters.State != nil && rec.State != *filters.State {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeSharedTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.SharedTaskRequest, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeSharedTaskRepo) Create(_ context.Context, rec *domain.SharedTaskRequest) (*domain.SharedTaskRequest, error) {
	f.createCalls++
	f.recs[rec.ID] = *rec
	return rec, nil
}

func (f *fakeSharedTaskRepo) Accept(_ context.Context, id uuid.UUID) (*domain.SharedTaskRequest, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	rec.State = true
	f.recs[id] = rec
	return &rec, nil
}

func (f *fakeSharedTaskRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.recs[id]; !ok {
		return false, nil
	}
	delete(f.recs, id)
	return true, nil
}

type sharedTaskHarness struct {
	repo     *fakeSharedTaskRepo
	emit     *recordingEmitter
	notifier *recordingNotifier
	router   *gateway.Router
	sess     gateway.Session
}

func newSharedTaskHarness(t *testing.T) *sharedTaskHarness {
	t.Helper()
	h := &sharedTaskHarness{
		repo:     newFakeSharedTaskRepo(),
		emit:     &recordingEmitter{},
		notifier: &recordingNotifier{},
		sess:     gateway.Session{UserID: uuid.New()},
	}
	h.router = gateway.NewRouter(h.emit, zap.NewNop())
	lc := gateway.NewSharedTaskLifecycle(h.repo, h.notifier, zap.NewNop())
	lc.Register(h.router, h.sess, h.emit)
	return h
}

func (h *sharedTaskHarness) dispatch(event, payload string) {
	h.router.Dispatch(context.Background(), event, json.RawMessage(payload))
}

func TestSharedTaskWorkflow(t *testing.T) {
	task := "22222222-2222-4222-8222-222222222222"
	assignee := "33333333-3333-4333-8333-333333333333"

	t.Run("full lifecycle mirrors the friend workflow", func(t *testing.T) {
		h := newSharedTaskHarness(t)

		h.dispatch("send_shared_task_request", fmt.Sprintf(`{"idTask":%q,"idAssignedUser":%q}`, task, assignee))
		e := h.emit.last(t)
		require.Equal(t, "shared_task_request_sent", e.event)
		body := e.payload.(map[string]any)
		rec := body["sharedTask"].(*domain.SharedTaskRequest)
		assert.False(t, rec.State)
		assert.Equal(t, task, rec.IDTask.String())
		assert.Equal(t, h.sess.UserID, rec.IDCreator)
		assert.Equal(t, assignee, rec.IDAssignedUser.String())

		h.dispatch("accept_shared_task_request", fmt.Sprintf(`{"sharedTaskId":%q}`, rec.ID))
		e = h.emit.last(t)
		require.Equal(t, "shared_task_request_accepted", e.event)
		updated := e.payload.(map[string]any)["result"].(*domain.SharedTaskRequest)
		assert.True(t, updated.State)
		assert.Equal(t, rec.ID, updated.ID)

		h.dispatch("delete_shared_task_request", fmt.Sprintf(`{"sharedTaskId":%q}`, rec.ID))
		assert.Equal(t, "shared_task_request_deleted", h.emit.last(t).event)
		assert.Empty(t, h.repo.recs)
	})

	t.Run("missing task id is a field error", func(t *testing.T) {
		h := newSharedTaskHarness(t)
		h.dispatch("send_shared_task_request", fmt.Sprintf(`{"idAssignedUser":%q}`, assignee))

		e := h.emit.last(t)
		require.Equal(t, "shared_task_request_sent_error", e.event)
		body := e.payload.(gateway.ErrorPayload)
		require.NotEmpty(t, body.Details)
		assert.Equal(t, "idTask", body.Details[0].Field)
		assert.Zero(t, h.repo.createCalls)
	})

	t.Run("task filter narrows the list", func(t *testing.T) {
		h := newSharedTaskHarness(t)
		h.dispatch("send_shared_task_request", fmt.Sprintf(`{"idTask":%q,"idAssignedUser":%q}`, task, assignee))

		h.dispatch("get_shared_task_requests", fmt.Sprintf(`{"idTask":%q}`, task))
		e := h.emit.last(t)
		require.Equal(t, "shared_task_requests", e.event)
		recs := e.payload.([]domain.SharedTaskRequest)
		assert.Len(t, recs, 1)

		h.dispatch("get_shared_task_requests", fmt.Sprintf(`{"idTask":%q}`, uuid.New()))
		assert.Equal(t, "shared_task_requests_error", h.emit.last(t).event)
	})

	t.Run("assignee is notified of the offer", func(t *testing.T) {
		h := newSharedTaskHarness(t)
		h.dispatch("send_shared_task_request", fmt.Sprintf(`{"idTask":%q,"idAssignedUser":%q}`, task, assignee))

		require.Len(t, h.notifier.calls, 1)
		assert.Equal(t, assignee, h.notifier.calls[0].userID.String())
		assert.Equal(t, "shared_task_request_received", h.notifier.calls[0].event)
	})
}
