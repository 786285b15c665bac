package gateway

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/taskmate/internal/domain"
	"github.com/vedran77/taskmate/internal/repository"
	"github.com/vedran77/taskmate/pkg/validator"
	"go.uber.org/zap"
)

// SharedTaskEvents mirrors FriendEvents for the task-sharing workflow.
var SharedTaskEvents = EventNames{
	List:        "get_shared_task_requests",
	ListOK:      "shared_task_requests",
	ListError:   "shared_task_requests_error",
	Send:        "send_shared_task_request",
	SendOK:      "shared_task_request_sent",
	SendError:   "shared_task_request_sent_error",
	Accept:      "accept_shared_task_request",
	AcceptOK:    "shared_task_request_accepted",
	AcceptError: "shared_task_request_accepted_error",
	Delete:      "delete_shared_task_request",
	DeleteOK:    "shared_task_request_deleted",
	DeleteError: "shared_task_request_deleted_error",

	PeerNew:     "shared_task_request_received",
	PeerUpdated: "shared_task_request_updated",
	PeerRemoved: "shared_task_request_removed",

	IDField:         "sharedTaskId",
	RecordField:     "sharedTask",
	EmptyMessage:    "No shared task requests found",
	NotFoundMessage: "Shared task request not found",
}

func NewSharedTaskLifecycle(repo repository.RequestRepository[domain.SharedTaskRequest], peers PeerNotifier, log *zap.Logger) *Lifecycle[domain.SharedTaskRequest] {
	return NewLifecycle(SharedTaskEvents, repo, sharedTaskCodec{}, peers, log)
}

type sharedTaskCodec struct{}

func (sharedTaskCodec) BuildCreate(sess Session, payload json.RawMessage) (*domain.SharedTaskRequest, validator.Errors) {
	var errs validator.Errors

	var in struct {
		IDTask         string `json:"idTask"`
		IDAssignedUser string `json:"idAssignedUser"`
		State          any    `json:"sharedTaskState"`
	}
	if err := validator.DecodeObject(payload, &in); err != nil {
		errs.Add("payload", "malformed payload")
		return nil, errs
	}

	validator.UUID("idTask", in.IDTask, &errs)
	validator.UUID("idCreator", sess.UserID.String(), &errs)
	validator.UUID("idAssignedUser", in.IDAssignedUser, &errs)
	state, ok := validator.Bool("sharedTaskState", in.State, &errs)
	if errs.HasErrors() {
		return nil, errs
	}
	if !ok {
		state = false
	}

	return &domain.SharedTaskRequest{
		ID:             uuid.New(),
		IDTask:         uuid.MustParse(in.IDTask),
		IDCreator:      sess.UserID,
		IDAssignedUser: uuid.MustParse(in.IDAssignedUser),
		State:          state,
		CreatedAt:      time.Now(),
	}, nil
}

func (sharedTaskCodec) ParseFilters(payload json.RawMessage) (repository.RequestFilters, validator.Errors) {
	var errs validator.Errors
	var filters repository.RequestFilters

	var in struct {
		IDTask         string `json:"idTask"`
		IDCreator      string `json:"idCreator"`
		IDAssignedUser string `json:"idAssignedUser"`
		State          any    `json:"sharedTaskState"`
	}
	if err := validator.DecodeObject(payload, &in); err != nil {
		errs.Add("payload", "malformed payload")
		return filters, errs
	}

	validator.OptionalUUID("idTask", in.IDTask, &errs)
	validator.OptionalUUID("idCreator", in.IDCreator, &errs)
	validator.OptionalUUID("idAssignedUser", in.IDAssignedUser, &errs)
	state, hasState := validator.Bool("sharedTaskState", in.State, &errs)
	if errs.HasErrors() {
		return filters, errs
	}

	if in.IDTask != "" {
		id := uuid.MustParse(in.IDTask)
		filters.Task = &id
	}
	if in.IDCreator != "" {
		id := uuid.MustParse(in.IDCreator)
		filters.Initiator = &id
	}
	if in.IDAssignedUser != "" {
		id := uuid.MustParse(in.IDAssignedUser)
		filters.Target = &id
	}
	if hasState {
		filters.State = &state
	}
	return filters, nil
}

func (sharedTaskCodec) Counterpart(rec *domain.SharedTaskRequest, viewer uuid.UUID) uuid.UUID {
	if rec.IDCreator == viewer {
		return rec.IDAssignedUser
	}
	return rec.IDCreator
}
