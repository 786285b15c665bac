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

// FriendEvents is the friend-request wire protocol.
var FriendEvents = EventNames{
	List:        "get_friend_requests",
	ListOK:      "friend_requests",
	ListError:   "friend_requests_error",
	Send:        "send_friend_request",
	SendOK:      "friend_request_sent",
	SendError:   "friend_request_sent_error",
	Accept:      "accept_friend_request",
	AcceptOK:    "friend_request_accepted",
	AcceptError: "friend_request_accepted_error",
	Delete:      "delete_friend_request",
	DeleteOK:    "friend_request_deleted",
	DeleteError: "friend_request_deleted_error",

	PeerNew:     "friend_request_received",
	PeerUpdated: "friend_request_updated",
	PeerRemoved: "friend_request_removed",

	IDField:         "friendId",
	RecordField:     "friend",
	EmptyMessage:    "No friend requests found",
	NotFoundMessage: "Friend request not found",
}

func NewFriendLifecycle(repo repository.RequestRepository[domain.FriendRequest], peers PeerNotifier, log *zap.Logger) *Lifecycle[domain.FriendRequest] {
	return NewLifecycle(FriendEvents, repo, friendCodec{}, peers, log)
}

type friendCodec struct{}

func (friendCodec) BuildCreate(sess Session, payload json.RawMessage) (*domain.FriendRequest, validator.Errors) {
	var errs validator.Errors

	var in struct {
		IDSecondUser string `json:"idSecondUser"`
		State        any    `json:"friendRequestState"`
	}
	if err := validator.DecodeObject(payload, &in); err != nil {
		errs.Add("payload", "malformed payload")
		return nil, errs
	}

	validator.UUID("idFirstUser", sess.UserID.String(), &errs)
	validator.UUID("idSecondUser", in.IDSecondUser, &errs)
	state, ok := validator.Bool("friendRequestState", in.State, &errs)
	if errs.HasErrors() {
		return nil, errs
	}
	if !ok {
		state = false
	}

	return &domain.FriendRequest{
		ID:           uuid.New(),
		IDFirstUser:  sess.UserID,
		IDSecondUser: uuid.MustParse(in.IDSecondUser),
		State:        state,
		CreatedAt:    time.Now(),
	}, nil
}

func (friendCodec) ParseFilters(payload json.RawMessage) (repository.RequestFilters, validator.Errors) {
	var errs validator.Errors
	var filters repository.RequestFilters

	var in struct {
		IDFirstUser  string `json:"idFirstUser"`
		IDSecondUser string `json:"idSecondUser"`
		State        any    `json:"friendRequestState"`
	}
	if err := validator.DecodeObject(payload, &in); err != nil {
		errs.Add("payload", "malformed payload")
		return filters, errs
	}

	validator.OptionalUUID("idFirstUser", in.IDFirstUser, &errs)
	validator.OptionalUUID("idSecondUser", in.IDSecondUser, &errs)
	state, hasState := validator.Bool("friendRequestState", in.State, &errs)
	if errs.HasErrors() {
		return filters, errs
	}

	if in.IDFirstUser != "" {
		id := uuid.MustParse(in.IDFirstUser)
		filters.Initiator = &id
	}
	if in.IDSecondUser != "" {
		id := uuid.MustParse(in.IDSecondUser)
		filters.Target = &id
	}
	if hasState {
		filters.State = &state
	}
	return filters, nil
}

func (friendCodec) Counterpart(rec *domain.FriendRequest, viewer uuid.UUID) uuid.UUID {
	if rec.IDFirstUser == viewer {
		return rec.IDSecondUser
	}
	return rec.IDFirstUser
}
