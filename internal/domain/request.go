package domain

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequest links two users. State false means the request is still
// pending; true means the second user accepted it. There is no rejected
// state - declining a request deletes the row.
type FriendRequest struct {
	ID           uuid.UUID `json:"idFriend"`
	IDFirstUser  uuid.UUID `json:"idFirstUser"`
	IDSecondUser uuid.UUID `json:"idSecondUser"`
	State        bool      `json:"friendRequestState"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r FriendRequest) RequestID() uuid.UUID { return r.ID }

// SharedTaskRequest offers a task to an assignee. Same two-state lifecycle
// as FriendRequest, with an extra task reference.
type SharedTaskRequest struct {
	ID             uuid.UUID `json:"idSharedTask"`
	IDTask         uuid.UUID `json:"idTask"`
	IDCreator      uuid.UUID `json:"idCreator"`
	IDAssignedUser uuid.UUID `json:"idAssignedUser"`
	State          bool      `json:"sharedTaskState"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (r SharedTaskRequest) RequestID() uuid.UUID { return r.ID }

// Request is implemented by both relationship record types.
type Request interface {
	RequestID() uuid.UUID
}
