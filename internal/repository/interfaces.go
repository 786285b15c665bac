package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vedran77/taskmate/internal/domain"
)

// RequestFilters narrows a List call. Nil fields impose no constraint;
// specified fields are combined with AND. Task only applies to the
// shared-task repository.
type RequestFilters struct {
	Initiator *uuid.UUID
	Target    *uuid.UUID
	Task      *uuid.UUID
	State     *bool
}

// RequestRepository is the storage contract shared by both relationship
// workflows. Accept and Delete are atomic single-row operations: the
// affected-row check is the only concurrency control in the system.
type RequestRepository[T domain.Request] interface {
	List(ctx context.Context, filters RequestFilters) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	// Create inserts the record in the pending state. A nil result means
	// no row was affected.
	Create(ctx context.Context, rec *T) (*T, error)
	// Accept flips the record to accepted. A nil result means the id was
	// not found.
	Accept(ctx context.Context, id uuid.UUID) (*T, error)
	// Delete removes the record, reporting whether a row was affected.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
