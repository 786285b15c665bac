package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/taskmate/internal/domain"
	"github.com/vedran77/taskmate/internal/repository"
)

type SharedTaskRepo struct {
	pool *pgxpool.Pool
}

func NewSharedTaskRepo(pool *pgxpool.Pool) *SharedTaskRepo {
	return &SharedTaskRepo{pool: pool}
}

func (r *SharedTaskRepo) List(ctx context.Context, filters repository.RequestFilters) ([]domain.SharedTaskRequest, error) {
	query := `
		SELECT id, task_id, creator_id, assigned_user_id, state, created_at
		FROM shared_task_requests
		WHERE 1=1`
	args := []any{}

	if filters.Task != nil {
		args = append(args, *filters.Task)
		query += fmt.Sprintf(" AND task_id = $%d", len(args))
	}
	if filters.Initiator != nil {
		args = append(args, *filters.Initiator)
		query += fmt.Sprintf(" AND creator_id = $%d", len(args))
	}
	if filters.Target != nil {
		args = append(args, *filters.Target)
		query += fmt.Sprintf(" AND assigned_user_id = $%d", len(args))
	}
	if filters.State != nil {
		args = append(args, *filters.State)
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.SharedTaskRequest
	for rows.Next() {
		var req domain.SharedTaskRequest
		if err := rows.Scan(&req.ID, &req.IDTask, &req.IDCreator, &req.IDAssignedUser, &req.State, &req.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *SharedTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SharedTaskRequest, error) {
	query := `
		SELECT id, task_id, creator_id, assigned_user_id, state, created_at
		FROM shared_task_requests
		WHERE id = $1`
	var req domain.SharedTaskRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.IDTask, &req.IDCreator, &req.IDAssignedUser, &req.State, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SharedTaskRepo) Create(ctx context.Context, rec *domain.SharedTaskRequest) (*domain.SharedTaskRequest, error) {
	query := `
		INSERT INTO shared_task_requests (id, task_id, creator_id, assigned_user_id, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	tag, err := r.pool.Exec(ctx, query, rec.ID, rec.IDTask, rec.IDCreator, rec.IDAssignedUser, rec.State, rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return rec, nil
}

func (r *SharedTaskRepo) Accept(ctx context.Context, id uuid.UUID) (*domain.SharedTaskRequest, error) {
	query := `
		UPDATE shared_task_requests
		SET state = true
		WHERE id = $1
		RETURNING id, task_id, creator_id, assigned_user_id, state, created_at`
	var req domain.SharedTaskRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.IDTask, &req.IDCreator, &req.IDAssignedUser, &req.State, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SharedTaskRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shared_task_requests WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
