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

type FriendRepo struct {
	pool *pgxpool.Pool
}

func NewFriendRepo(pool *pgxpool.Pool) *FriendRepo {
	return &FriendRepo{pool: pool}
}

func (r *FriendRepo) List(ctx context.Context, filters repository.RequestFilters) ([]domain.FriendRequest, error) {
	query := `
		SELECT id, first_user_id, second_user_id, state, created_at
		FROM friend_requests
		WHERE 1=1`
	args := []any{}

	if filters.Initiator != nil {
		args = append(args, *filters.Initiator)
		query += fmt.Sprintf(" AND first_user_id = $%d", len(args))
	}
	if filters.Target != nil {
		args = append(args, *filters.Target)
		query += fmt.Sprintf(" AND second_user_id = $%d", len(args))
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

	var reqs []domain.FriendRequest
	for rows.Next() {
		var req domain.FriendRequest
		if err := rows.Scan(&req.ID, &req.IDFirstUser, &req.IDSecondUser, &req.State, &req.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *FriendRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT id, first_user_id, second_user_id, state, created_at
		FROM friend_requests
		WHERE id = $1`
	var req domain.FriendRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.IDFirstUser, &req.IDSecondUser, &req.State, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *FriendRepo) Create(ctx context.Context, rec *domain.FriendRequest) (*domain.FriendRequest, error) {
	query := `
		INSERT INTO friend_requests (id, first_user_id, second_user_id, state, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	tag, err := r.pool.Exec(ctx, query, rec.ID, rec.IDFirstUser, rec.IDSecondUser, rec.State, rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return rec, nil
}

func (r *FriendRepo) Accept(ctx context.Context, id uuid.UUID) (*domain.FriendRequest, error) {
	// Single-statement update; the RETURNING clause doubles as the
	// affected-row check.
	query := `
		UPDATE friend_requests
		SET state = true
		WHERE id = $1
		RETURNING id, first_user_id, second_user_id, state, created_at`
	var req domain.FriendRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.IDFirstUser, &req.IDSecondUser, &req.State, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *FriendRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
