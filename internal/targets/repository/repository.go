// Package repository provides data access for per-admin revenue targets.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("revenue target not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Target struct {
	UserID        uuid.UUID
	DailyTarget   int64
	MonthlyTarget int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Repository) List(ctx context.Context) ([]Target, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, daily_target, monthly_target, created_at, updated_at
		FROM revenue_targets ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make([]Target, 0)
	for rows.Next() {
		var t Target
		if err := rows.Scan(&t.UserID, &t.DailyTarget, &t.MonthlyTarget, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (Target, error) {
	var t Target
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, daily_target, monthly_target, created_at, updated_at
		FROM revenue_targets WHERE user_id = $1
	`, userID).Scan(&t.UserID, &t.DailyTarget, &t.MonthlyTarget, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Target{}, ErrNotFound
	}
	return t, err
}

// Upsert sets the targets for a user, creating the row on first write.
// One row per user: a second write replaces the first.
func (r *Repository) Upsert(ctx context.Context, userID uuid.UUID, daily, monthly int64) (Target, error) {
	var t Target
	err := r.pool.QueryRow(ctx, `
		INSERT INTO revenue_targets (user_id, daily_target, monthly_target)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET daily_target = EXCLUDED.daily_target,
		    monthly_target = EXCLUDED.monthly_target,
		    updated_at = now()
		RETURNING user_id, daily_target, monthly_target, created_at, updated_at
	`, userID, daily, monthly).Scan(&t.UserID, &t.DailyTarget, &t.MonthlyTarget, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM revenue_targets WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
