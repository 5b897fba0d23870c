package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProjectionIfAbsent materializes a handle-customer projection for
// a terminal lead. The UNIQUE constraint on lead_id plus ON CONFLICT DO
// NOTHING makes the derivation idempotent: the second and every later
// call for the same lead is a no-op.
//
// Returns the projection id and whether this call created it.
func (r *Repository) CreateProjectionIfAbsent(ctx context.Context, leadID uuid.UUID) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO handle_customers (lead_id)
		VALUES ($1)
		ON CONFLICT (lead_id) DO NOTHING
		RETURNING id
	`, leadID).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict path: projection already exists.
		err = r.pool.QueryRow(ctx, `
			SELECT id FROM handle_customers WHERE lead_id = $1
		`, leadID).Scan(&id)
		if err != nil {
			return uuid.Nil, false, err
		}
		return id, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}
