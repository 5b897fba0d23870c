// Package repository provides data access for the handle-customer queue.
// The queue stores only the follow-up delta per completed lead; lead
// details are joined in at read time so they never go stale.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("handle customer not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// HandleCustomer is a queue entry joined with its lead.
type HandleCustomer struct {
	ID              uuid.UUID
	LeadID          uuid.UUID
	ContactName     string
	ContactPhone    string
	ProductID       *uuid.UUID
	AssignedAdminID uuid.UUID
	FollowUpStatus  string
	LastFollowUpAt  *time.Time
	CompletedAt     time.Time
}

const queueColumns = `hc.id, hc.lead_id, l.contact_name, l.contact_phone, l.product_id,
	l.assigned_admin_id, hc.follow_up_status, hc.last_follow_up_at, hc.created_at`

func scanHandleCustomer(row pgx.Row) (HandleCustomer, error) {
	var hc HandleCustomer
	err := row.Scan(
		&hc.ID, &hc.LeadID, &hc.ContactName, &hc.ContactPhone, &hc.ProductID,
		&hc.AssignedAdminID, &hc.FollowUpStatus, &hc.LastFollowUpAt, &hc.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return HandleCustomer{}, ErrNotFound
	}
	return hc, err
}

// ListFilter narrows queue listings. Zero values mean "no filter".
type ListFilter struct {
	FollowUpStatus  string
	AssignedAdminID *uuid.UUID
}

// List returns the follow-up queue, most recently completed lead first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]HandleCustomer, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM handle_customers hc
		JOIN leads l ON l.id = hc.lead_id`

	args := make([]interface{}, 0, 2)
	where := ""
	if filter.FollowUpStatus != "" {
		args = append(args, filter.FollowUpStatus)
		where = " WHERE hc.follow_up_status = $1"
	}
	if filter.AssignedAdminID != nil {
		args = append(args, *filter.AssignedAdminID)
		if where == "" {
			where = " WHERE l.assigned_admin_id = $1"
		} else {
			where += " AND l.assigned_admin_id = $2"
		}
	}
	query += where + " ORDER BY hc.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queue := make([]HandleCustomer, 0)
	for rows.Next() {
		hc, err := scanHandleCustomer(rows)
		if err != nil {
			return nil, err
		}
		queue = append(queue, hc)
	}
	return queue, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (HandleCustomer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+queueColumns+`
		FROM handle_customers hc
		JOIN leads l ON l.id = hc.lead_id
		WHERE hc.id = $1
	`, id)
	return scanHandleCustomer(row)
}

// UpdateFollowUpStatus records a follow-up outcome. A nil
// lastFollowUpAt leaves the stored follow-up time untouched.
func (r *Repository) UpdateFollowUpStatus(ctx context.Context, id uuid.UUID, status string, lastFollowUpAt *time.Time) (HandleCustomer, error) {
	var leadID uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE handle_customers
		SET follow_up_status = $1, last_follow_up_at = COALESCE($2, last_follow_up_at), updated_at = now()
		WHERE id = $3
		RETURNING lead_id
	`, status, lastFollowUpAt, id).Scan(&leadID)
	if errors.Is(err, pgx.ErrNoRows) {
		return HandleCustomer{}, ErrNotFound
	}
	if err != nil {
		return HandleCustomer{}, err
	}

	return r.GetByID(ctx, id)
}
