// Package repository provides the aggregate queries behind the
// performance dashboard.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// AdminPerformance aggregates one admin's pipeline over a period.
type AdminPerformance struct {
	AdminID      uuid.UUID
	FullName     string
	Active       bool
	TotalLeads   int64
	ClosingLeads int64
	LossLeads    int64
	Revenue      int64
}

// ListAdminPerformance aggregates lead counts and closed revenue per
// admin for leads created in [from, to).
func (r *Repository) ListAdminPerformance(ctx context.Context, from, to time.Time) ([]AdminPerformance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.full_name, u.active,
		       COUNT(l.id),
		       COUNT(l.id) FILTER (WHERE l.stage = 'Closing'),
		       COUNT(l.id) FILTER (WHERE l.stage = 'Loss'),
		       COALESCE(SUM(l.price) FILTER (WHERE l.stage = 'Closing' AND l.status = 'Selesai'), 0)
		FROM users u
		LEFT JOIN leads l ON l.assigned_admin_id = u.id
		  AND l.created_at >= $1 AND l.created_at < $2
		WHERE u.role = 'admin'
		GROUP BY u.id, u.full_name, u.active
		ORDER BY u.full_name ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]AdminPerformance, 0)
	for rows.Next() {
		var s AdminPerformance
		if err := rows.Scan(&s.AdminID, &s.FullName, &s.Active, &s.TotalLeads, &s.ClosingLeads, &s.LossLeads, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// TargetRow is the monthly target for one admin.
type TargetRow struct {
	UserID        uuid.UUID
	MonthlyTarget int64
}

func (r *Repository) ListMonthlyTargets(ctx context.Context) ([]TargetRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, monthly_target FROM revenue_targets
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make([]TargetRow, 0)
	for rows.Next() {
		var t TargetRow
		if err := rows.Scan(&t.UserID, &t.MonthlyTarget); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// QueueCounts summarizes the follow-up queue.
type QueueCounts struct {
	Pending int64
	Done    int64
}

func (r *Repository) CountFollowUpQueue(ctx context.Context) (QueueCounts, error) {
	var counts QueueCounts
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE follow_up_status = 'Belum'),
		       COUNT(*) FILTER (WHERE follow_up_status = 'Sudah')
		FROM handle_customers
	`).Scan(&counts.Pending, &counts.Done)
	return counts, err
}
