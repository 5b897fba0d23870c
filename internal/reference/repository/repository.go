// Package repository provides data access for the lead reference lists:
// obstacles (why a lead stalls) and promos (what moved it forward).
// Both tables share the same shape, so one set of queries serves both.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("reference item not found")

// Table selects which reference list a call operates on. Only the two
// known tables are accepted; the value is interpolated into SQL.
type Table string

const (
	TableObstacles Table = "obstacles"
	TablePromos    Table = "promos"
)

func (t Table) valid() bool {
	return t == TableObstacles || t == TablePromos
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Repository) List(ctx context.Context, table Table) ([]Item, error) {
	if !table.valid() {
		return nil, fmt.Errorf("unknown reference table %q", table)
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM %s ORDER BY name ASC
	`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) Create(ctx context.Context, table Table, name, description string) (Item, error) {
	if !table.valid() {
		return Item{}, fmt.Errorf("unknown reference table %q", table)
	}

	var item Item
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, description) VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`, table), name, description).Scan(&item.ID, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func (r *Repository) Update(ctx context.Context, table Table, id uuid.UUID, name, description string) (Item, error) {
	if !table.valid() {
		return Item{}, fmt.Errorf("unknown reference table %q", table)
	}

	var item Item
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE %s SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, name, description, created_at, updated_at
	`, table), name, description, id).Scan(&item.ID, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return item, err
}

func (r *Repository) Delete(ctx context.Context, table Table, id uuid.UUID) error {
	if !table.valid() {
		return fmt.Errorf("unknown reference table %q", table)
	}

	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
