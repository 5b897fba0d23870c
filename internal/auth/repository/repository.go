// Package repository provides the credential slice of the users table
// that the auth service needs.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Credential is the slice of a user that sign-in needs.
type Credential struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	Role         string
	Active       bool
	PasswordHash string
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (Credential, error) {
	var c Credential
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, full_name, role, active, password_hash
		FROM users WHERE username = $1
	`, username).Scan(&c.ID, &c.Username, &c.FullName, &c.Role, &c.Active, &c.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrNotFound
	}
	return c, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Credential, error) {
	var c Credential
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, full_name, role, active, password_hash
		FROM users WHERE id = $1
	`, id).Scan(&c.ID, &c.Username, &c.FullName, &c.Role, &c.Active, &c.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrNotFound
	}
	return c, err
}
