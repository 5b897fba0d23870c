// Package repository provides data access for user accounts.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type User struct {
	ID        uuid.UUID
	Username  string
	FullName  string
	Email     string
	Role      string
	Phone     string
	Active    bool
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const userColumns = `id, username, full_name, email, role, phone, active, avatar_url, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.Role, &u.Phone, &u.Active, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Role   string
	Active *bool
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	if filter.Role != "" {
		args = append(args, filter.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY full_name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *Repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

type CreateUserParams struct {
	Username     string
	FullName     string
	Email        string
	Role         string
	Phone        string
	PasswordHash string
}

func (r *Repository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, full_name, email, role, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		params.Username, params.FullName, params.Email, params.Role, params.Phone, params.PasswordHash,
	)
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return User{}, ErrUsernameTaken
	}
	return u, err
}

type UpdateUserParams struct {
	FullName  *string
	Email     *string
	Role      *string
	Phone     *string
	AvatarURL *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
		    email = COALESCE($2, email),
		    role = COALESCE($3, role),
		    phone = COALESCE($4, phone),
		    avatar_url = COALESCE($5, avatar_url),
		    updated_at = now()
		WHERE id = $6
		RETURNING `+userColumns,
		params.FullName, params.Email, params.Role, params.Phone, params.AvatarURL, id,
	)
	return scanUser(row)
}

// SetActive toggles whether a user participates in assignment and can
// sign in.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET active = $1, updated_at = now() WHERE id = $2
		RETURNING `+userColumns, active, id)
	return scanUser(row)
}

func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
