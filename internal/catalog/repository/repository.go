// Package repository provides data access for the product catalog:
// products and the priced packages sold under them.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPackageNotFound = errors.New("package not found")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Product struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Package struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	Name         string
	DefaultPrice int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at FROM products ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *Repository) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *Repository) CreateProduct(ctx context.Context, name string) (Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`, name).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, name string) (Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, `
		UPDATE products SET name = $1, updated_at = now() WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`, name, id).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListPackages returns packages, optionally restricted to one product.
func (r *Repository) ListPackages(ctx context.Context, productID *uuid.UUID) ([]Package, error) {
	query := `SELECT id, product_id, name, default_price, created_at, updated_at FROM packages`
	args := make([]interface{}, 0, 1)
	if productID != nil {
		query += ` WHERE product_id = $1`
		args = append(args, *productID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]Package, 0)
	for rows.Next() {
		var p Package
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Name, &p.DefaultPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (r *Repository) GetPackage(ctx context.Context, id uuid.UUID) (Package, error) {
	var p Package
	err := r.pool.QueryRow(ctx, `
		SELECT id, product_id, name, default_price, created_at, updated_at
		FROM packages WHERE id = $1
	`, id).Scan(&p.ID, &p.ProductID, &p.Name, &p.DefaultPrice, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Package{}, ErrPackageNotFound
	}
	return p, err
}

func (r *Repository) PackageBelongsToProduct(ctx context.Context, packageID, productID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM packages WHERE id = $1 AND product_id = $2)
	`, packageID, productID).Scan(&ok)
	return ok, err
}

type CreatePackageParams struct {
	ProductID    uuid.UUID
	Name         string
	DefaultPrice int64
}

func (r *Repository) CreatePackage(ctx context.Context, params CreatePackageParams) (Package, error) {
	var p Package
	err := r.pool.QueryRow(ctx, `
		INSERT INTO packages (product_id, name, default_price)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, name, default_price, created_at, updated_at
	`, params.ProductID, params.Name, params.DefaultPrice).Scan(
		&p.ID, &p.ProductID, &p.Name, &p.DefaultPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

type UpdatePackageParams struct {
	Name         *string
	DefaultPrice *int64
}

func (r *Repository) UpdatePackage(ctx context.Context, id uuid.UUID, params UpdatePackageParams) (Package, error) {
	var p Package
	err := r.pool.QueryRow(ctx, `
		UPDATE packages
		SET name = COALESCE($1, name),
		    default_price = COALESCE($2, default_price),
		    updated_at = now()
		WHERE id = $3
		RETURNING id, product_id, name, default_price, created_at, updated_at
	`, params.Name, params.DefaultPrice, id).Scan(
		&p.ID, &p.ProductID, &p.Name, &p.DefaultPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Package{}, ErrPackageNotFound
	}
	return p, err
}

func (r *Repository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}
