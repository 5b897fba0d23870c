// Package service implements catalog business logic: product CRUD and
// package CRUD with the product-existence guard.
package service

import (
	"context"
	"errors"
	"strings"

	"crm_leads_backend/internal/catalog/repository"
	"crm_leads_backend/internal/catalog/transport"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository is the consumer-driven data access interface for the
// catalog service.
type Repository interface {
	ListProducts(ctx context.Context) ([]repository.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (repository.Product, error)
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateProduct(ctx context.Context, name string) (repository.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, name string) (repository.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListPackages(ctx context.Context, productID *uuid.UUID) ([]repository.Package, error)
	GetPackage(ctx context.Context, id uuid.UUID) (repository.Package, error)
	CreatePackage(ctx context.Context, params repository.CreatePackageParams) (repository.Package, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, params repository.UpdatePackageParams) (repository.Package, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) (transport.ProductListResponse, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	items := make([]transport.ProductResponse, len(products))
	for i, p := range products {
		items[i] = toProductResponse(p)
	}
	return transport.ProductListResponse{Items: items}, nil
}

func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.ProductResponse{}, apperr.Validation("product name is required")
	}

	p, err := s.repo.CreateProduct(ctx, name)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(p), nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.ProductResponse{}, apperr.Validation("product name is required")
	}

	p, err := s.repo.UpdateProduct(ctx, id, name)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return transport.ProductResponse{}, apperr.NotFound("product not found")
		}
		return transport.ProductResponse{}, err
	}
	return toProductResponse(p), nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return apperr.NotFound("product not found")
	}
	return err
}

func (s *Service) ListPackages(ctx context.Context, productID *uuid.UUID) (transport.PackageListResponse, error) {
	packages, err := s.repo.ListPackages(ctx, productID)
	if err != nil {
		return transport.PackageListResponse{}, err
	}

	items := make([]transport.PackageResponse, len(packages))
	for i, p := range packages {
		items[i] = toPackageResponse(p)
	}
	return transport.PackageListResponse{Items: items}, nil
}

// CreatePackage creates a package after verifying its product exists.
func (s *Service) CreatePackage(ctx context.Context, req transport.CreatePackageRequest) (transport.PackageResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.PackageResponse{}, apperr.Validation("package name is required")
	}

	exists, err := s.repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return transport.PackageResponse{}, err
	}
	if !exists {
		return transport.PackageResponse{}, apperr.Validation("unknown product")
	}

	p, err := s.repo.CreatePackage(ctx, repository.CreatePackageParams{
		ProductID:    req.ProductID,
		Name:         name,
		DefaultPrice: req.DefaultPrice,
	})
	if err != nil {
		return transport.PackageResponse{}, err
	}
	return toPackageResponse(p), nil
}

func (s *Service) UpdatePackage(ctx context.Context, id uuid.UUID, req transport.UpdatePackageRequest) (transport.PackageResponse, error) {
	params := repository.UpdatePackageParams{DefaultPrice: req.DefaultPrice}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return transport.PackageResponse{}, apperr.Validation("package name must not be empty")
		}
		params.Name = &name
	}

	p, err := s.repo.UpdatePackage(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return transport.PackageResponse{}, apperr.NotFound("package not found")
		}
		return transport.PackageResponse{}, err
	}
	return toPackageResponse(p), nil
}

func (s *Service) DeletePackage(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeletePackage(ctx, id)
	if errors.Is(err, repository.ErrPackageNotFound) {
		return apperr.NotFound("package not found")
	}
	return err
}

func toProductResponse(p repository.Product) transport.ProductResponse {
	return transport.ProductResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func toPackageResponse(p repository.Package) transport.PackageResponse {
	return transport.PackageResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		Name:         p.Name,
		DefaultPrice: p.DefaultPrice,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
