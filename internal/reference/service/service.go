// Package service implements CRUD for the lead reference lists.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm_leads_backend/internal/reference/repository"
	"crm_leads_backend/platform/apperr"
	"crm_leads_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Repository is the consumer-driven data access interface for the
// reference service.
type Repository interface {
	List(ctx context.Context, table repository.Table) ([]repository.Item, error)
	Create(ctx context.Context, table repository.Table, name, description string) (repository.Item, error)
	Update(ctx context.Context, table repository.Table, id uuid.UUID, name, description string) (repository.Item, error)
	Delete(ctx context.Context, table repository.Table, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

type ItemRequest struct {
	Name        string `json:"name" binding:"required" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ListResponse struct {
	Items []ItemResponse `json:"items"`
}

func (s *Service) List(ctx context.Context, table repository.Table) (ListResponse, error) {
	items, err := s.repo.List(ctx, table)
	if err != nil {
		return ListResponse{}, err
	}

	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toResponse(item)
	}
	return ListResponse{Items: out}, nil
}

func (s *Service) Create(ctx context.Context, table repository.Table, req ItemRequest) (ItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ItemResponse{}, apperr.Validation("name is required")
	}

	item, err := s.repo.Create(ctx, table, name, sanitize.Text(req.Description))
	if err != nil {
		return ItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *Service) Update(ctx context.Context, table repository.Table, id uuid.UUID, req ItemRequest) (ItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ItemResponse{}, apperr.Validation("name is required")
	}

	item, err := s.repo.Update(ctx, table, id, name, sanitize.Text(req.Description))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ItemResponse{}, apperr.NotFound("reference item not found")
		}
		return ItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, table repository.Table, id uuid.UUID) error {
	err := s.repo.Delete(ctx, table, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("reference item not found")
	}
	return err
}

func toResponse(item repository.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
