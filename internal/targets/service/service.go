// Package service implements revenue target management. Targets are
// keyed by user: setting a target for a user who already has one
// replaces it.
package service

import (
	"context"
	"errors"
	"time"

	"crm_leads_backend/internal/targets/repository"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository is the consumer-driven data access interface for the
// targets service.
type Repository interface {
	List(ctx context.Context) ([]repository.Target, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (repository.Target, error)
	Upsert(ctx context.Context, userID uuid.UUID, daily, monthly int64) (repository.Target, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserChecker verifies that a target's user exists.
type UserChecker interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo  Repository
	users UserChecker
}

func New(repo Repository, users UserChecker) *Service {
	return &Service{repo: repo, users: users}
}

type SetTargetRequest struct {
	UserID        uuid.UUID `json:"userId" binding:"required" validate:"required"`
	DailyTarget   int64     `json:"dailyTarget" validate:"min=0"`
	MonthlyTarget int64     `json:"monthlyTarget" validate:"min=0"`
}

type TargetResponse struct {
	UserID        uuid.UUID `json:"userId"`
	DailyTarget   int64     `json:"dailyTarget"`
	MonthlyTarget int64     `json:"monthlyTarget"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type TargetListResponse struct {
	Items []TargetResponse `json:"items"`
}

func (s *Service) List(ctx context.Context) (TargetListResponse, error) {
	targets, err := s.repo.List(ctx)
	if err != nil {
		return TargetListResponse{}, err
	}

	items := make([]TargetResponse, len(targets))
	for i, t := range targets {
		items[i] = toResponse(t)
	}
	return TargetListResponse{Items: items}, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (TargetResponse, error) {
	t, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TargetResponse{}, apperr.NotFound("revenue target not found")
		}
		return TargetResponse{}, err
	}
	return toResponse(t), nil
}

// Set creates or replaces the target for a user.
func (s *Service) Set(ctx context.Context, req SetTargetRequest) (TargetResponse, error) {
	if req.DailyTarget < 0 || req.MonthlyTarget < 0 {
		return TargetResponse{}, apperr.Validation("targets must not be negative")
	}

	exists, err := s.users.UserExists(ctx, req.UserID)
	if err != nil {
		return TargetResponse{}, err
	}
	if !exists {
		return TargetResponse{}, apperr.Validation("unknown user")
	}

	t, err := s.repo.Upsert(ctx, req.UserID, req.DailyTarget, req.MonthlyTarget)
	if err != nil {
		return TargetResponse{}, err
	}
	return toResponse(t), nil
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	err := s.repo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("revenue target not found")
	}
	return err
}

func toResponse(t repository.Target) TargetResponse {
	return TargetResponse{
		UserID:        t.UserID,
		DailyTarget:   t.DailyTarget,
		MonthlyTarget: t.MonthlyTarget,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
