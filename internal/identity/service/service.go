// Package service implements user account management. Deactivation is
// the supported way to take an admin out of the assignment rotation;
// accounts are never deleted so historical leads keep their assignee.
package service

import (
	"context"
	"errors"
	"strings"

	"crm_leads_backend/internal/auth/password"
	"crm_leads_backend/internal/identity/repository"
	"crm_leads_backend/internal/identity/transport"
	"crm_leads_backend/platform/apperr"
	"crm_leads_backend/platform/phone"

	"github.com/google/uuid"
)

// Repository is the consumer-driven data access interface for the
// identity service.
type Repository interface {
	List(ctx context.Context, filter repository.ListFilter) ([]repository.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.User, error)
	Create(ctx context.Context, params repository.CreateUserParams) (repository.User, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateUserParams) (repository.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (repository.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, role string, active *bool) (transport.UserListResponse, error) {
	users, err := s.repo.List(ctx, repository.ListFilter{Role: role, Active: active})
	if err != nil {
		return transport.UserListResponse{}, err
	}

	items := make([]transport.UserResponse, len(users))
	for i, u := range users {
		items[i] = toResponse(u)
	}
	return transport.UserListResponse{Items: items}, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.UserResponse{}, apperr.NotFound("user not found")
		}
		return transport.UserResponse{}, err
	}
	return toResponse(u), nil
}

func (s *Service) Create(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return transport.UserResponse{}, apperr.Validation("username is required")
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.UserResponse{}, err
	}

	u, err := s.repo.Create(ctx, repository.CreateUserParams{
		Username:     username,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         req.Role,
		Phone:        phone.NormalizeE164(req.Phone),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return transport.UserResponse{}, apperr.Conflict("username already taken")
		}
		return transport.UserResponse{}, err
	}
	return toResponse(u), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (transport.UserResponse, error) {
	params := repository.UpdateUserParams{
		FullName:  req.FullName,
		Email:     req.Email,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	u, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.UserResponse{}, apperr.NotFound("user not found")
		}
		return transport.UserResponse{}, err
	}
	return toResponse(u), nil
}

// SetActive toggles a user's active flag. Deactivated admins stop
// receiving new leads but keep the ones already assigned.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (transport.UserResponse, error) {
	u, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.UserResponse{}, apperr.NotFound("user not found")
		}
		return transport.UserResponse{}, err
	}
	return toResponse(u), nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, req transport.ChangePasswordRequest) error {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return err
	}

	err = s.repo.UpdatePassword(ctx, id, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	return err
}

func toResponse(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Active:    u.Active,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
