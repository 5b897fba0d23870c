// Package service implements authentication: username/password sign-in
// issuing a JWT pair, and stateless refresh. Access and refresh tokens
// are signed with separate secrets so a leaked refresh secret cannot
// mint access tokens.
package service

import (
	"context"
	"errors"
	"time"

	"crm_leads_backend/internal/auth/password"
	"crm_leads_backend/internal/auth/repository"
	"crm_leads_backend/internal/auth/transport"
	"crm_leads_backend/platform/apperr"
	"crm_leads_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// Repository is the consumer-driven data access interface for auth.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (repository.Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Credential, error)
}

type Service struct {
	repo Repository
	cfg  config.AuthServiceConfig
}

func New(repo Repository, cfg config.AuthServiceConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// SignIn verifies credentials and issues an access/refresh token pair.
// Deactivated users cannot sign in.
func (s *Service) SignIn(ctx context.Context, req transport.LoginRequest) (transport.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.TokenResponse{}, apperr.Unauthorized("invalid credentials")
		}
		return transport.TokenResponse{}, err
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		return transport.TokenResponse{}, apperr.Unauthorized("invalid credentials")
	}
	if !user.Active {
		return transport.TokenResponse{}, apperr.Forbidden("account is deactivated")
	}

	return s.issueTokens(user)
}

// Refresh validates a refresh token and issues a fresh pair. The user
// is re-read so role changes and deactivation take effect on rotation.
func (s *Service) Refresh(ctx context.Context, req transport.RefreshRequest) (transport.TokenResponse, error) {
	claims, err := s.parseRefreshClaims(req.RefreshToken)
	if err != nil {
		return transport.TokenResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return transport.TokenResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.TokenResponse{}, apperr.Unauthorized("invalid refresh token")
		}
		return transport.TokenResponse{}, err
	}
	if !user.Active {
		return transport.TokenResponse{}, apperr.Forbidden("account is deactivated")
	}

	return s.issueTokens(user)
}

// Me returns the signed-in user's profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.MeResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.MeResponse{}, apperr.NotFound("user not found")
		}
		return transport.MeResponse{}, err
	}

	return transport.MeResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}, nil
}

func (s *Service) issueTokens(user repository.Credential) (transport.TokenResponse, error) {
	access, err := s.signJWT(user, s.cfg.GetAccessTokenTTL(), accessTokenType, s.cfg.GetJWTAccessSecret())
	if err != nil {
		return transport.TokenResponse{}, err
	}

	refresh, err := s.signJWT(user, s.cfg.GetRefreshTokenTTL(), refreshTokenType, s.cfg.GetJWTRefreshSecret())
	if err != nil {
		return transport.TokenResponse{}, err
	}

	return transport.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) signJWT(user repository.Credential, ttl time.Duration, tokenType, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"type":  tokenType,
		"roles": []string{user.Role},
		"name":  user.FullName,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (s *Service) parseRefreshClaims(rawToken string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.GetJWTRefreshSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if tokenType, _ := claims["type"].(string); tokenType != refreshTokenType {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}
