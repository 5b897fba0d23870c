package service

import (
	"context"
	"testing"
	"time"

	"crm_leads_backend/internal/auth/password"
	"crm_leads_backend/internal/auth/repository"
	"crm_leads_backend/internal/auth/transport"
	"crm_leads_backend/platform/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeRepo struct {
	users map[string]repository.Credential
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (repository.Credential, error) {
	u, ok := f.users[username]
	if !ok {
		return repository.Credential{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Credential, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.Credential{}, repository.ErrNotFound
}

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string        { return "access-secret" }
func (testConfig) GetJWTRefreshSecret() string       { return "refresh-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (testConfig) GetRefreshTokenTTL() time.Duration { return 24 * time.Hour }

func seedUser(t *testing.T, active bool) (*fakeRepo, repository.Credential) {
	t.Helper()
	hash, err := password.Hash("rahasia-kuat")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := repository.Credential{
		ID:           uuid.New(),
		Username:     "siti",
		FullName:     "Siti Rahma",
		Role:         "admin",
		Active:       active,
		PasswordHash: hash,
	}
	return &fakeRepo{users: map[string]repository.Credential{user.Username: user}}, user
}

func TestSignInIssuesTokenPair(t *testing.T) {
	repo, user := seedUser(t, true)
	svc := New(repo, testConfig{})

	tokens, err := svc.SignIn(context.Background(), transport.LoginRequest{Username: "siti", Password: "rahasia-kuat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens")
	}

	parsed, err := jwt.Parse(tokens.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token must verify with the access secret: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID.String() {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if claims["type"] != "access" {
		t.Fatalf("expected access type, got %v", claims["type"])
	}
	if claims["name"] != "Siti Rahma" {
		t.Fatalf("expected display name claim, got %v", claims["name"])
	}
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	repo, _ := seedUser(t, true)
	svc := New(repo, testConfig{})

	_, err := svc.SignIn(context.Background(), transport.LoginRequest{Username: "siti", Password: "salah"})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSignInRejectsDeactivatedUser(t *testing.T) {
	repo, _ := seedUser(t, false)
	svc := New(repo, testConfig{})

	_, err := svc.SignIn(context.Background(), transport.LoginRequest{Username: "siti", Password: "rahasia-kuat"})
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	repo, _ := seedUser(t, true)
	svc := New(repo, testConfig{})

	tokens, err := svc.SignIn(context.Background(), transport.LoginRequest{Username: "siti", Password: "rahasia-kuat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatalf("expected a fresh pair")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo, _ := seedUser(t, true)
	svc := New(repo, testConfig{})

	tokens, _ := svc.SignIn(context.Background(), transport.LoginRequest{Username: "siti", Password: "rahasia-kuat"})

	_, err := svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: tokens.AccessToken})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}
