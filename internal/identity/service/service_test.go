package service

import (
	"context"
	"testing"

	"crm_leads_backend/internal/auth/password"
	"crm_leads_backend/internal/identity/repository"
	"crm_leads_backend/internal/identity/transport"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	users  map[uuid.UUID]repository.User
	hashes map[uuid.UUID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  make(map[uuid.UUID]repository.User),
		hashes: make(map[uuid.UUID]string),
	}
}

func (f *fakeRepo) List(_ context.Context, filter repository.ListFilter) ([]repository.User, error) {
	out := make([]repository.User, 0)
	for _, u := range f.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateUserParams) (repository.User, error) {
	for _, u := range f.users {
		if u.Username == params.Username {
			return repository.User{}, repository.ErrUsernameTaken
		}
	}
	u := repository.User{
		ID:       uuid.New(),
		Username: params.Username,
		FullName: params.FullName,
		Role:     params.Role,
		Phone:    params.Phone,
		Active:   true,
	}
	f.users[u.ID] = u
	f.hashes[u.ID] = params.PasswordHash
	return u, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateUserParams) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	if params.FullName != nil {
		u.FullName = *params.FullName
	}
	if params.Role != nil {
		u.Role = *params.Role
	}
	if params.Phone != nil {
		u.Phone = *params.Phone
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	u.Active = active
	f.users[id] = u
	return u, nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	f.hashes[id] = hash
	return nil
}

func TestCreateHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)

	created, err := svc.Create(context.Background(), transport.CreateUserRequest{
		Username: "Siti",
		FullName: "Siti Rahma",
		Password: "rahasia-kuat",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Username != "siti" {
		t.Fatalf("username must be lowercased, got %q", created.Username)
	}

	hash := repo.hashes[created.ID]
	if hash == "rahasia-kuat" || hash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if err := password.Compare(hash, "rahasia-kuat"); err != nil {
		t.Fatalf("stored hash must verify: %v", err)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc := New(newFakeRepo())

	req := transport.CreateUserRequest{Username: "siti", FullName: "Siti", Password: "rahasia-kuat", Role: "admin"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Create(context.Background(), req)
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSetActiveToggles(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)

	created, _ := svc.Create(context.Background(), transport.CreateUserRequest{
		Username: "siti", FullName: "Siti", Password: "rahasia-kuat", Role: "admin",
	})

	deactivated, err := svc.SetActive(context.Background(), created.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deactivated.Active {
		t.Fatalf("expected user deactivated")
	}

	active := true
	list, _ := svc.List(context.Background(), "admin", &active)
	if len(list.Items) != 0 {
		t.Fatalf("deactivated user must not appear in the active list")
	}
}
