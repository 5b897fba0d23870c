package service

import (
	"context"
	"testing"

	"crm_leads_backend/internal/targets/repository"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	targets map[uuid.UUID]repository.Target
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{targets: make(map[uuid.UUID]repository.Target)}
}

func (f *fakeRepo) List(_ context.Context) ([]repository.Target, error) {
	out := make([]repository.Target, 0, len(f.targets))
	for _, t := range f.targets {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID uuid.UUID) (repository.Target, error) {
	t, ok := f.targets[userID]
	if !ok {
		return repository.Target{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) Upsert(_ context.Context, userID uuid.UUID, daily, monthly int64) (repository.Target, error) {
	t := repository.Target{UserID: userID, DailyTarget: daily, MonthlyTarget: monthly}
	f.targets[userID] = t
	return t, nil
}

func (f *fakeRepo) Delete(_ context.Context, userID uuid.UUID) error {
	if _, ok := f.targets[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.targets, userID)
	return nil
}

type fakeUsers struct {
	known map[uuid.UUID]bool
}

func (f *fakeUsers) UserExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

func TestSetReplacesExistingTarget(t *testing.T) {
	userID := uuid.New()
	repo := newFakeRepo()
	svc := New(repo, &fakeUsers{known: map[uuid.UUID]bool{userID: true}})

	if _, err := svc.Set(context.Background(), SetTargetRequest{UserID: userID, DailyTarget: 1000000, MonthlyTarget: 25000000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := svc.Set(context.Background(), SetTargetRequest{UserID: userID, DailyTarget: 2000000, MonthlyTarget: 50000000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.targets) != 1 {
		t.Fatalf("expected one target per user, got %d", len(repo.targets))
	}
	if updated.DailyTarget != 2000000 {
		t.Fatalf("expected replacement, got daily %d", updated.DailyTarget)
	}
}

func TestSetRejectsUnknownUser(t *testing.T) {
	svc := New(newFakeRepo(), &fakeUsers{known: map[uuid.UUID]bool{}})

	_, err := svc.Set(context.Background(), SetTargetRequest{UserID: uuid.New(), DailyTarget: 100})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByUserIDNotFound(t *testing.T) {
	svc := New(newFakeRepo(), &fakeUsers{known: map[uuid.UUID]bool{}})

	_, err := svc.GetByUserID(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
