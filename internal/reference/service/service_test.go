package service

import (
	"context"
	"testing"

	"crm_leads_backend/internal/reference/repository"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	items map[repository.Table]map[uuid.UUID]repository.Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[repository.Table]map[uuid.UUID]repository.Item{
		repository.TableObstacles: {},
		repository.TablePromos:    {},
	}}
}

func (f *fakeRepo) List(_ context.Context, table repository.Table) ([]repository.Item, error) {
	out := make([]repository.Item, 0)
	for _, item := range f.items[table] {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, table repository.Table, name, description string) (repository.Item, error) {
	item := repository.Item{ID: uuid.New(), Name: name, Description: description}
	f.items[table][item.ID] = item
	return item, nil
}

func (f *fakeRepo) Update(_ context.Context, table repository.Table, id uuid.UUID, name, description string) (repository.Item, error) {
	item, ok := f.items[table][id]
	if !ok {
		return repository.Item{}, repository.ErrNotFound
	}
	item.Name = name
	item.Description = description
	f.items[table][id] = item
	return item, nil
}

func (f *fakeRepo) Delete(_ context.Context, table repository.Table, id uuid.UUID) error {
	if _, ok := f.items[table][id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items[table], id)
	return nil
}

func TestCreateKeepsTablesSeparate(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)

	if _, err := svc.Create(context.Background(), repository.TableObstacles, ItemRequest{Name: "Harga terlalu tinggi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	promos, err := svc.List(context.Background(), repository.TablePromos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(promos.Items) != 0 {
		t.Fatalf("obstacle must not leak into promos, got %d items", len(promos.Items))
	}

	obstacles, _ := svc.List(context.Background(), repository.TableObstacles)
	if len(obstacles.Items) != 1 {
		t.Fatalf("expected one obstacle, got %d", len(obstacles.Items))
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := New(newFakeRepo())

	_, err := svc.Create(context.Background(), repository.TablePromos, ItemRequest{Name: "  "})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUnknownItem(t *testing.T) {
	svc := New(newFakeRepo())

	_, err := svc.Update(context.Background(), repository.TablePromos, uuid.New(), ItemRequest{Name: "Diskon 10%"})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
