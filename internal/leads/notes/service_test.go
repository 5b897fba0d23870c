package notes

import (
	"context"
	"testing"
	"time"

	"crm_leads_backend/internal/leads/repository"
	"crm_leads_backend/internal/leads/transport"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	missing bool
	notes   []repository.LeadNote
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	if f.missing {
		return repository.Lead{}, repository.ErrNotFound
	}
	return repository.Lead{ID: id}, nil
}

func (f *fakeRepo) CreateLeadNote(_ context.Context, params repository.CreateLeadNoteParams) (repository.LeadNote, error) {
	note := repository.LeadNote{
		ID:         uuid.New(),
		LeadID:     params.LeadID,
		AuthorID:   params.AuthorID,
		AuthorName: params.AuthorName,
		Body:       params.Body,
		CreatedAt:  time.Now(),
	}
	f.notes = append(f.notes, note)
	return note, nil
}

func (f *fakeRepo) ListLeadNotes(_ context.Context, _ uuid.UUID) ([]repository.LeadNote, error) {
	return f.notes, nil
}

func TestAddRejectsEmptyBody(t *testing.T) {
	svc := New(&fakeRepo{})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), "Siti", transport.CreateLeadNoteRequest{Body: "   "})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddRejectsUnknownLead(t *testing.T) {
	svc := New(&fakeRepo{missing: true})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), "Siti", transport.CreateLeadNoteRequest{Body: "halo"})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddOnlyAppends(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)
	leadID := uuid.New()
	actorID := uuid.New()

	first, err := svc.Add(context.Background(), leadID, actorID, "Siti", transport.CreateLeadNoteRequest{Body: "catatan pertama"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Add(context.Background(), leadID, actorID, "Siti", transport.CreateLeadNoteRequest{Body: "catatan kedua"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.notes) != 2 {
		t.Fatalf("expected both notes stored, got %d", len(repo.notes))
	}
	if repo.notes[0].ID != first.ID || repo.notes[1].ID != second.ID {
		t.Fatalf("stored notes must keep creation order")
	}
	if repo.notes[0].Body != "catatan pertama" {
		t.Fatalf("earlier note must be untouched, got %q", repo.notes[0].Body)
	}
}

func TestListPresentsNewestFirst(t *testing.T) {
	repo := &fakeRepo{notes: []repository.LeadNote{
		{ID: uuid.New(), Body: "older", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: uuid.New(), Body: "newer", CreatedAt: time.Now()},
	}}
	svc := New(repo)

	list, err := svc.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected two notes, got %d", len(list.Items))
	}
	if list.Items[0].Body != "newer" {
		t.Fatalf("expected newest note first, got %q", list.Items[0].Body)
	}
}
