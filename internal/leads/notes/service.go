// Package notes handles lead note operations. Notes are append-only:
// the service exposes no update or delete path.
package notes

import (
	"context"
	"errors"
	"strings"

	"crm_leads_backend/internal/leads/management"
	"crm_leads_backend/internal/leads/repository"
	"crm_leads_backend/internal/leads/transport"
	"crm_leads_backend/platform/apperr"
	"crm_leads_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Repository is the consumer-driven data access interface for notes.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	CreateLeadNote(ctx context.Context, params repository.CreateLeadNoteParams) (repository.LeadNote, error)
	ListLeadNotes(ctx context.Context, leadID uuid.UUID) ([]repository.LeadNote, error)
}

// Service handles lead note operations.
type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add appends a note to a lead on behalf of the acting user.
func (s *Service) Add(ctx context.Context, leadID uuid.UUID, actorID uuid.UUID, actorName string, req transport.CreateLeadNoteRequest) (transport.LeadNoteResponse, error) {
	body := strings.TrimSpace(sanitize.Text(req.Body))
	if body == "" || len(body) > 2000 {
		return transport.LeadNoteResponse{}, apperr.Validation("note body must be between 1 and 2000 characters")
	}

	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadNoteResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadNoteResponse{}, err
	}

	note, err := s.repo.CreateLeadNote(ctx, repository.CreateLeadNoteParams{
		LeadID:     leadID,
		AuthorID:   &actorID,
		AuthorName: actorName,
		Body:       body,
	})
	if err != nil {
		return transport.LeadNoteResponse{}, err
	}

	return management.ToLeadNoteResponse(note), nil
}

// List retrieves a lead's notes, most recent first.
func (s *Service) List(ctx context.Context, leadID uuid.UUID) (transport.LeadNotesResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadNotesResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadNotesResponse{}, err
	}

	notesList, err := s.repo.ListLeadNotes(ctx, leadID)
	if err != nil {
		return transport.LeadNotesResponse{}, err
	}

	items := make([]transport.LeadNoteResponse, len(notesList))
	for i, note := range notesList {
		items[len(notesList)-1-i] = management.ToLeadNoteResponse(note)
	}

	return transport.LeadNotesResponse{Items: items}, nil
}
