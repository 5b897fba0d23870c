// Package service owns the handle-customer queue: the derived list of
// completed leads awaiting after-sales follow-up. Queue entries are
// created by the leads module when a lead turns terminal; this module
// only reads the queue and records follow-up outcomes.
package service

import (
	"context"
	"errors"
	"time"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/internal/followup/repository"
	"crm_leads_backend/platform/apperr"

	"github.com/google/uuid"
)

// FollowUpBelum and FollowUpSudah are the queue's follow-up states.
const (
	FollowUpBelum = "Belum"
	FollowUpSudah = "Sudah"
)

// Repository is the consumer-driven data access interface for the
// follow-up service.
type Repository interface {
	List(ctx context.Context, filter repository.ListFilter) ([]repository.HandleCustomer, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.HandleCustomer, error)
	UpdateFollowUpStatus(ctx context.Context, id uuid.UUID, status string, lastFollowUpAt *time.Time) (repository.HandleCustomer, error)
}

// Service handles follow-up queue operations.
type Service struct {
	repo     Repository
	eventBus events.Bus
}

func New(repo Repository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus}
}

// HandleCustomerResponse is the API shape of a queue entry.
type HandleCustomerResponse struct {
	ID             uuid.UUID  `json:"id"`
	LeadID         uuid.UUID  `json:"leadId"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	ProductID      *uuid.UUID `json:"productId"`
	AssigneeID     uuid.UUID  `json:"assigneeId"`
	FollowUpStatus string     `json:"followUpStatus"`
	LastFollowUpAt *time.Time `json:"lastFollowUpAt"`
	CompletedAt    time.Time  `json:"completedAt"`
}

type QueueResponse struct {
	Items []HandleCustomerResponse `json:"items"`
	Total int                      `json:"total"`
}

// ListQueue returns the follow-up queue, newest completion first.
func (s *Service) ListQueue(ctx context.Context, status string, assigneeID *uuid.UUID) (QueueResponse, error) {
	if status != "" && status != FollowUpBelum && status != FollowUpSudah {
		return QueueResponse{}, apperr.Validation("invalid follow-up status filter")
	}

	queue, err := s.repo.List(ctx, repository.ListFilter{
		FollowUpStatus:  status,
		AssignedAdminID: assigneeID,
	})
	if err != nil {
		return QueueResponse{}, err
	}

	items := make([]HandleCustomerResponse, len(queue))
	for i, hc := range queue {
		items[i] = toResponse(hc)
	}
	return QueueResponse{Items: items, Total: len(items)}, nil
}

// GetByID retrieves a single queue entry.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (HandleCustomerResponse, error) {
	hc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return HandleCustomerResponse{}, apperr.NotFound("handle customer not found")
		}
		return HandleCustomerResponse{}, err
	}
	return toResponse(hc), nil
}

// RecordFollowUp marks a queue entry as followed up or reverts it. The
// follow-up time comes from the caller when supplied; marking Sudah
// without one stamps the current time, and a revert to Belum leaves
// the stored time alone.
func (s *Service) RecordFollowUp(ctx context.Context, id uuid.UUID, status string, lastFollowUpAt *time.Time) (HandleCustomerResponse, error) {
	if status != FollowUpBelum && status != FollowUpSudah {
		return HandleCustomerResponse{}, apperr.Validation("follow-up status must be Belum or Sudah")
	}

	at := lastFollowUpAt
	if at == nil && status == FollowUpSudah {
		now := time.Now()
		at = &now
	}

	hc, err := s.repo.UpdateFollowUpStatus(ctx, id, status, at)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return HandleCustomerResponse{}, apperr.NotFound("handle customer not found")
		}
		return HandleCustomerResponse{}, err
	}

	s.eventBus.Publish(ctx, events.FollowUpRecorded{
		BaseEvent:        events.NewBaseEvent(),
		HandleCustomerID: hc.ID,
		LeadID:           hc.LeadID,
		Status:           hc.FollowUpStatus,
	})

	return toResponse(hc), nil
}

func toResponse(hc repository.HandleCustomer) HandleCustomerResponse {
	return HandleCustomerResponse{
		ID:             hc.ID,
		LeadID:         hc.LeadID,
		Name:           hc.ContactName,
		Phone:          hc.ContactPhone,
		ProductID:      hc.ProductID,
		AssigneeID:     hc.AssignedAdminID,
		FollowUpStatus: hc.FollowUpStatus,
		LastFollowUpAt: hc.LastFollowUpAt,
		CompletedAt:    hc.CompletedAt,
	}
}
