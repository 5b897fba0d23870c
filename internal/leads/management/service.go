// Package management handles lead lifecycle operations: reading the
// board, merge-patch updates, stage moves, and the completion projection
// that feeds the handle-customer queue.
package management

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/internal/leads/domain"
	"crm_leads_backend/internal/leads/repository"
	"crm_leads_backend/internal/leads/transport"
	"crm_leads_backend/platform/apperr"
	"crm_leads_backend/platform/phone"
	"crm_leads_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Repository is the consumer-driven data access interface for the
// management service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	List(ctx context.Context, filter repository.ListFilter) ([]repository.Lead, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error)
	CreateLeadNote(ctx context.Context, params repository.CreateLeadNoteParams) (repository.LeadNote, error)
	ListLeadNotes(ctx context.Context, leadID uuid.UUID) ([]repository.LeadNote, error)
	CreateProjectionIfAbsent(ctx context.Context, leadID uuid.UUID) (uuid.UUID, bool, error)
	AdminExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service handles lead lifecycle operations.
type Service struct {
	repo     Repository
	eventBus events.Bus
}

func New(repo Repository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus}
}

// GetByID retrieves a lead with its notes.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	notes, err := s.repo.ListLeadNotes(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	return ToLeadResponse(lead, notes), nil
}

// List retrieves leads for the board view.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	filter := repository.ListFilter{
		Stage:  req.Stage,
		Search: strings.TrimSpace(req.Search),
	}
	if req.AssigneeID != "" {
		id, err := uuid.Parse(req.AssigneeID)
		if err != nil {
			return transport.LeadListResponse{}, apperr.Validation("invalid assigneeId filter")
		}
		filter.AssignedAdminID = &id
	}

	leads, err := s.repo.List(ctx, filter)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = ToLeadResponse(lead, nil)
	}

	return transport.LeadListResponse{Items: items, Total: len(items)}, nil
}

// Update applies a merge patch to a lead: absent fields keep their
// stored values. An optional note is appended in the same call (a note
// that trims to empty is simply not appended), the down payment is
// gated to the DP payment method, and a lead that becomes terminal
// gets its handle-customer projection exactly once.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest, actorID uuid.UUID, actorName string) (transport.LeadResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	if req.AssigneeID != nil && *req.AssigneeID != current.AssignedAdminID {
		isAdmin, err := s.repo.AdminExists(ctx, *req.AssigneeID)
		if err != nil {
			return transport.LeadResponse{}, err
		}
		if !isAdmin {
			return transport.LeadResponse{}, apperr.Validation("assignee must be an admin user")
		}
	}

	noteBody := ""
	if req.Note != nil {
		noteBody = strings.TrimSpace(sanitize.Text(*req.Note))
	}

	params := buildUpdateParams(req)
	applyDownPaymentGate(current, req, &params)

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	if noteBody != "" {
		if _, err := s.repo.CreateLeadNote(ctx, repository.CreateLeadNoteParams{
			LeadID:     id,
			AuthorID:   &actorID,
			AuthorName: actorName,
			Body:       noteBody,
		}); err != nil {
			return transport.LeadResponse{}, err
		}
	}

	s.publishLifecycleEvents(ctx, current, lead)

	if err := s.projectIfTerminal(ctx, lead); err != nil {
		return transport.LeadResponse{}, err
	}

	notes, err := s.repo.ListLeadNotes(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	return ToLeadResponse(lead, notes), nil
}

// UpdateStage moves a lead to another pipeline stage. Setting the stage
// a lead is already in is a no-op: nothing is written and no event fires.
func (s *Service) UpdateStage(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStageRequest) (transport.LeadResponse, error) {
	if !domain.Stage(req.Stage).Valid() {
		return transport.LeadResponse{}, apperr.Validation("invalid stage")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	if current.Stage == req.Stage {
		notes, err := s.repo.ListLeadNotes(ctx, id)
		if err != nil {
			return transport.LeadResponse{}, err
		}
		return ToLeadResponse(current, notes), nil
	}

	lead, err := s.repo.Update(ctx, id, repository.UpdateLeadParams{Stage: &req.Stage})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.eventBus.Publish(ctx, events.LeadStageChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStage:  current.Stage,
		NewStage:  lead.Stage,
	})

	if err := s.projectIfTerminal(ctx, lead); err != nil {
		return transport.LeadResponse{}, err
	}

	notes, err := s.repo.ListLeadNotes(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	return ToLeadResponse(lead, notes), nil
}

func buildUpdateParams(req transport.UpdateLeadRequest) repository.UpdateLeadParams {
	params := repository.UpdateLeadParams{}

	if req.Name != nil {
		params.ContactName = req.Name
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.ContactPhone = &normalized
	}
	if req.Source != nil {
		params.Source = req.Source
	}
	if req.ProductID.Set {
		params.ProductID = req.ProductID.Value
		params.ProductIDSet = true
	}
	if req.PackageID.Set {
		params.PackageID = req.PackageID.Value
		params.PackageIDSet = true
	}
	if req.Price != nil {
		params.Price = req.Price
	}
	if req.AssigneeID != nil {
		params.AssignedAdminID = req.AssigneeID
	}
	if req.Stage != nil {
		params.Stage = req.Stage
	}
	if req.ClosingDate.Set {
		params.ClosingDate = req.ClosingDate.Value
		params.ClosingDateSet = true
	}
	if req.PaymentMethod != nil {
		params.PaymentMethod = req.PaymentMethod
		params.PaymentMethodSet = true
	}
	if req.DownPayment != nil {
		params.DownPayment = req.DownPayment
	}
	if req.Status != nil {
		params.Status = req.Status
	}
	if req.FollowUpStatus != nil {
		params.FollowUpStatus = req.FollowUpStatus
	}
	if req.ShippingStatus != nil {
		params.ShippingStatus = req.ShippingStatus
	}
	if req.NextFollowUp.Set {
		params.NextFollowUp = req.NextFollowUp.Value
		params.NextFollowUpSet = true
	}
	if req.NextContactDate.Set {
		params.NextContactDate = req.NextContactDate.Value
		params.NextContactDateSet = true
	}
	if req.ObstacleID.Set {
		params.ObstacleID = req.ObstacleID.Value
		params.ObstacleIDSet = true
	}
	if req.PromoID.Set {
		params.PromoID = req.PromoID.Value
		params.PromoIDSet = true
	}
	if req.InquiryText != nil {
		text := sanitize.Text(*req.InquiryText)
		params.InquiryText = &text
	}

	return params
}

// applyDownPaymentGate forces the stored down payment to zero whenever
// the payment method after the patch is anything other than DP.
func applyDownPaymentGate(current repository.Lead, req transport.UpdateLeadRequest, params *repository.UpdateLeadParams) {
	method := ""
	if current.PaymentMethod != nil {
		method = *current.PaymentMethod
	}
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}

	downPayment := current.DownPayment
	if req.DownPayment != nil {
		downPayment = *req.DownPayment
	}

	gated := domain.ClosingDetails{
		PaymentMethod: domain.PaymentMethod(method),
		DownPayment:   downPayment,
	}.Gate()

	if gated.DownPayment != downPayment || (params.DownPayment != nil && *params.DownPayment != gated.DownPayment) {
		params.DownPayment = &gated.DownPayment
	}
}

func (s *Service) publishLifecycleEvents(ctx context.Context, before, after repository.Lead) {
	if before.Stage != after.Stage {
		s.eventBus.Publish(ctx, events.LeadStageChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    after.ID,
			OldStage:  before.Stage,
			NewStage:  after.Stage,
		})
	}

	if before.AssignedAdminID != after.AssignedAdminID {
		previous := before.AssignedAdminID
		s.eventBus.Publish(ctx, events.LeadAssigned{
			BaseEvent:    events.NewBaseEvent(),
			LeadID:       after.ID,
			AdminID:      after.AssignedAdminID,
			PreviousID:   &previous,
			ContactName:  after.ContactName,
			ContactPhone: after.ContactPhone,
		})
	}

	if after.NextFollowUp != nil && !equalTimePtrs(before.NextFollowUp, after.NextFollowUp) {
		s.eventBus.Publish(ctx, events.FollowUpScheduled{
			BaseEvent:       events.NewBaseEvent(),
			LeadID:          after.ID,
			AssignedAdminID: after.AssignedAdminID,
			DueAt:           *after.NextFollowUp,
		})
	}
}

// projectIfTerminal materializes the handle-customer projection the
// first time a lead satisfies the terminal predicate. Re-running it for
// an already-projected lead does nothing.
func (s *Service) projectIfTerminal(ctx context.Context, lead repository.Lead) error {
	if !domain.IsTerminal(domain.Stage(lead.Stage), domain.FinalStatus(lead.Status), domain.ShippingStatus(lead.ShippingStatus)) {
		return nil
	}

	projectionID, created, err := s.repo.CreateProjectionIfAbsent(ctx, lead.ID)
	if err != nil {
		return err
	}
	if created {
		s.eventBus.Publish(ctx, events.LeadCompleted{
			BaseEvent:        events.NewBaseEvent(),
			LeadID:           lead.ID,
			HandleCustomerID: projectionID,
			AssignedAdminID:  lead.AssignedAdminID,
			ContactName:      lead.ContactName,
		})
	}
	return nil
}

func equalTimePtrs(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
