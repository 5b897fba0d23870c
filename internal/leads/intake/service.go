// Package intake turns public inquiries into assigned leads. It owns
// duplicate detection and delegates the round-robin pick to the
// repository, which serializes concurrent intakes on the rotation
// cursor inside a single transaction.
package intake

import (
	"context"
	"errors"
	"strings"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/internal/leads/domain"
	"crm_leads_backend/internal/leads/management"
	"crm_leads_backend/internal/leads/ports"
	"crm_leads_backend/internal/leads/repository"
	"crm_leads_backend/internal/leads/transport"
	"crm_leads_backend/platform/apperr"
	"crm_leads_backend/platform/phone"
	"crm_leads_backend/platform/sanitize"
	"crm_leads_backend/platform/whatsapp"

	"github.com/google/uuid"
)

// Repository is the consumer-driven data access interface for intake.
type Repository interface {
	FindByPhoneDigits(ctx context.Context, digits string) (*repository.Lead, error)
	CreateInquiry(ctx context.Context, params repository.CreateInquiryParams, note *repository.CreateLeadNoteParams) (repository.Lead, domain.Admin, error)
	ListLeadNotes(ctx context.Context, leadID uuid.UUID) ([]repository.LeadNote, error)
}

// Service handles public inquiry intake.
type Service struct {
	repo     Repository
	catalog  ports.CatalogReader
	eventBus events.Bus
}

func New(repo Repository, catalog ports.CatalogReader, eventBus events.Bus) *Service {
	return &Service{repo: repo, catalog: catalog, eventBus: eventBus}
}

// SubmitInquiry validates and stores a public inquiry, assigns it to
// the next admin in rotation, and annotates it with a system note when
// an earlier lead shares the same phone number. The duplicate is never
// rejected: it lands as a fresh lead carrying the annotation.
func (s *Service) SubmitInquiry(ctx context.Context, req transport.CreateInquiryRequest) (transport.InquiryResponse, error) {
	name := strings.TrimSpace(req.Name)
	source := strings.TrimSpace(req.Source)
	inquiryText := strings.TrimSpace(sanitize.Text(req.InquiryText))
	if name == "" || source == "" || inquiryText == "" {
		return transport.InquiryResponse{}, apperr.Validation("name, source and inquiry text are required")
	}

	normalized := phone.NormalizeE164(req.Phone)
	digits := phone.Digits(normalized)
	if digits == "" {
		return transport.InquiryResponse{}, apperr.Validation("phone number must contain digits")
	}

	exists, err := s.catalog.ProductExists(ctx, req.ProductID)
	if err != nil {
		return transport.InquiryResponse{}, err
	}
	if !exists {
		return transport.InquiryResponse{}, apperr.Validation("unknown product")
	}
	if req.PackageID != nil {
		ok, err := s.catalog.PackageBelongsToProduct(ctx, *req.PackageID, req.ProductID)
		if err != nil {
			return transport.InquiryResponse{}, err
		}
		if !ok {
			return transport.InquiryResponse{}, apperr.Validation("package does not belong to the selected product")
		}
	}

	existing, err := s.repo.FindByPhoneDigits(ctx, digits)
	if err != nil {
		return transport.InquiryResponse{}, err
	}

	var note *repository.CreateLeadNoteParams
	if existing != nil {
		note = &repository.CreateLeadNoteParams{
			AuthorName: domain.SystemAuthorName,
			Body:       domain.DuplicateNoteBody(existing.ContactName, existing.ID.String()),
		}
	}

	productID := req.ProductID
	lead, assignee, err := s.repo.CreateInquiry(ctx, repository.CreateInquiryParams{
		ContactName:  name,
		ContactPhone: normalized,
		Source:       source,
		ProductID:    &productID,
		PackageID:    req.PackageID,
		InquiryText:  inquiryText,
	}, note)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveAdmin) {
			return transport.InquiryResponse{}, apperr.Conflict("no active admins available for lead assignment")
		}
		return transport.InquiryResponse{}, err
	}

	s.eventBus.Publish(ctx, events.LeadCreated{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          lead.ID,
		AssignedAdminID: assignee.ID,
		ContactName:     lead.ContactName,
		ContactPhone:    lead.ContactPhone,
		Source:          lead.Source,
		Duplicate:       existing != nil,
	})
	s.eventBus.Publish(ctx, events.LeadAssigned{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		AdminID:      assignee.ID,
		ContactName:  lead.ContactName,
		ContactPhone: lead.ContactPhone,
	})

	notes, err := s.repo.ListLeadNotes(ctx, lead.ID)
	if err != nil {
		return transport.InquiryResponse{}, err
	}

	return transport.InquiryResponse{
		Lead: management.ToLeadResponse(lead, notes),
		AssignedAdmin: transport.AssignedAdminResponse{
			ID:    assignee.ID,
			Name:  assignee.FullName,
			Phone: assignee.Phone,
		},
		WhatsAppLink: whatsapp.Link(assignee.Phone, whatsapp.GreetingMessage(name)),
	}, nil
}
