package management

import (
	"crm_leads_backend/internal/leads/domain"
	"crm_leads_backend/internal/leads/repository"
	"crm_leads_backend/internal/leads/transport"
)

// ToLeadResponse maps a stored lead to its API shape. Closing details
// appear only while the lead sits in the Closing stage, with the down
// payment gated to the DP payment method. Notes are stored oldest first
// and presented most recent first.
func ToLeadResponse(lead repository.Lead, notes []repository.LeadNote) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:              lead.ID,
		Name:            lead.ContactName,
		Phone:           lead.ContactPhone,
		Source:          lead.Source,
		ProductID:       lead.ProductID,
		PackageID:       lead.PackageID,
		Price:           lead.Price,
		AssigneeID:      lead.AssignedAdminID,
		Stage:           lead.Stage,
		Status:          lead.Status,
		FollowUpStatus:  lead.FollowUpStatus,
		ShippingStatus:  lead.ShippingStatus,
		NextFollowUp:    lead.NextFollowUp,
		NextContactDate: lead.NextContactDate,
		ObstacleID:      lead.ObstacleID,
		PromoID:         lead.PromoID,
		InquiryText:     lead.InquiryText,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}

	if domain.Stage(lead.Stage) == domain.StageClosing {
		var method domain.PaymentMethod
		if lead.PaymentMethod != nil {
			method = domain.PaymentMethod(*lead.PaymentMethod)
		}
		gated := domain.ClosingDetails{PaymentMethod: method, DownPayment: lead.DownPayment}.Gate()

		resp.Closing = &transport.ClosingDetailsResponse{
			PaymentMethod: lead.PaymentMethod,
			DownPayment:   gated.DownPayment,
			ClosingDate:   lead.ClosingDate,
		}
	}

	if len(notes) > 0 {
		resp.Notes = make([]transport.LeadNoteResponse, len(notes))
		for i, note := range notes {
			resp.Notes[len(notes)-1-i] = ToLeadNoteResponse(note)
		}
	}

	return resp
}

func ToLeadNoteResponse(note repository.LeadNote) transport.LeadNoteResponse {
	return transport.LeadNoteResponse{
		ID:         note.ID,
		LeadID:     note.LeadID,
		AuthorID:   note.AuthorID,
		AuthorName: note.AuthorName,
		Body:       note.Body,
		CreatedAt:  note.CreatedAt,
	}
}
