// Package transport defines the request/response DTOs for the leads module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateInquiryRequest is the public intake form payload.
type CreateInquiryRequest struct {
	Name        string     `json:"name" binding:"required" validate:"required,min=1,max=200"`
	Phone       string     `json:"phone" binding:"required" validate:"required,min=5,max=32"`
	Source      string     `json:"source" binding:"required" validate:"required,min=1,max=100"`
	ProductID   uuid.UUID  `json:"productId" binding:"required" validate:"required"`
	PackageID   *uuid.UUID `json:"packageId,omitempty"`
	InquiryText string     `json:"inquiryText" binding:"required" validate:"required,min=1,max=4000"`
}

// UpdateLeadRequest is a merge patch: absent fields keep their stored
// values, explicit nulls clear nullable fields.
type UpdateLeadRequest struct {
	Name            *string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone           *string      `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	Source          *string      `json:"source,omitempty" validate:"omitempty,min=1,max=100"`
	ProductID       OptionalUUID `json:"productId,omitzero"`
	PackageID       OptionalUUID `json:"packageId,omitzero"`
	Price           *int64       `json:"price,omitempty" validate:"omitempty,min=0"`
	AssigneeID      *uuid.UUID   `json:"assigneeId,omitempty"`
	Stage           *string      `json:"stage,omitempty" validate:"omitempty,oneof='On Progress' 'Closing' 'Loss'"`
	ClosingDate     OptionalTime `json:"closingDate,omitzero"`
	PaymentMethod   *string      `json:"paymentMethod,omitempty" validate:"omitempty,oneof='Full Transfer' 'COD' 'DP'"`
	DownPayment     *int64       `json:"downPayment,omitempty" validate:"omitempty,min=0"`
	Status          *string      `json:"status,omitempty" validate:"omitempty,oneof='Belum Selesai' 'Selesai'"`
	FollowUpStatus  *string      `json:"followUpStatus,omitempty" validate:"omitempty,oneof='Belum Follow Up' 'Sudah Follow Up'"`
	ShippingStatus  *string      `json:"shippingStatus,omitempty" validate:"omitempty,oneof=Pending Dikirim Selesai"`
	NextFollowUp    OptionalTime `json:"nextFollowUp,omitzero"`
	NextContactDate OptionalTime `json:"nextContactDate,omitzero"`
	ObstacleID      OptionalUUID `json:"obstacleId,omitzero"`
	PromoID         OptionalUUID `json:"promoId,omitzero"`
	InquiryText     *string      `json:"inquiryText,omitempty" validate:"omitempty,max=4000"`
	Note            *string      `json:"note,omitempty" validate:"omitempty,min=1,max=2000"`
}

// UpdateLeadStageRequest moves a lead between pipeline stages.
type UpdateLeadStageRequest struct {
	Stage string `json:"stage" binding:"required" validate:"required,oneof='On Progress' 'Closing' 'Loss'"`
}

// CreateLeadNoteRequest appends a note to a lead.
type CreateLeadNoteRequest struct {
	Body string `json:"body" binding:"required" validate:"required,min=1,max=2000"`
}

// ListLeadsRequest holds the query-string filters for the board view.
type ListLeadsRequest struct {
	Stage      string `form:"stage" validate:"omitempty,oneof='On Progress' 'Closing' 'Loss'"`
	AssigneeID string `form:"assigneeId" validate:"omitempty,uuid"`
	Search     string `form:"search" validate:"omitempty,max=200"`
}

// ClosingDetailsResponse is present only while a lead sits in Closing.
type ClosingDetailsResponse struct {
	PaymentMethod *string    `json:"paymentMethod"`
	DownPayment   int64      `json:"downPayment"`
	ClosingDate   *time.Time `json:"closingDate"`
}

type LeadResponse struct {
	ID              uuid.UUID               `json:"id"`
	Name            string                  `json:"name"`
	Phone           string                  `json:"phone"`
	Source          string                  `json:"source"`
	ProductID       *uuid.UUID              `json:"productId"`
	PackageID       *uuid.UUID              `json:"packageId"`
	Price           int64                   `json:"price"`
	AssigneeID      uuid.UUID               `json:"assigneeId"`
	Stage           string                  `json:"stage"`
	Closing         *ClosingDetailsResponse `json:"closing,omitempty"`
	Status          string                  `json:"status"`
	FollowUpStatus  string                  `json:"followUpStatus"`
	ShippingStatus  string                  `json:"shippingStatus"`
	NextFollowUp    *time.Time              `json:"nextFollowUp"`
	NextContactDate *time.Time              `json:"nextContactDate"`
	ObstacleID      *uuid.UUID              `json:"obstacleId"`
	PromoID         *uuid.UUID              `json:"promoId"`
	InquiryText     string                  `json:"inquiryText"`
	Notes           []LeadNoteResponse      `json:"notes,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

type LeadNoteResponse struct {
	ID         uuid.UUID  `json:"id"`
	LeadID     uuid.UUID  `json:"leadId"`
	AuthorID   *uuid.UUID `json:"authorId"`
	AuthorName string     `json:"authorName"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type LeadNotesResponse struct {
	Items []LeadNoteResponse `json:"items"`
}

// AssignedAdminResponse identifies the admin an inquiry landed on.
type AssignedAdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// InquiryResponse is returned to the public intake form so the visitor
// can continue the conversation on WhatsApp immediately.
type InquiryResponse struct {
	Lead          LeadResponse          `json:"lead"`
	AssignedAdmin AssignedAdminResponse `json:"assignedAdmin"`
	WhatsAppLink  string                `json:"whatsappLink"`
}
