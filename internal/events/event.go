// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"crm_leads_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new inquiry becomes a lead.
type LeadCreated struct {
	BaseEvent
	LeadID          uuid.UUID `json:"leadId"`
	AssignedAdminID uuid.UUID `json:"assignedAdminId"`
	ContactName     string    `json:"contactName"`
	ContactPhone    string    `json:"contactPhone"`
	Source          string    `json:"source"`
	Duplicate       bool      `json:"duplicate"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadAssigned is published when a lead is assigned to an admin,
// at intake or on reassignment.
type LeadAssigned struct {
	BaseEvent
	LeadID       uuid.UUID  `json:"leadId"`
	AdminID      uuid.UUID  `json:"adminId"`
	PreviousID   *uuid.UUID `json:"previousId,omitempty"`
	ContactName  string     `json:"contactName"`
	ContactPhone string     `json:"contactPhone"`
}

func (e LeadAssigned) EventName() string { return "leads.lead.assigned" }

// LeadStageChanged is published when a lead moves between pipeline stages.
type LeadStageChanged struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldStage string    `json:"oldStage"`
	NewStage string    `json:"newStage"`
}

func (e LeadStageChanged) EventName() string { return "leads.stage.changed" }

// LeadCompleted is published the first time a lead satisfies the terminal
// predicate and a handle-customer projection is created for it.
type LeadCompleted struct {
	BaseEvent
	LeadID           uuid.UUID `json:"leadId"`
	HandleCustomerID uuid.UUID `json:"handleCustomerId"`
	AssignedAdminID  uuid.UUID `json:"assignedAdminId"`
	ContactName      string    `json:"contactName"`
}

func (e LeadCompleted) EventName() string { return "leads.lead.completed" }

// FollowUpScheduled is published when a lead's next follow-up timestamp is
// set or moved, so the reminder scheduler can enqueue a task.
type FollowUpScheduled struct {
	BaseEvent
	LeadID          uuid.UUID `json:"leadId"`
	AssignedAdminID uuid.UUID `json:"assignedAdminId"`
	DueAt           time.Time `json:"dueAt"`
}

func (e FollowUpScheduled) EventName() string { return "leads.followup.scheduled" }

// FollowUpRecorded is published when a handle-customer follow-up is recorded.
type FollowUpRecorded struct {
	BaseEvent
	HandleCustomerID uuid.UUID `json:"handleCustomerId"`
	LeadID           uuid.UUID `json:"leadId"`
	Status           string    `json:"status"`
}

func (e FollowUpRecorded) EventName() string { return "followup.recorded" }
