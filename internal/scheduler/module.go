package scheduler

import (
	"context"
	"time"

	"crm_leads_backend/internal/events"
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/platform/logger"
)

// ReminderScheduler enqueues follow-up reminder tasks.
type ReminderScheduler interface {
	ScheduleFollowUpReminder(ctx context.Context, payload FollowUpReminderPayload, runAt time.Time) error
}

// Module bridges follow-up scheduling events onto the task queue. When no
// Redis is configured the module is constructed with a nil scheduler and
// reminders are simply not enqueued.
type Module struct {
	client ReminderScheduler
	log    *logger.Logger
}

func NewModule(client ReminderScheduler, log *logger.Logger) *Module {
	return &Module{client: client, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "scheduler" }

// RegisterRoutes is a no-op; this module has no HTTP surface.
func (m *Module) RegisterRoutes(_ *apphttp.RouterContext) {}

// RegisterHandlers subscribes to follow-up scheduling events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.FollowUpScheduled{}.EventName(), m)
}

func (m *Module) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(events.FollowUpScheduled)
	if !ok {
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
	if m.client == nil {
		m.log.Debug("reminder scheduler not configured; skipping", "leadId", e.LeadID)
		return nil
	}

	err := m.client.ScheduleFollowUpReminder(ctx, FollowUpReminderPayload{
		LeadID:  e.LeadID.String(),
		AdminID: e.AssignedAdminID.String(),
		DueAt:   e.DueAt,
	}, e.DueAt)
	if err != nil {
		m.log.Error("failed to schedule follow-up reminder", "leadId", e.LeadID, "error", err)
		return err
	}
	m.log.Info("follow-up reminder scheduled", "leadId", e.LeadID, "dueAt", e.DueAt)
	return nil
}
