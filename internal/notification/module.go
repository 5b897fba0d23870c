// Package notification sends emails to admins in response to domain
// events. It subscribes on the event bus so the leads module never
// touches email providers or templates.
package notification

import (
	"context"
	"fmt"
	"strings"

	"crm_leads_backend/internal/email"
	"crm_leads_backend/internal/events"
	apphttp "crm_leads_backend/internal/http"
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminContact is the recipient data resolved for an event.
type AdminContact struct {
	Name  string
	Email string
}

// AdminDirectory resolves an admin's contact details by user ID.
type AdminDirectory interface {
	AdminContact(ctx context.Context, id uuid.UUID) (AdminContact, error)
}

// pgAdminDirectory reads admin contacts straight from the users table.
// A dedicated query keeps this module independent of identity internals.
type pgAdminDirectory struct {
	pool *pgxpool.Pool
}

func (d pgAdminDirectory) AdminContact(ctx context.Context, id uuid.UUID) (AdminContact, error) {
	var c AdminContact
	err := d.pool.QueryRow(ctx,
		`SELECT full_name, email FROM users WHERE id = $1`, id,
	).Scan(&c.Name, &c.Email)
	if err != nil {
		return AdminContact{}, fmt.Errorf("resolve admin contact: %w", err)
	}
	return c, nil
}

// Module handles notification event subscriptions.
type Module struct {
	admins AdminDirectory
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates the notification module.
func New(pool *pgxpool.Pool, sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		admins: pgAdminDirectory{pool: pool},
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterRoutes is a no-op; this module has no HTTP surface.
func (m *Module) RegisterRoutes(_ *apphttp.RouterContext) {}

// RegisterHandlers subscribes to the domain events this module reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadAssigned{}.EventName(), m)
	bus.Subscribe(events.LeadCompleted{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadAssigned:
		return m.handleLeadAssigned(ctx, e)
	case events.LeadCompleted:
		return m.handleLeadCompleted(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleLeadAssigned(ctx context.Context, e events.LeadAssigned) error {
	contact, err := m.admins.AdminContact(ctx, e.AdminID)
	if err != nil {
		m.log.Error("failed to resolve assignee contact", "leadId", e.LeadID, "adminId", e.AdminID, "error", err)
		return err
	}
	if contact.Email == "" {
		m.log.Debug("assignee has no email; skipping notification", "adminId", e.AdminID)
		return nil
	}

	leadURL := m.buildURL("/leads/" + e.LeadID.String())
	if err := m.sender.SendLeadAssignedEmail(ctx, contact.Email, contact.Name, e.ContactName, leadURL); err != nil {
		m.log.Error("failed to send lead assigned email", "leadId", e.LeadID, "adminId", e.AdminID, "error", err)
		return err
	}
	m.log.Info("lead assigned email sent", "leadId", e.LeadID, "adminId", e.AdminID)
	return nil
}

func (m *Module) handleLeadCompleted(ctx context.Context, e events.LeadCompleted) error {
	contact, err := m.admins.AdminContact(ctx, e.AssignedAdminID)
	if err != nil {
		m.log.Error("failed to resolve assignee contact", "leadId", e.LeadID, "adminId", e.AssignedAdminID, "error", err)
		return err
	}
	if contact.Email == "" {
		m.log.Debug("assignee has no email; skipping notification", "adminId", e.AssignedAdminID)
		return nil
	}

	queueURL := m.buildURL("/handle-customers")
	if err := m.sender.SendLeadCompletedEmail(ctx, contact.Email, contact.Name, e.ContactName, queueURL); err != nil {
		m.log.Error("failed to send lead completed email", "leadId", e.LeadID, "adminId", e.AssignedAdminID, "error", err)
		return err
	}
	m.log.Info("lead completed email sent", "leadId", e.LeadID, "handleCustomerId", e.HandleCustomerID)
	return nil
}

func (m *Module) buildURL(path string) string {
	return strings.TrimRight(m.cfg.GetAppBaseURL(), "/") + path
}
