// Package email sends transactional emails to admins. Rendering uses
// embedded HTML templates; delivery goes through the configured SMTP
// server via go-mail.
package email

import (
	"context"

	"crm_leads_backend/platform/config"
)

// Sender delivers the emails the notification module produces.
type Sender interface {
	SendLeadAssignedEmail(ctx context.Context, toEmail, adminName, contactName, leadURL string) error
	SendLeadCompletedEmail(ctx context.Context, toEmail, adminName, contactName, queueURL string) error
	SendFollowUpReminderEmail(ctx context.Context, toEmail, adminName, contactName, dueAt, leadURL string) error
}

// NoopSender is used when email delivery is disabled. It accepts every
// send and does nothing, so callers never need an enabled check.
type NoopSender struct{}

func (NoopSender) SendLeadAssignedEmail(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendLeadCompletedEmail(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendFollowUpReminderEmail(context.Context, string, string, string, string, string) error {
	return nil
}

var _ Sender = NoopSender{}

// NewSender picks the delivery implementation from configuration: the
// SMTP sender when email is enabled, the no-op sender otherwise.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
