package email

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) SendLeadAssignedEmail(ctx context.Context, toEmail, adminName, contactName, leadURL string) error {
	content, err := renderEmailTemplate("lead_assigned.html", leadAssignedEmailData{
		baseEmailData: baseEmailData{
			Title:    "Lead baru masuk",
			Heading:  "Lead baru untuk Anda",
			CTALabel: "Buka lead",
			CTAURL:   leadURL,
		},
		AdminName:   adminName,
		ContactName: contactName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectLeadAssigned, content)
}

func (s *SMTPSender) SendLeadCompletedEmail(ctx context.Context, toEmail, adminName, contactName, queueURL string) error {
	content, err := renderEmailTemplate("lead_completed.html", leadCompletedEmailData{
		baseEmailData: baseEmailData{
			Title:    "Lead selesai",
			Heading:  "Lead selesai dan masuk antrean follow-up",
			CTALabel: "Buka handle customer",
			CTAURL:   queueURL,
		},
		AdminName:   adminName,
		ContactName: contactName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectLeadCompletedFmt, contactName), content)
}

func (s *SMTPSender) SendFollowUpReminderEmail(ctx context.Context, toEmail, adminName, contactName, dueAt, leadURL string) error {
	content, err := renderEmailTemplate("follow_up_reminder.html", followUpReminderEmailData{
		baseEmailData: baseEmailData{
			Title:    "Pengingat follow-up",
			Heading:  "Waktunya follow-up",
			CTALabel: "Buka lead",
			CTAURL:   leadURL,
		},
		AdminName:   adminName,
		ContactName: contactName,
		DueAt:       dueAt,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectFollowUpReminderFmt, contactName), content)
}

var _ Sender = (*SMTPSender)(nil)
