package notification

import (
	"context"
	"errors"
	"testing"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	contacts map[uuid.UUID]AdminContact
}

func (d fakeDirectory) AdminContact(_ context.Context, id uuid.UUID) (AdminContact, error) {
	c, ok := d.contacts[id]
	if !ok {
		return AdminContact{}, errors.New("no such admin")
	}
	return c, nil
}

type sentEmail struct {
	kind    string
	to      string
	admin   string
	contact string
	url     string
}

type fakeSender struct {
	sent []sentEmail
	err  error
}

func (s *fakeSender) SendLeadAssignedEmail(_ context.Context, to, admin, contact, url string) error {
	s.sent = append(s.sent, sentEmail{kind: "assigned", to: to, admin: admin, contact: contact, url: url})
	return s.err
}

func (s *fakeSender) SendLeadCompletedEmail(_ context.Context, to, admin, contact, url string) error {
	s.sent = append(s.sent, sentEmail{kind: "completed", to: to, admin: admin, contact: contact, url: url})
	return s.err
}

func (s *fakeSender) SendFollowUpReminderEmail(_ context.Context, to, admin, contact, _, url string) error {
	s.sent = append(s.sent, sentEmail{kind: "reminder", to: to, admin: admin, contact: contact, url: url})
	return s.err
}

type staticConfig struct{ baseURL string }

func (c staticConfig) GetAppBaseURL() string { return c.baseURL }

func newTestModule(dir AdminDirectory, sender *fakeSender) *Module {
	return &Module{
		admins: dir,
		sender: sender,
		cfg:    staticConfig{baseURL: "https://crm.example.com/"},
		log:    logger.New("development"),
	}
}

func TestHandleLeadAssignedSendsEmail(t *testing.T) {
	adminID := uuid.New()
	leadID := uuid.New()
	sender := &fakeSender{}
	m := newTestModule(fakeDirectory{contacts: map[uuid.UUID]AdminContact{
		adminID: {Name: "Dewi", Email: "dewi@example.com"},
	}}, sender)

	err := m.Handle(context.Background(), events.LeadAssigned{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      leadID,
		AdminID:     adminID,
		ContactName: "Budi Santoso",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	got := sender.sent[0]
	if got.kind != "assigned" || got.to != "dewi@example.com" {
		t.Fatalf("unexpected email: %+v", got)
	}
	wantURL := "https://crm.example.com/leads/" + leadID.String()
	if got.url != wantURL {
		t.Fatalf("url = %q, want %q", got.url, wantURL)
	}
}

func TestHandleLeadCompletedSendsEmail(t *testing.T) {
	adminID := uuid.New()
	sender := &fakeSender{}
	m := newTestModule(fakeDirectory{contacts: map[uuid.UUID]AdminContact{
		adminID: {Name: "Dewi", Email: "dewi@example.com"},
	}}, sender)

	err := m.Handle(context.Background(), events.LeadCompleted{
		BaseEvent:        events.NewBaseEvent(),
		LeadID:           uuid.New(),
		HandleCustomerID: uuid.New(),
		AssignedAdminID:  adminID,
		ContactName:      "Budi Santoso",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(sender.sent) != 1 || sender.sent[0].kind != "completed" {
		t.Fatalf("expected one completed email, got %+v", sender.sent)
	}
	if sender.sent[0].url != "https://crm.example.com/handle-customers" {
		t.Fatalf("unexpected queue url %q", sender.sent[0].url)
	}
}

func TestHandleSkipsAdminWithoutEmail(t *testing.T) {
	adminID := uuid.New()
	sender := &fakeSender{}
	m := newTestModule(fakeDirectory{contacts: map[uuid.UUID]AdminContact{
		adminID: {Name: "Dewi"},
	}}, sender)

	err := m.Handle(context.Background(), events.LeadAssigned{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		AdminID:   adminID,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no emails, got %d", len(sender.sent))
	}
}

func TestHandleReturnsDirectoryError(t *testing.T) {
	sender := &fakeSender{}
	m := newTestModule(fakeDirectory{}, sender)

	err := m.Handle(context.Background(), events.LeadAssigned{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		AdminID:   uuid.New(),
	})
	if err == nil {
		t.Fatal("expected error for unknown admin")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no emails, got %d", len(sender.sent))
	}
}
