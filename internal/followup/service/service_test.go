package service

import (
	"context"
	"testing"
	"time"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/internal/followup/repository"
	"crm_leads_backend/platform/apperr"
	platformevents "crm_leads_backend/platform/events"

	"github.com/google/uuid"
)

type fakeRepo struct {
	queue   []repository.HandleCustomer
	missing bool
}

func (f *fakeRepo) List(_ context.Context, filter repository.ListFilter) ([]repository.HandleCustomer, error) {
	out := make([]repository.HandleCustomer, 0)
	for _, hc := range f.queue {
		if filter.FollowUpStatus != "" && hc.FollowUpStatus != filter.FollowUpStatus {
			continue
		}
		out = append(out, hc)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.HandleCustomer, error) {
	for _, hc := range f.queue {
		if hc.ID == id {
			return hc, nil
		}
	}
	return repository.HandleCustomer{}, repository.ErrNotFound
}

func (f *fakeRepo) UpdateFollowUpStatus(_ context.Context, id uuid.UUID, status string, lastFollowUpAt *time.Time) (repository.HandleCustomer, error) {
	for i, hc := range f.queue {
		if hc.ID == id {
			f.queue[i].FollowUpStatus = status
			// nil keeps the stored time, mirroring the COALESCE in SQL
			if lastFollowUpAt != nil {
				f.queue[i].LastFollowUpAt = lastFollowUpAt
			}
			return f.queue[i], nil
		}
	}
	return repository.HandleCustomer{}, repository.ErrNotFound
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, platformevents.Handler) {}

func entry(status string) repository.HandleCustomer {
	return repository.HandleCustomer{
		ID:              uuid.New(),
		LeadID:          uuid.New(),
		ContactName:     "Budi Santoso",
		ContactPhone:    "+6281234567890",
		AssignedAdminID: uuid.New(),
		FollowUpStatus:  status,
		CompletedAt:     time.Now(),
	}
}

func TestListQueueFiltersByStatus(t *testing.T) {
	repo := &fakeRepo{queue: []repository.HandleCustomer{entry(FollowUpBelum), entry(FollowUpSudah)}}
	svc := New(repo, &recordingBus{})

	queue, err := svc.ListQueue(context.Background(), FollowUpBelum, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queue.Total != 1 {
		t.Fatalf("expected 1 pending entry, got %d", queue.Total)
	}
	if queue.Items[0].FollowUpStatus != FollowUpBelum {
		t.Fatalf("expected Belum entry, got %q", queue.Items[0].FollowUpStatus)
	}
}

func TestListQueueRejectsUnknownStatus(t *testing.T) {
	svc := New(&fakeRepo{}, &recordingBus{})

	_, err := svc.ListQueue(context.Background(), "Mungkin", nil)
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordFollowUpStampsAndPublishes(t *testing.T) {
	hc := entry(FollowUpBelum)
	repo := &fakeRepo{queue: []repository.HandleCustomer{hc}}
	bus := &recordingBus{}
	svc := New(repo, bus)

	updated, err := svc.RecordFollowUp(context.Background(), hc.ID, FollowUpSudah, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FollowUpStatus != FollowUpSudah {
		t.Fatalf("expected Sudah, got %q", updated.FollowUpStatus)
	}
	if updated.LastFollowUpAt == nil {
		t.Fatalf("follow-up time must be stamped")
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	recorded, ok := bus.published[0].(events.FollowUpRecorded)
	if !ok {
		t.Fatalf("expected FollowUpRecorded, got %T", bus.published[0])
	}
	if recorded.HandleCustomerID != hc.ID || recorded.LeadID != hc.LeadID {
		t.Fatalf("event must reference the queue entry and its lead")
	}
}

func TestRecordFollowUpUsesSuppliedDate(t *testing.T) {
	hc := entry(FollowUpBelum)
	repo := &fakeRepo{queue: []repository.HandleCustomer{hc}}
	svc := New(repo, &recordingBus{})

	when := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	updated, err := svc.RecordFollowUp(context.Background(), hc.ID, FollowUpSudah, &when)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.LastFollowUpAt == nil || !updated.LastFollowUpAt.Equal(when) {
		t.Fatalf("expected caller-supplied follow-up time %v, got %v", when, updated.LastFollowUpAt)
	}
}

func TestRecordFollowUpRevertKeepsTimestamp(t *testing.T) {
	earlier := time.Date(2026, 8, 18, 14, 0, 0, 0, time.UTC)
	hc := entry(FollowUpSudah)
	hc.LastFollowUpAt = &earlier
	repo := &fakeRepo{queue: []repository.HandleCustomer{hc}}
	svc := New(repo, &recordingBus{})

	updated, err := svc.RecordFollowUp(context.Background(), hc.ID, FollowUpBelum, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FollowUpStatus != FollowUpBelum {
		t.Fatalf("expected revert to Belum, got %q", updated.FollowUpStatus)
	}
	if updated.LastFollowUpAt == nil || !updated.LastFollowUpAt.Equal(earlier) {
		t.Fatalf("revert must not restamp the follow-up time, got %v", updated.LastFollowUpAt)
	}
}

func TestRecordFollowUpUnknownEntry(t *testing.T) {
	svc := New(&fakeRepo{}, &recordingBus{})

	_, err := svc.RecordFollowUp(context.Background(), uuid.New(), FollowUpSudah, nil)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordFollowUpRejectsUnknownStatus(t *testing.T) {
	svc := New(&fakeRepo{}, &recordingBus{})

	_, err := svc.RecordFollowUp(context.Background(), uuid.New(), "Done", nil)
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
