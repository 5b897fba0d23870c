package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"crm_leads_backend/internal/events"
	"crm_leads_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func newMiniredisClient(t *testing.T) (*Client, asynq.RedisClientOpt) {
	t.Helper()

	mr := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: mr.Addr()}
	c := &Client{client: asynq.NewClient(opt), queue: "default"}
	t.Cleanup(func() { _ = c.Close() })
	return c, opt
}

func TestScheduleFollowUpReminderEnqueuesTask(t *testing.T) {
	c, opt := newMiniredisClient(t)

	dueAt := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	payload := FollowUpReminderPayload{
		LeadID:  uuid.New().String(),
		AdminID: uuid.New().String(),
		DueAt:   dueAt,
	}
	if err := c.ScheduleFollowUpReminder(context.Background(), payload, dueAt); err != nil {
		t.Fatalf("ScheduleFollowUpReminder: %v", err)
	}

	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	tasks, err := inspector.ListScheduledTasks("default")
	if err != nil {
		t.Fatalf("ListScheduledTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 scheduled task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskFollowUpReminder {
		t.Fatalf("task type = %q, want %q", tasks[0].Type, TaskFollowUpReminder)
	}

	var got FollowUpReminderPayload
	if err := json.Unmarshal(tasks[0].Payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got.LeadID != payload.LeadID || !got.DueAt.Equal(dueAt) {
		t.Fatalf("payload round trip mismatch: %+v", got)
	}
}

type recordedSchedule struct {
	payload FollowUpReminderPayload
	runAt   time.Time
}

type fakeScheduler struct {
	scheduled []recordedSchedule
}

func (f *fakeScheduler) ScheduleFollowUpReminder(_ context.Context, payload FollowUpReminderPayload, runAt time.Time) error {
	f.scheduled = append(f.scheduled, recordedSchedule{payload: payload, runAt: runAt})
	return nil
}

func TestModuleSchedulesOnFollowUpScheduled(t *testing.T) {
	fake := &fakeScheduler{}
	m := NewModule(fake, logger.New("development"))

	leadID := uuid.New()
	adminID := uuid.New()
	dueAt := time.Now().Add(24 * time.Hour)

	err := m.Handle(context.Background(), events.FollowUpScheduled{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          leadID,
		AssignedAdminID: adminID,
		DueAt:           dueAt,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(fake.scheduled) != 1 {
		t.Fatalf("expected 1 schedule call, got %d", len(fake.scheduled))
	}
	got := fake.scheduled[0]
	if got.payload.LeadID != leadID.String() || got.payload.AdminID != adminID.String() {
		t.Fatalf("unexpected payload: %+v", got.payload)
	}
	if !got.runAt.Equal(dueAt) {
		t.Fatalf("runAt = %v, want %v", got.runAt, dueAt)
	}
}

func TestModuleWithoutClientSkips(t *testing.T) {
	m := NewModule(nil, logger.New("development"))

	err := m.Handle(context.Background(), events.FollowUpScheduled{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		DueAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
}
