package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm_leads_backend/internal/email"
	"crm_leads_backend/internal/leads/domain"
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reminderInfo is the slice of lead and assignee state the reminder
// handler needs to decide whether a task is still relevant.
type reminderInfo struct {
	ContactName    string
	Stage          string
	Status         string
	ShippingStatus string
	NextFollowUp   *time.Time
	AdminName      string
	AdminEmail     string
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	pool    *pgxpool.Pool
	sender  email.Sender
	baseURL string
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notifCfg config.NotificationConfig, pool *pgxpool.Pool, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		pool:    pool,
		sender:  sender,
		baseURL: strings.TrimRight(notifCfg.GetAppBaseURL(), "/"),
		log:     log,
	}

	mux.HandleFunc(TaskFollowUpReminder, w.handleFollowUpReminder)

	return w, nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleFollowUpReminder sends the reminder email, unless the follow-up
// has been moved, cleared, or the lead has since completed.
func (w *Worker) handleFollowUpReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpReminderPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	info, err := w.reminderInfo(ctx, leadID)
	if err != nil {
		return err
	}
	if info == nil {
		return nil
	}

	if info.NextFollowUp == nil || !info.NextFollowUp.Equal(payload.DueAt) {
		w.log.Debug("follow-up rescheduled; dropping stale reminder", "leadId", leadID)
		return nil
	}
	if domain.IsTerminal(domain.Stage(info.Stage), domain.FinalStatus(info.Status), domain.ShippingStatus(info.ShippingStatus)) {
		return nil
	}
	if info.AdminEmail == "" {
		return nil
	}

	leadURL := w.baseURL + "/leads/" + leadID.String()
	dueAt := payload.DueAt.Format("02 Jan 2006 15:04")
	if err := w.sender.SendFollowUpReminderEmail(ctx, info.AdminEmail, info.AdminName, info.ContactName, dueAt, leadURL); err != nil {
		w.log.Error("failed to send follow-up reminder email", "leadId", leadID, "error", err)
		return err
	}
	w.log.Info("follow-up reminder email sent", "leadId", leadID)
	return nil
}

func (w *Worker) reminderInfo(ctx context.Context, leadID uuid.UUID) (*reminderInfo, error) {
	var info reminderInfo
	err := w.pool.QueryRow(ctx, `
		SELECT l.contact_name, l.stage, l.status, l.shipping_status, l.next_follow_up,
		       u.full_name, u.email
		FROM leads l
		JOIN users u ON u.id = l.assigned_admin_id
		WHERE l.id = $1
	`, leadID).Scan(
		&info.ContactName, &info.Stage, &info.Status, &info.ShippingStatus, &info.NextFollowUp,
		&info.AdminName, &info.AdminEmail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}
