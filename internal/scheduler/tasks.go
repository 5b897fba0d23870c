package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskFollowUpReminder = "leads.followup.reminder"

// FollowUpReminderPayload identifies the follow-up a reminder task is for.
// DueAt is the schedule the task was created against; the worker drops the
// task when the lead's follow-up has since been moved or cleared.
type FollowUpReminderPayload struct {
	LeadID  string    `json:"leadId"`
	AdminID string    `json:"adminId"`
	DueAt   time.Time `json:"dueAt"`
}

func NewFollowUpReminderTask(payload FollowUpReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFollowUpReminder, data), nil
}

func ParseFollowUpReminderPayload(task *asynq.Task) (FollowUpReminderPayload, error) {
	var payload FollowUpReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FollowUpReminderPayload{}, err
	}
	return payload, nil
}
