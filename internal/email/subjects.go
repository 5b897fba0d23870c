package email

const (
	subjectLeadAssigned        = "Lead baru telah ditugaskan kepada Anda"
	subjectLeadCompletedFmt    = "Lead %s selesai"
	subjectFollowUpReminderFmt = "Pengingat follow-up: %s"
)
