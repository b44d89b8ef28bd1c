package services

import (
	"github.com/sjperalta/debtbook-api/internal/jobs"
)

type JobService struct {
	worker    *jobs.Worker
	reminders *ReminderService
}

func NewJobService(worker *jobs.Worker, reminders *ReminderService) *JobService {
	return &JobService{
		worker:    worker,
		reminders: reminders,
	}
}

// GetStatus returns the background worker statistics
func (s *JobService) GetStatus() jobs.WorkerStats {
	return s.worker.GetStats()
}

// TriggerReminders queues an out-of-schedule reminder run
func (s *JobService) TriggerReminders() {
	s.worker.Enqueue(ReminderJobName, s.reminders.Job())
}
