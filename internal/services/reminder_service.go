package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/ledger"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// ReminderJobName identifies the promise-to-pay reminder job in worker stats
const ReminderJobName = "promise_to_pay_reminders"

// ReminderService notifies workers about customers whose promise-to-pay
// date is coming up and who still owe them money.
type ReminderService struct {
	reader        *snapshotReader
	userRepo      repository.UserRepository
	notifications *NotificationService
	now           Clock
	offsetDays    int
}

func NewReminderService(reader *snapshotReader, userRepo repository.UserRepository, notifications *NotificationService, now Clock, offsetDays int) *ReminderService {
	return &ReminderService{
		reader:        reader,
		userRepo:      userRepo,
		notifications: notifications,
		now:           now,
		offsetDays:    offsetDays,
	}
}

// Run creates at most one reminder per (worker, customer, date) and returns
// how many were created.
func (s *ReminderService) Run(ctx context.Context) (int, error) {
	workers, err := s.userRepo.FindActive(ctx)
	if err != nil {
		return 0, storeError("load workers", err)
	}
	snap, err := s.reader.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	target := ledger.NotificationDate(s.now(), s.offsetDays)
	due := models.DateOf(target)
	created := 0

	for _, worker := range workers {
		for _, balance := range dueBalances(snap.ForWorker(worker.ID), target) {
			customer := balance.Customer
			exists, err := s.notifications.repo.ExistsForCustomerOn(ctx, worker.ID, customer.ID, target)
			if err != nil {
				return created, storeError("check reminder", err)
			}
			if exists {
				continue
			}

			notifType := models.NotificationTypePromiseToPay
			customerID := customer.ID
			dueDate := due
			err = s.notifications.Create(ctx, &models.Notification{
				UserID:           worker.ID,
				CustomerID:       &customerID,
				Title:            "Promise to pay due",
				Message:          fmt.Sprintf("%s (%s) promised to pay on %s. Outstanding: %s", customer.FullName, customer.PhoneNumber, formatDate(target), balance.Outstanding.StringFixed(2)),
				NotificationType: &notifType,
				DueDate:          &dueDate,
			})
			if err != nil {
				return created, err
			}
			created++
		}
	}

	if created > 0 {
		logger.Info("Promise-to-pay reminders created", "count", created, "due_date", formatDate(target))
	}
	return created, nil
}

// Job adapts Run to the background worker
func (s *ReminderService) Job() jobs.Job {
	return func(ctx context.Context) error {
		_, err := s.Run(ctx)
		return err
	}
}
