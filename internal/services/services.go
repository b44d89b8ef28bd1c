package services

import (
	"context"
	"time"

	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/ledger"
	"github.com/sjperalta/debtbook-api/internal/repository"
)

// Clock returns the current time in the pharmacy's location
type Clock func() time.Time

// NewClock returns a Clock reading the wall clock in loc
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Services holds all service instances
type Services struct {
	Customer     *CustomerService
	Debt         *DebtService
	Payment      *PaymentService
	Dashboard    *DashboardService
	Session      *SessionService
	Notification *NotificationService
	Reminder     *ReminderService
	Export       *ExportService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	return NewServicesWithClock(repos, worker, cfg, NewClock(cfg.Location))
}

// NewServicesWithClock is NewServices with an explicit clock
func NewServicesWithClock(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, clock Clock) *Services {
	reader := newSnapshotReader(repos)

	dashboardSvc := NewDashboardService(reader, clock, cfg.TopCustomersDefault)
	notificationSvc := NewNotificationService(repos.Notification)
	reminderSvc := NewReminderService(reader, repos.User, notificationSvc, clock, cfg.ReminderOffsetDays)

	return &Services{
		Customer:     NewCustomerService(repos.Customer, reader, clock, cfg.DuplicateNameCheck),
		Debt:         NewDebtService(repos.Debt, repos.Customer, clock),
		Payment:      NewPaymentService(repos.Payment, repos.Customer, clock),
		Dashboard:    dashboardSvc,
		Session:      NewSessionService(repos.Customer),
		Notification: notificationSvc,
		Reminder:     reminderSvc,
		Export:       NewExportService(dashboardSvc, clock),
		Job:          NewJobService(worker, reminderSvc),
	}
}

// snapshotReader copies the three ledger collections out of the store
type snapshotReader struct {
	customers repository.CustomerRepository
	debts     repository.DebtRepository
	payments  repository.PaymentRepository
}

func newSnapshotReader(repos *repository.Repositories) *snapshotReader {
	return &snapshotReader{customers: repos.Customer, debts: repos.Debt, payments: repos.Payment}
}

func (r *snapshotReader) snapshot(ctx context.Context) (ledger.Snapshot, error) {
	customers, err := r.customers.FindAll(ctx)
	if err != nil {
		return ledger.Snapshot{}, storeError("load customers", err)
	}
	debts, err := r.debts.FindAll(ctx)
	if err != nil {
		return ledger.Snapshot{}, storeError("load debts", err)
	}
	payments, err := r.payments.FindAll(ctx)
	if err != nil {
		return ledger.Snapshot{}, storeError("load payments", err)
	}
	return ledger.Snapshot{Customers: customers, Debts: debts, Payments: payments}, nil
}
