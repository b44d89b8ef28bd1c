package services

import (
	"context"
	"time"

	"github.com/sjperalta/debtbook-api/internal/ledger"
	"github.com/sjperalta/debtbook-api/internal/models"
)

// DashboardService derives the worker-scoped read views. Nothing is cached;
// every call aggregates a fresh snapshot.
type DashboardService struct {
	reader     *snapshotReader
	now        Clock
	defaultTop int
}

func NewDashboardService(reader *snapshotReader, now Clock, defaultTop int) *DashboardService {
	return &DashboardService{reader: reader, now: now, defaultTop: defaultTop}
}

// DefaultTop is the ranking limit used when the caller gives none
func (s *DashboardService) DefaultTop() int {
	return s.defaultTop
}

// Dashboard builds the dashboard of workerID. top and notificationOffset
// fall back to the configured ranking limit and today when nil.
func (s *DashboardService) Dashboard(ctx context.Context, workerID string, top, notificationOffset *int) (ledger.Dashboard, error) {
	snap, err := s.reader.snapshot(ctx)
	if err != nil {
		return ledger.Dashboard{}, err
	}
	opts := ledger.DashboardOptions{
		WorkerID: workerID,
		Today:    s.now(),
		TopLimit: s.defaultTop,
	}
	if top != nil {
		opts.TopLimit = *top
	}
	if notificationOffset != nil {
		opts.NotificationOffset = *notificationOffset
	}
	return ledger.BuildDashboard(snap, opts), nil
}

// DueCustomers lists the customers with outstanding debt toward workerID
// whose promise-to-pay date is today plus offsetDays.
func (s *DashboardService) DueCustomers(ctx context.Context, workerID string, offsetDays int) ([]ledger.CustomerBalance, time.Time, error) {
	snap, err := s.reader.snapshot(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	target := ledger.NotificationDate(s.now(), offsetDays)
	return dueBalances(snap.ForWorker(workerID), target), target, nil
}

// BalanceReport is every customer's balance toward a worker plus the
// records whose customer no longer exists
type BalanceReport struct {
	Rows       []ledger.CustomerBalance
	Unassigned ledger.CustomerBalance
}

// HasUnassigned reports whether any record points at a missing customer
func (r BalanceReport) HasUnassigned() bool {
	return !r.Unassigned.TotalDebt.IsZero() || !r.Unassigned.TotalPaid.IsZero()
}

// Report returns the balances of workerID from one snapshot. Its totals
// match the dashboard's.
func (s *DashboardService) Report(ctx context.Context, workerID string) (BalanceReport, error) {
	snap, err := s.reader.snapshot(ctx)
	if err != nil {
		return BalanceReport{}, err
	}
	scoped := snap.ForWorker(workerID)
	return BalanceReport{
		Rows:       ledger.Balances(scoped.Customers, scoped.Debts, scoped.Payments),
		Unassigned: ledger.UnassignedBalance(scoped.Customers, scoped.Debts, scoped.Payments),
	}, nil
}

func dueBalances(scoped ledger.Snapshot, target time.Time) []ledger.CustomerBalance {
	withDebt := ledger.CustomersWithOutstandingDebt(scoped.Customers, scoped.Debts, scoped.Payments)
	due := ledger.DueOnDate(withDebt, target)
	return ledger.Balances(due, scoped.Debts, scoped.Payments)
}

// formatDate renders a calendar date for messages and file names
func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}
