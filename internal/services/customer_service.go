package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/debtbook-api/internal/ledger"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/validation"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// CustomerProfile is a customer with its full ledger across all workers
type CustomerProfile struct {
	Customer models.Customer
	Ledger   ledger.CustomerLedgerView
}

type CustomerService struct {
	repo      repository.CustomerRepository
	reader    *snapshotReader
	now       Clock
	matchName bool

	// serializes the duplicate check with the insert
	createMu sync.Mutex
}

// NewCustomerService creates a customer service. matchName keeps the
// full-name duplicate rejection on creation.
func NewCustomerService(repo repository.CustomerRepository, reader *snapshotReader, now Clock, matchName bool) *CustomerService {
	return &CustomerService{repo: repo, reader: reader, now: now, matchName: matchName}
}

// List returns the customers matching search with balances scoped to workerID
func (s *CustomerService) List(ctx context.Context, workerID, search string) ([]ledger.CustomerBalance, error) {
	snap, err := s.reader.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	scoped := snap.ForWorker(workerID)
	return ledger.Balances(ledger.SearchCustomers(scoped.Customers, search), scoped.Debts, scoped.Payments), nil
}

// FindByID returns one customer
func (s *CustomerService) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("customer "+id, err)
	}
	return customer, nil
}

// Profile returns the customer and every debt and payment recorded for it
func (s *CustomerService) Profile(ctx context.Context, id string) (*CustomerProfile, error) {
	snap, err := s.reader.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	customer, ok := ledger.FindCustomer(snap.Customers, id)
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return &CustomerProfile{
		Customer: customer,
		Ledger:   ledger.CustomerLedger(id, snap.Debts, snap.Payments),
	}, nil
}

// Create registers a new customer. Uniqueness is enforced here only.
func (s *CustomerService) Create(ctx context.Context, in validation.CustomerInput) (*models.Customer, error) {
	in.Normalize()
	if err := newValidationError(validation.ValidateCustomer(in)); err != nil {
		return nil, err
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeError("load customers", err)
	}
	if err := newValidationError(validation.CheckDuplicateCustomer(existing, in, s.matchName)); err != nil {
		return nil, err
	}

	promise, err := promiseDate(in.PromiseToPayDate)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:               uuid.NewString(),
		FullName:         in.FullName,
		PhoneNumber:      in.PhoneNumber,
		Address:          in.Address,
		Notes:            in.Notes,
		PromiseToPayDate: promise,
		DateRegistered:   models.DateOf(s.now()),
		Blocked:          in.Blocked,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, storeError("create customer", err)
	}

	logger.Info("Customer registered", "customer_id", customer.ID)
	return customer, nil
}

// Update replaces the editable customer fields
func (s *CustomerService) Update(ctx context.Context, id string, in validation.CustomerInput) (*models.Customer, error) {
	in.Normalize()
	if err := newValidationError(validation.ValidateCustomer(in)); err != nil {
		return nil, err
	}

	customer, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	promise, err := promiseDate(in.PromiseToPayDate)
	if err != nil {
		return nil, err
	}

	customer.FullName = in.FullName
	customer.PhoneNumber = in.PhoneNumber
	customer.Address = in.Address
	customer.Notes = in.Notes
	customer.PromiseToPayDate = promise
	customer.Blocked = in.Blocked

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, storeError("update customer", err)
	}
	return customer, nil
}

// ToggleBlock flips the blocked flag
func (s *CustomerService) ToggleBlock(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Blocked = !customer.Blocked
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, storeError("update customer", err)
	}

	logger.Info("Customer block toggled", "customer_id", id, "blocked", customer.Blocked)
	return customer, nil
}

// promiseDate parses an already validated optional date
func promiseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		var result validation.Result
		result.Add("promise_to_pay_date", validation.RuleDate, "Promise-to-pay date must be YYYY-MM-DD")
		return nil, newValidationError(result)
	}
	return &d, nil
}
