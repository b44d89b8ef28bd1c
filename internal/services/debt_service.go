package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/validation"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

type DebtService struct {
	repo         repository.DebtRepository
	customerRepo repository.CustomerRepository
	now          Clock
}

// DebtEntry is a debt with the name of its customer read by the same
// call. The name is blank when the customer no longer exists.
type DebtEntry struct {
	models.Debt
	CustomerName string
}

// Response renders the entry for the API
func (e *DebtEntry) Response() models.DebtResponse {
	return e.Debt.ToResponse(e.CustomerName)
}

func NewDebtService(repo repository.DebtRepository, customerRepo repository.CustomerRepository, now Clock) *DebtService {
	return &DebtService{repo: repo, customerRepo: customerRepo, now: now}
}

// FindByID returns one debt
func (s *DebtService) FindByID(ctx context.Context, id string) (*models.Debt, error) {
	debt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("debt "+id, err)
	}
	return debt, nil
}

// Create records a debt attributed to workerID, timestamped now
func (s *DebtService) Create(ctx context.Context, workerID string, in validation.EntryInput) (*DebtEntry, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if err := newValidationError(validation.ValidateDebt(in)); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, storeError("customer "+in.CustomerID, err)
	}

	debt := &models.Debt{
		ID:              uuid.NewString(),
		CustomerID:      in.CustomerID,
		CreatedByUserID: workerID,
		CreatedAt:       s.now(),
		DebtAmount:      in.Amount,
		Note:            in.Note,
	}
	if err := s.repo.Create(ctx, debt); err != nil {
		return nil, storeError("create debt", err)
	}

	logger.ForWorker(workerID).Info("Debt recorded", "debt_id", debt.ID, "customer_id", debt.CustomerID, "amount", debt.DebtAmount.String())
	return &DebtEntry{Debt: *debt, CustomerName: customer.FullName}, nil
}

// Update replaces the amount and note; customer, worker and timestamp are kept
func (s *DebtService) Update(ctx context.Context, id string, in validation.AmountEditInput) (*DebtEntry, error) {
	if err := newValidationError(validation.ValidateAmountEdit(in)); err != nil {
		return nil, err
	}
	debt, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	debt.DebtAmount = in.Amount
	debt.Note = in.Note
	if err := s.repo.Update(ctx, debt); err != nil {
		return nil, storeError("update debt", err)
	}
	return &DebtEntry{Debt: *debt, CustomerName: s.customerName(ctx, debt.CustomerID)}, nil
}

// Delete removes the debt permanently
func (s *DebtService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("debt "+id, err)
	}
	logger.Info("Debt deleted", "debt_id", id)
	return nil
}

func (s *DebtService) customerName(ctx context.Context, customerID string) string {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return ""
	}
	return customer.FullName
}
