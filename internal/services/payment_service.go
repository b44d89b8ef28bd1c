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

type PaymentService struct {
	repo         repository.PaymentRepository
	customerRepo repository.CustomerRepository
	now          Clock
}

// PaymentEntry is a payment with the name of its customer read by the same
// call. The name is blank when the customer no longer exists.
type PaymentEntry struct {
	models.Payment
	CustomerName string
}

// Response renders the entry for the API
func (e *PaymentEntry) Response() models.PaymentResponse {
	return e.Payment.ToResponse(e.CustomerName)
}

func NewPaymentService(repo repository.PaymentRepository, customerRepo repository.CustomerRepository, now Clock) *PaymentService {
	return &PaymentService{repo: repo, customerRepo: customerRepo, now: now}
}

// FindByID returns one payment
func (s *PaymentService) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("payment "+id, err)
	}
	return payment, nil
}

// Create records a payment received by workerID, timestamped now. Payments
// larger than the outstanding balance are accepted.
func (s *PaymentService) Create(ctx context.Context, workerID string, in validation.EntryInput) (*PaymentEntry, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if err := newValidationError(validation.ValidatePayment(in)); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, storeError("customer "+in.CustomerID, err)
	}

	payment := &models.Payment{
		ID:               uuid.NewString(),
		CustomerID:       in.CustomerID,
		ReceivedByUserID: workerID,
		Amount:           in.Amount,
		PaidAt:           s.now(),
		Note:             in.Note,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, storeError("create payment", err)
	}

	logger.ForWorker(workerID).Info("Payment recorded", "payment_id", payment.ID, "customer_id", payment.CustomerID, "amount", payment.Amount.String())
	return &PaymentEntry{Payment: *payment, CustomerName: customer.FullName}, nil
}

// Update replaces the amount and note; customer, worker and timestamp are kept
func (s *PaymentService) Update(ctx context.Context, id string, in validation.AmountEditInput) (*PaymentEntry, error) {
	if err := newValidationError(validation.ValidateAmountEdit(in)); err != nil {
		return nil, err
	}
	payment, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payment.Amount = in.Amount
	payment.Note = in.Note
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, storeError("update payment", err)
	}
	return &PaymentEntry{Payment: *payment, CustomerName: s.customerName(ctx, payment.CustomerID)}, nil
}

// Delete removes the payment permanently
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("payment "+id, err)
	}
	logger.Info("Payment deleted", "payment_id", id)
	return nil
}

func (s *PaymentService) customerName(ctx context.Context, customerID string) string {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return ""
	}
	return customer.FullName
}
