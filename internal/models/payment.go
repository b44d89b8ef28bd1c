package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money received from a customer against their debts
type Payment struct {
	ID               string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CustomerID       string          `gorm:"type:varchar(64);not null;index" json:"customer_id"`
	ReceivedByUserID string          `gorm:"type:varchar(64);not null;index" json:"received_by_user_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaidAt           time.Time       `gorm:"not null;index" json:"paid_at"`
	Note             string          `gorm:"type:text" json:"note"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// LedgerAmount returns the paid amount
func (p Payment) LedgerAmount() decimal.Decimal { return p.Amount }

// LedgerCustomerID returns the referenced customer
func (p Payment) LedgerCustomerID() string { return p.CustomerID }

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	ReceivedByUserID string          `json:"received_by_user_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaidAt           time.Time       `json:"paid_at"`
	Note             string          `json:"note"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse(customerName string) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		CustomerID:       p.CustomerID,
		CustomerName:     customerName,
		ReceivedByUserID: p.ReceivedByUserID,
		Amount:           p.Amount,
		PaidAt:           p.PaidAt,
		Note:             p.Note,
	}
}
