package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is an amount a customer owes, attributed to the worker who recorded it
type Debt struct {
	ID              string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CustomerID      string          `gorm:"type:varchar(64);not null;index" json:"customer_id"`
	CreatedByUserID string          `gorm:"type:varchar(64);not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	DebtAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"debt_amount"`
	Note            string          `gorm:"type:text" json:"note"`
}

// TableName specifies the table name for Debt
func (Debt) TableName() string {
	return "debts"
}

// LedgerAmount returns the debt amount
func (d Debt) LedgerAmount() decimal.Decimal { return d.DebtAmount }

// LedgerCustomerID returns the referenced customer
func (d Debt) LedgerCustomerID() string { return d.CustomerID }

// DebtResponse is the JSON response format for debts
type DebtResponse struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CreatedByUserID string          `json:"created_by_user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	DebtAmount      decimal.Decimal `json:"debt_amount"`
	Note            string          `json:"note"`
}

// ToResponse converts Debt to DebtResponse. customerName is blank when the
// referenced customer no longer exists.
func (d *Debt) ToResponse(customerName string) DebtResponse {
	return DebtResponse{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		CustomerName:    customerName,
		CreatedByUserID: d.CreatedByUserID,
		CreatedAt:       d.CreatedAt,
		DebtAmount:      d.DebtAmount,
		Note:            d.Note,
	}
}
