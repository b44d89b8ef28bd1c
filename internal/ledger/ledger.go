// Package ledger derives balances, rankings and date-bucketed views from
// customer, debt and payment snapshots.
//
// Every function is pure: inputs are never modified and results are
// recomputed from the given slices on each call.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/models"
)

// Entry is a ledger record carrying an amount against a customer
type Entry interface {
	LedgerAmount() decimal.Decimal
	LedgerCustomerID() string
}

// RankedCustomer pairs a customer with its outstanding balance
type RankedCustomer struct {
	Customer    models.Customer `json:"customer"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// ScopeToWorker keeps the debts created by and the payments received by workerID
func ScopeToWorker(debts []models.Debt, payments []models.Payment, workerID string) ([]models.Debt, []models.Payment) {
	workerDebts := make([]models.Debt, 0, len(debts))
	for _, d := range debts {
		if d.CreatedByUserID == workerID {
			workerDebts = append(workerDebts, d)
		}
	}

	workerPayments := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.ReceivedByUserID == workerID {
			workerPayments = append(workerPayments, p)
		}
	}

	return workerDebts, workerPayments
}

// TotalAmount sums the amounts of records. An empty slice sums to zero.
func TotalAmount[T Entry](records []T) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.LedgerAmount())
	}
	return total
}

func totalFor[T Entry](records []T, customerID string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.LedgerCustomerID() == customerID {
			total = total.Add(r.LedgerAmount())
		}
	}
	return total
}

// OutstandingFor returns debts minus payments for one customer. The result
// is negative when the customer has overpaid.
func OutstandingFor(customerID string, debts []models.Debt, payments []models.Payment) decimal.Decimal {
	return totalFor(debts, customerID).Sub(totalFor(payments, customerID))
}

// outstandingByCustomer computes every customer's balance in one pass
func outstandingByCustomer(debts []models.Debt, payments []models.Payment) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, d := range debts {
		balances[d.CustomerID] = balances[d.CustomerID].Add(d.DebtAmount)
	}
	for _, p := range payments {
		balances[p.CustomerID] = balances[p.CustomerID].Sub(p.Amount)
	}
	return balances
}

// CustomersWithOutstandingDebt returns customers whose balance is strictly
// positive, in input order.
func CustomersWithOutstandingDebt(customers []models.Customer, debts []models.Debt, payments []models.Payment) []models.Customer {
	balances := outstandingByCustomer(debts, payments)

	result := make([]models.Customer, 0)
	for _, c := range customers {
		if balances[c.ID].IsPositive() {
			result = append(result, c)
		}
	}
	return result
}

// RankByOutstanding orders customers with a positive balance from largest to
// smallest and keeps at most limit of them. Equal balances keep the order
// of the customers slice.
func RankByOutstanding(customers []models.Customer, debts []models.Debt, payments []models.Payment, limit int) []RankedCustomer {
	if limit <= 0 {
		return []RankedCustomer{}
	}

	balances := outstandingByCustomer(debts, payments)

	ranked := make([]RankedCustomer, 0)
	for _, c := range customers {
		if outstanding := balances[c.ID]; outstanding.IsPositive() {
			ranked = append(ranked, RankedCustomer{Customer: c, Outstanding: outstanding})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Outstanding.GreaterThan(ranked[j].Outstanding)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TodaysRecords keeps records whose timestamp falls on the calendar day of
// reference, read in reference's location.
func TodaysRecords[T any](records []T, timestampOf func(T) time.Time, reference time.Time) []T {
	result := make([]T, 0)
	for _, r := range records {
		if models.SameDate(timestampOf(r).In(reference.Location()), reference) {
			result = append(result, r)
		}
	}
	return result
}

// DebtCreatedAt is the timestamp field used for debt journals
func DebtCreatedAt(d models.Debt) time.Time { return d.CreatedAt }

// PaymentPaidAt is the timestamp field used for payment journals
func PaymentPaidAt(p models.Payment) time.Time { return p.PaidAt }

// DueOnDate returns customers whose promise-to-pay date is target.
// Customers without a promise never match.
func DueOnDate(customers []models.Customer, target time.Time) []models.Customer {
	result := make([]models.Customer, 0)
	for i := range customers {
		if customers[i].HasPromiseOn(target) {
			result = append(result, customers[i])
		}
	}
	return result
}

// NotificationDate returns today plus offsetDays. Negative offsets are clamped to zero.
func NotificationDate(today time.Time, offsetDays int) time.Time {
	if offsetDays < 0 {
		offsetDays = 0
	}
	return today.AddDate(0, 0, offsetDays)
}
