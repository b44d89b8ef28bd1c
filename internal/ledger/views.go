package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/models"
)

// Snapshot is a consistent copy of the three collections taken from the store
type Snapshot struct {
	Customers []models.Customer
	Debts     []models.Debt
	Payments  []models.Payment
}

// ForWorker returns a snapshot whose debts and payments are scoped to workerID.
// Customers are left untouched.
func (s Snapshot) ForWorker(workerID string) Snapshot {
	debts, payments := ScopeToWorker(s.Debts, s.Payments, workerID)
	return Snapshot{Customers: s.Customers, Debts: debts, Payments: payments}
}

// CustomerBalance is one row of the customer list
type CustomerBalance struct {
	Customer    models.Customer `json:"customer"`
	TotalDebt   decimal.Decimal `json:"total_debt"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Balances computes debt, paid and outstanding totals for every customer, in input order
func Balances(customers []models.Customer, debts []models.Debt, payments []models.Payment) []CustomerBalance {
	debtTotals := make(map[string]decimal.Decimal)
	for _, d := range debts {
		debtTotals[d.CustomerID] = debtTotals[d.CustomerID].Add(d.DebtAmount)
	}
	paidTotals := make(map[string]decimal.Decimal)
	for _, p := range payments {
		paidTotals[p.CustomerID] = paidTotals[p.CustomerID].Add(p.Amount)
	}

	rows := make([]CustomerBalance, 0, len(customers))
	for _, c := range customers {
		totalDebt := decimal.Zero.Add(debtTotals[c.ID])
		totalPaid := decimal.Zero.Add(paidTotals[c.ID])
		rows = append(rows, CustomerBalance{
			Customer:    c,
			TotalDebt:   totalDebt,
			TotalPaid:   totalPaid,
			Outstanding: totalDebt.Sub(totalPaid),
		})
	}
	return rows
}

// UnassignedBalance totals the debts and payments whose customer is not in
// customers. Adding it to the Balances rows gives the snapshot-wide totals.
func UnassignedBalance(customers []models.Customer, debts []models.Debt, payments []models.Payment) CustomerBalance {
	known := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		known[c.ID] = struct{}{}
	}
	row := CustomerBalance{TotalDebt: decimal.Zero, TotalPaid: decimal.Zero}
	for _, d := range debts {
		if _, ok := known[d.CustomerID]; !ok {
			row.TotalDebt = row.TotalDebt.Add(d.DebtAmount)
		}
	}
	for _, p := range payments {
		if _, ok := known[p.CustomerID]; !ok {
			row.TotalPaid = row.TotalPaid.Add(p.Amount)
		}
	}
	row.Outstanding = row.TotalDebt.Sub(row.TotalPaid)
	return row
}

// CustomerLedgerView is the full debt and payment history of one customer
type CustomerLedgerView struct {
	CustomerID  string           `json:"customer_id"`
	Debts       []models.Debt    `json:"debts"`
	Payments    []models.Payment `json:"payments"`
	TotalDebt   decimal.Decimal  `json:"total_debt"`
	TotalPaid   decimal.Decimal  `json:"total_paid"`
	Outstanding decimal.Decimal  `json:"outstanding"`
}

// CustomerLedger collects a customer's debts and payments and their totals.
// Pass unscoped collections for the all-workers history.
func CustomerLedger(customerID string, debts []models.Debt, payments []models.Payment) CustomerLedgerView {
	view := CustomerLedgerView{
		CustomerID: customerID,
		Debts:      make([]models.Debt, 0),
		Payments:   make([]models.Payment, 0),
	}
	for _, d := range debts {
		if d.CustomerID == customerID {
			view.Debts = append(view.Debts, d)
		}
	}
	for _, p := range payments {
		if p.CustomerID == customerID {
			view.Payments = append(view.Payments, p)
		}
	}
	view.TotalDebt = TotalAmount(view.Debts)
	view.TotalPaid = TotalAmount(view.Payments)
	view.Outstanding = view.TotalDebt.Sub(view.TotalPaid)
	return view
}

// DashboardOptions selects the worker and the adjustable parts of the dashboard
type DashboardOptions struct {
	WorkerID           string
	Today              time.Time
	TopLimit           int
	NotificationOffset int
}

// Dashboard holds every figure shown on a worker's dashboard
type Dashboard struct {
	WorkerID              string            `json:"worker_id"`
	TotalDebts            decimal.Decimal   `json:"total_debts"`
	TotalPayments         decimal.Decimal   `json:"total_payments"`
	Outstanding           decimal.Decimal   `json:"outstanding"`
	CustomerCount         int               `json:"customer_count"`
	CustomersWithDebt     int               `json:"customers_with_debt"`
	TopCustomers          []RankedCustomer  `json:"top_customers"`
	TodayDebts            []models.Debt     `json:"today_debts"`
	TodayPayments         []models.Payment  `json:"today_payments"`
	NotificationDate      string            `json:"notification_date"`
	NotificationCustomers []models.Customer `json:"notification_customers"`
	// CustomerNames resolves the customers of today's records from the same
	// snapshot. Unknown ids are absent.
	CustomerNames map[string]string `json:"-"`
}

// BuildDashboard scopes the snapshot to the worker and derives the dashboard from it
func BuildDashboard(snap Snapshot, opts DashboardOptions) Dashboard {
	scoped := snap.ForWorker(opts.WorkerID)

	totalDebts := TotalAmount(scoped.Debts)
	totalPayments := TotalAmount(scoped.Payments)
	withDebt := CustomersWithOutstandingDebt(scoped.Customers, scoped.Debts, scoped.Payments)
	notifyOn := NotificationDate(opts.Today, opts.NotificationOffset)
	todayDebts := TodaysRecords(scoped.Debts, DebtCreatedAt, opts.Today)
	todayPayments := TodaysRecords(scoped.Payments, PaymentPaidAt, opts.Today)

	names := make(map[string]string)
	for _, d := range todayDebts {
		if c, ok := FindCustomer(snap.Customers, d.CustomerID); ok {
			names[c.ID] = c.FullName
		}
	}
	for _, p := range todayPayments {
		if c, ok := FindCustomer(snap.Customers, p.CustomerID); ok {
			names[c.ID] = c.FullName
		}
	}

	return Dashboard{
		WorkerID:              opts.WorkerID,
		TotalDebts:            totalDebts,
		TotalPayments:         totalPayments,
		Outstanding:           totalDebts.Sub(totalPayments),
		CustomerCount:         len(scoped.Customers),
		CustomersWithDebt:     len(withDebt),
		TopCustomers:          RankByOutstanding(scoped.Customers, scoped.Debts, scoped.Payments, opts.TopLimit),
		TodayDebts:            todayDebts,
		TodayPayments:         todayPayments,
		NotificationDate:      notifyOn.Format(models.DateLayout),
		NotificationCustomers: DueOnDate(withDebt, notifyOn),
		CustomerNames:         names,
	}
}

// FindCustomer looks a customer up by id. A missing id is not an error.
func FindCustomer(customers []models.Customer, id string) (models.Customer, bool) {
	for _, c := range customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// CustomerName returns the customer's full name, or "" for an unknown id
func CustomerName(customers []models.Customer, id string) string {
	c, _ := FindCustomer(customers, id)
	return c.FullName
}

// SearchCustomers matches term against name, address and notes
// case-insensitively, and against the phone number as a substring.
// An empty term matches every customer.
func SearchCustomers(customers []models.Customer, term string) []models.Customer {
	result := make([]models.Customer, 0, len(customers))
	needle := strings.ToLower(strings.TrimSpace(term))
	for _, c := range customers {
		if needle == "" ||
			strings.Contains(strings.ToLower(c.FullName), needle) ||
			strings.Contains(c.PhoneNumber, needle) ||
			strings.Contains(strings.ToLower(c.Address), needle) ||
			strings.Contains(strings.ToLower(c.Notes), needle) {
			result = append(result, c)
		}
	}
	return result
}
