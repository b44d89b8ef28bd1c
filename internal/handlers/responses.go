package handlers

import (
	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/ledger"
	"github.com/sjperalta/debtbook-api/internal/models"
)

type balanceResponse struct {
	Customer    models.CustomerResponse `json:"customer"`
	TotalDebt   decimal.Decimal         `json:"total_debt"`
	TotalPaid   decimal.Decimal         `json:"total_paid"`
	Outstanding decimal.Decimal         `json:"outstanding"`
}

func toBalanceResponses(balances []ledger.CustomerBalance) []balanceResponse {
	out := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, balanceResponse{
			Customer:    b.Customer.ToResponse(),
			TotalDebt:   b.TotalDebt,
			TotalPaid:   b.TotalPaid,
			Outstanding: b.Outstanding,
		})
	}
	return out
}

type rankedResponse struct {
	Customer    models.CustomerResponse `json:"customer"`
	Outstanding decimal.Decimal         `json:"outstanding"`
}

type dashboardResponse struct {
	WorkerID              string                    `json:"worker_id"`
	TotalDebts            decimal.Decimal           `json:"total_debts"`
	TotalPayments         decimal.Decimal           `json:"total_payments"`
	Outstanding           decimal.Decimal           `json:"outstanding"`
	CustomerCount         int                       `json:"customer_count"`
	CustomersWithDebt     int                       `json:"customers_with_debt"`
	TopCustomers          []rankedResponse          `json:"top_customers"`
	TodayDebts            []models.DebtResponse     `json:"today_debts"`
	TodayPayments         []models.PaymentResponse  `json:"today_payments"`
	NotificationDate      string                    `json:"notification_date"`
	NotificationCustomers []models.CustomerResponse `json:"notification_customers"`
}

func toDashboardResponse(d ledger.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		WorkerID:              d.WorkerID,
		TotalDebts:            d.TotalDebts,
		TotalPayments:         d.TotalPayments,
		Outstanding:           d.Outstanding,
		CustomerCount:         d.CustomerCount,
		CustomersWithDebt:     d.CustomersWithDebt,
		TopCustomers:          make([]rankedResponse, 0, len(d.TopCustomers)),
		TodayDebts:            make([]models.DebtResponse, 0, len(d.TodayDebts)),
		TodayPayments:         make([]models.PaymentResponse, 0, len(d.TodayPayments)),
		NotificationDate:      d.NotificationDate,
		NotificationCustomers: toCustomerResponses(d.NotificationCustomers),
	}
	for _, r := range d.TopCustomers {
		resp.TopCustomers = append(resp.TopCustomers, rankedResponse{Customer: r.Customer.ToResponse(), Outstanding: r.Outstanding})
	}
	for _, debt := range d.TodayDebts {
		resp.TodayDebts = append(resp.TodayDebts, debt.ToResponse(d.CustomerNames[debt.CustomerID]))
	}
	for _, p := range d.TodayPayments {
		resp.TodayPayments = append(resp.TodayPayments, p.ToResponse(d.CustomerNames[p.CustomerID]))
	}
	return resp
}

func toCustomerResponses(customers []models.Customer) []models.CustomerResponse {
	out := make([]models.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, customers[i].ToResponse())
	}
	return out
}

type profileResponse struct {
	Customer    models.CustomerResponse  `json:"customer"`
	Debts       []models.DebtResponse    `json:"debts"`
	Payments    []models.PaymentResponse `json:"payments"`
	TotalDebt   decimal.Decimal          `json:"total_debt"`
	TotalPaid   decimal.Decimal          `json:"total_paid"`
	Outstanding decimal.Decimal          `json:"outstanding"`
}

func toProfileResponse(customer models.Customer, view ledger.CustomerLedgerView) profileResponse {
	resp := profileResponse{
		Customer:    customer.ToResponse(),
		Debts:       make([]models.DebtResponse, 0, len(view.Debts)),
		Payments:    make([]models.PaymentResponse, 0, len(view.Payments)),
		TotalDebt:   view.TotalDebt,
		TotalPaid:   view.TotalPaid,
		Outstanding: view.Outstanding,
	}
	for _, d := range view.Debts {
		resp.Debts = append(resp.Debts, d.ToResponse(customer.FullName))
	}
	for _, p := range view.Payments {
		resp.Payments = append(resp.Payments, p.ToResponse(customer.FullName))
	}
	return resp
}
