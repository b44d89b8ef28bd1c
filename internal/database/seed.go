package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// SeedData is the static dataset loaded into an empty store
type SeedData struct {
	Users     []models.User
	Customers []models.Customer
	Debts     []models.Debt
	Payments  []models.Payment
}

func date(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func timestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultSeed returns the bundled dataset: one worker, four customers, four
// debts and two payments.
func DefaultSeed() SeedData {
	// CreatedAt fixes registration order independently of DateRegistered.
	registered := timestamp("2024-01-15T00:00:00Z")
	customer := func(i int, c models.Customer) models.Customer {
		c.CreatedAt = registered.Add(time.Duration(i) * time.Second)
		return c
	}

	return SeedData{
		Users: []models.User{{
			ID:        "1",
			Username:  "ahmed_worker",
			Role:      models.RoleWorker,
			FullName:  "Ahmed Mohammed",
			Phone:     "+966501234567",
			Active:    true,
			CreatedAt: date("2024-01-15"),
		}},
		Customers: []models.Customer{
			customer(0, models.Customer{
				ID:               "1",
				FullName:         "Sara Ahmed",
				PhoneNumber:      "+966501111111",
				Address:          "Riyadh, Al Nakheel, King Fahd Road",
				Notes:            "Preferred customer",
				PromiseToPayDate: datePtr("2025-01-20"),
				DateRegistered:   date("2024-12-01"),
			}),
			customer(1, models.Customer{
				ID:               "2",
				FullName:         "Mohammed Ali",
				PhoneNumber:      "+966502222222",
				Address:          "Jeddah, Al Safa",
				PromiseToPayDate: datePtr("2025-01-18"),
				DateRegistered:   date("2024-11-15"),
			}),
			customer(2, models.Customer{
				ID:             "3",
				FullName:       "Fatima Hassan",
				PhoneNumber:    "+966503333333",
				Address:        "Dammam, Al Shati",
				Notes:          "Pays regularly",
				DateRegistered: date("2024-10-20"),
			}),
			customer(3, models.Customer{
				ID:               "4",
				FullName:         "Abdullah Salem",
				PhoneNumber:      "+966504444444",
				Address:          "Taif, Al Wardatain",
				PromiseToPayDate: datePtr("2025-01-25"),
				DateRegistered:   date("2024-09-10"),
			}),
		},
		Debts: []models.Debt{
			{ID: "1", CustomerID: "1", CreatedByUserID: "1", CreatedAt: timestamp("2025-01-10T10:30:00Z"), DebtAmount: decimal.NewFromInt(250), Note: "Blood pressure medication"},
			{ID: "2", CustomerID: "1", CreatedByUserID: "1", CreatedAt: timestamp("2025-01-12T14:15:00Z"), DebtAmount: decimal.NewFromInt(150), Note: "Vitamins"},
			{ID: "3", CustomerID: "2", CreatedByUserID: "1", CreatedAt: timestamp("2025-01-08T09:45:00Z"), DebtAmount: decimal.NewFromInt(180), Note: "Painkillers"},
			{ID: "4", CustomerID: "3", CreatedByUserID: "1", CreatedAt: timestamp("2025-01-15T16:20:00Z"), DebtAmount: decimal.NewFromInt(320), Note: "Chronic medication"},
		},
		Payments: []models.Payment{
			{ID: "1", CustomerID: "1", ReceivedByUserID: "1", Amount: decimal.NewFromInt(100), PaidAt: timestamp("2025-01-14T11:00:00Z"), Note: "Partial payment"},
			{ID: "2", CustomerID: "2", ReceivedByUserID: "1", Amount: decimal.NewFromInt(180), PaidAt: timestamp("2025-01-16T13:30:00Z"), Note: "Paid in full"},
		},
	}
}

// Seed loads data into the store when it holds no customers yet
func Seed(ctx context.Context, repos *repository.Repositories, data SeedData) error {
	count, err := repos.Customer.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}
	if count > 0 {
		logger.Info("Seed skipped, store already populated", "customers", count)
		return nil
	}

	for i := range data.Users {
		if err := repos.User.Create(ctx, &data.Users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", data.Users[i].ID, err)
		}
	}
	for i := range data.Customers {
		if err := repos.Customer.Create(ctx, &data.Customers[i]); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", data.Customers[i].ID, err)
		}
	}
	for i := range data.Debts {
		if err := repos.Debt.Create(ctx, &data.Debts[i]); err != nil {
			return fmt.Errorf("failed to seed debt %s: %w", data.Debts[i].ID, err)
		}
	}
	for i := range data.Payments {
		if err := repos.Payment.Create(ctx, &data.Payments[i]); err != nil {
			return fmt.Errorf("failed to seed payment %s: %w", data.Payments[i].ID, err)
		}
	}

	logger.Info("Seed data loaded",
		"users", len(data.Users),
		"customers", len(data.Customers),
		"debts", len(data.Debts),
		"payments", len(data.Payments),
	)
	return nil
}
