package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/ledger"
	"github.com/sjperalta/debtbook-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(t, true)
	svc := NewDebtService(env.repos.Debt, env.repos.Customer, fixedClock(now))

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			_, err := svc.Create(ctx, workerID, validation.EntryInput{CustomerID: "1", Amount: amount})
			assert.ErrorIs(t, err, ErrValidation)
		}
	})

	t.Run("rejects unknown customers", func(t *testing.T) {
		_, err := svc.Create(ctx, workerID, validation.EntryInput{CustomerID: "404", Amount: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	debt, err := svc.Create(ctx, workerID, validation.EntryInput{CustomerID: " 4 ", Amount: decimal.RequireFromString("12.50"), Note: "syrup"})
	require.NoError(t, err)
	assert.Equal(t, "4", debt.CustomerID)
	assert.Equal(t, "Abdullah Salem", debt.CustomerName)
	assert.Equal(t, "Abdullah Salem", debt.Response().CustomerName)
	assert.Equal(t, workerID, debt.CreatedByUserID)
	assert.True(t, debt.CreatedAt.Equal(now))

	t.Run("edit replaces amount and note only", func(t *testing.T) {
		edited, err := svc.Update(ctx, debt.ID, validation.AmountEditInput{Amount: decimal.NewFromInt(20), Note: "corrected"})
		require.NoError(t, err)
		assert.True(t, edited.DebtAmount.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, "corrected", edited.Note)
		assert.Equal(t, "Abdullah Salem", edited.CustomerName)
		assert.Equal(t, "4", edited.CustomerID)
		assert.Equal(t, workerID, edited.CreatedByUserID)
		assert.True(t, edited.CreatedAt.Equal(now))

		_, err = svc.Update(ctx, debt.ID, validation.AmountEditInput{Amount: decimal.Zero})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("delete is permanent", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, debt.ID))
		_, err := svc.FindByID(ctx, debt.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, debt.ID), ErrNotFound)
	})
}

func TestPaymentServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(t, true)
	svc := NewPaymentService(env.repos.Payment, env.repos.Customer, fixedClock(now))

	payment, err := svc.Create(ctx, workerID, validation.EntryInput{CustomerID: "3", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	assert.Equal(t, workerID, payment.ReceivedByUserID)
	assert.Equal(t, "Fatima Hassan", payment.CustomerName)
	assert.True(t, payment.PaidAt.Equal(now))

	// overpayment drives the balance negative and drops the customer from the debt views
	snap, err := env.reader.snapshot(ctx)
	require.NoError(t, err)
	scoped := snap.ForWorker(workerID)
	assert.True(t, ledger.OutstandingFor("3", scoped.Debts, scoped.Payments).Equal(decimal.NewFromInt(-180)))
	for _, c := range ledger.CustomersWithOutstandingDebt(scoped.Customers, scoped.Debts, scoped.Payments) {
		assert.NotEqual(t, "3", c.ID)
	}

	edited, err := svc.Update(ctx, payment.ID, validation.AmountEditInput{Amount: decimal.NewFromInt(320)})
	require.NoError(t, err)
	assert.True(t, edited.Amount.Equal(decimal.NewFromInt(320)))
	assert.Equal(t, "3", edited.CustomerID)

	require.NoError(t, svc.Delete(ctx, payment.ID))
	assert.ErrorIs(t, svc.Delete(ctx, payment.ID), ErrNotFound)
}

func TestRecordDebtThenSettle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	env := newTestEnv(t, false)
	customers := NewCustomerService(env.repos.Customer, env.reader, fixedClock(now), true)
	debts := NewDebtService(env.repos.Debt, env.repos.Customer, fixedClock(now))
	payments := NewPaymentService(env.repos.Payment, env.repos.Customer, fixedClock(now))
	dashboard := NewDashboardService(env.reader, fixedClock(now), 3)

	customer, err := customers.Create(ctx, validation.CustomerInput{FullName: "Khalid", PhoneNumber: "+966500000001"})
	require.NoError(t, err)

	_, err = debts.Create(ctx, workerID, validation.EntryInput{CustomerID: customer.ID, Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)

	view, err := dashboard.Dashboard(ctx, workerID, nil, nil)
	require.NoError(t, err)
	assert.True(t, view.Outstanding.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, view.CustomersWithDebt)
	assert.Len(t, view.TodayDebts, 1)

	_, err = payments.Create(ctx, workerID, validation.EntryInput{CustomerID: customer.ID, Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)

	view, err = dashboard.Dashboard(ctx, workerID, nil, nil)
	require.NoError(t, err)
	assert.True(t, view.Outstanding.IsZero())
	assert.Zero(t, view.CustomersWithDebt)
	assert.Empty(t, view.TopCustomers)
	assert.Len(t, view.TodayPayments, 1)
}
