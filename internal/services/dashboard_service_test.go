package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDashboardServiceSeededData(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	today := time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)
	svc := NewDashboardService(env.reader, fixedClock(today), 3)

	t.Run("defaults", func(t *testing.T) {
		view, err := svc.Dashboard(ctx, workerID, nil, nil)
		require.NoError(t, err)
		assert.True(t, view.TotalDebts.Equal(decimal.NewFromInt(900)))
		assert.True(t, view.TotalPayments.Equal(decimal.NewFromInt(280)))
		assert.True(t, view.Outstanding.Equal(decimal.NewFromInt(620)))
		assert.Equal(t, 4, view.CustomerCount)
		assert.Equal(t, 2, view.CustomersWithDebt)
		require.Len(t, view.TopCustomers, 2)
		assert.Equal(t, "3", view.TopCustomers[0].Customer.ID)
		assert.Equal(t, "1", view.TopCustomers[1].Customer.ID)
		require.Len(t, view.TodayDebts, 1)
		assert.Equal(t, "4", view.TodayDebts[0].ID)
		assert.Empty(t, view.TodayPayments)
		assert.Equal(t, "2025-01-15", view.NotificationDate)
		assert.Empty(t, view.NotificationCustomers)
	})

	t.Run("top limit and notification offset", func(t *testing.T) {
		view, err := svc.Dashboard(ctx, workerID, intPtr(1), intPtr(5))
		require.NoError(t, err)
		require.Len(t, view.TopCustomers, 1)
		assert.Equal(t, "3", view.TopCustomers[0].Customer.ID)
		assert.Equal(t, "2025-01-20", view.NotificationDate)
		require.Len(t, view.NotificationCustomers, 1)
		assert.Equal(t, "1", view.NotificationCustomers[0].ID)
	})

	t.Run("zero limit and negative offset", func(t *testing.T) {
		view, err := svc.Dashboard(ctx, workerID, intPtr(0), intPtr(-2))
		require.NoError(t, err)
		assert.Empty(t, view.TopCustomers)
		assert.Equal(t, "2025-01-15", view.NotificationDate)
	})

	t.Run("settled customers are never due", func(t *testing.T) {
		// customer 2 promised 2025-01-18 but has paid in full
		due, target, err := svc.DueCustomers(ctx, workerID, 3)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-18", target.Format("2006-01-02"))
		assert.Empty(t, due)
	})

	t.Run("other workers see nothing", func(t *testing.T) {
		view, err := svc.Dashboard(ctx, "2", nil, nil)
		require.NoError(t, err)
		assert.True(t, view.TotalDebts.IsZero())
		assert.Zero(t, view.CustomersWithDebt)
		assert.Equal(t, 4, view.CustomerCount)
	})
}
