package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 17, 23, 30, 0, 0, time.FixedZone("AST", 3*3600))

	tests := []struct {
		name        string
		matchName   bool
		input       validation.CustomerInput
		expectErr   error
		expectField string
	}{
		{
			name:  "valid customer",
			input: validation.CustomerInput{FullName: " Noura Saad ", PhoneNumber: "+966505555555", PromiseToPayDate: "2025-02-01"},
		},
		{
			name:        "missing phone",
			input:       validation.CustomerInput{FullName: "Noura Saad", PhoneNumber: "   "},
			expectErr:   ErrValidation,
			expectField: "phone_number",
		},
		{
			name:        "bad promise date",
			input:       validation.CustomerInput{FullName: "Noura Saad", PhoneNumber: "+966505555555", PromiseToPayDate: "01/02/2025"},
			expectErr:   ErrValidation,
			expectField: "promise_to_pay_date",
		},
		{
			name:        "duplicate phone",
			input:       validation.CustomerInput{FullName: "Someone Else", PhoneNumber: "+966501111111"},
			expectErr:   ErrDuplicate,
			expectField: "phone_number",
		},
		{
			name:        "duplicate name when name matching is on",
			matchName:   true,
			input:       validation.CustomerInput{FullName: "Sara Ahmed", PhoneNumber: "+966509999999"},
			expectErr:   ErrDuplicate,
			expectField: "full_name",
		},
		{
			name:  "duplicate name allowed when name matching is off",
			input: validation.CustomerInput{FullName: "Sara Ahmed", PhoneNumber: "+966509999999"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, true)
			svc := NewCustomerService(env.repos.Customer, env.reader, fixedClock(now), tt.matchName)

			customer, err := svc.Create(ctx, tt.input)
			if tt.expectErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectErr)
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.expectField, vErr.Result.Violations[0].Field)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, customer.ID)
			assert.Equal(t, "2025-01-17", customer.DateRegistered.Format("2006-01-02"))
			assert.False(t, customer.Blocked)

			all, err := env.repos.Customer.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 5)
			assert.Equal(t, customer.ID, all[4].ID)
		})
	}
}

func TestCustomerServiceConcurrentCreateKeepsPhoneUnique(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	svc := NewCustomerService(env.repos.Customer, env.reader, fixedClock(time.Now()), true)

	const callers = 200
	var created, duplicates atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Create(ctx, validation.CustomerInput{FullName: "Same", PhoneNumber: "+1"})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrDuplicate):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), created.Load())
	assert.Equal(t, int64(callers-1), duplicates.Load())

	count, err := env.repos.Customer.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCustomerServiceCreateTrimsInput(t *testing.T) {
	env := newTestEnv(t, false)
	svc := NewCustomerService(env.repos.Customer, env.reader, fixedClock(time.Now()), true)

	customer, err := svc.Create(context.Background(), validation.CustomerInput{FullName: "  Noura  ", PhoneNumber: " 123 "})
	require.NoError(t, err)
	assert.Equal(t, "Noura", customer.FullName)
	assert.Equal(t, "123", customer.PhoneNumber)
	assert.Nil(t, customer.PromiseToPayDate)
}

func TestCustomerServiceUpdateSkipsDuplicateCheck(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	svc := NewCustomerService(env.repos.Customer, env.reader, fixedClock(time.Now()), true)

	updated, err := svc.Update(ctx, "2", validation.CustomerInput{
		FullName:         "Mohammed Ali",
		PhoneNumber:      "+966501111111",
		PromiseToPayDate: "2025-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "+966501111111", updated.PhoneNumber)
	assert.Equal(t, "2025-03-01", updated.PromiseToPayDate.Format("2006-01-02"))
	assert.Equal(t, "2024-11-15", updated.DateRegistered.Format("2006-01-02"))

	_, err = svc.Update(ctx, "404", validation.CustomerInput{FullName: "x", PhoneNumber: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerServiceToggleBlock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	svc := NewCustomerService(env.repos.Customer, env.reader, fixedClock(time.Now()), true)

	c, err := svc.ToggleBlock(ctx, "3")
	require.NoError(t, err)
	assert.True(t, c.Blocked)

	c, err = svc.ToggleBlock(ctx, "3")
	require.NoError(t, err)
	assert.False(t, c.Blocked)

	_, err = svc.ToggleBlock(ctx, "404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerServiceListAndProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	svc := NewCustomerService(env.repos.Customer, env.reader, fixedClock(time.Now()), true)

	t.Run("list is scoped to the worker", func(t *testing.T) {
		rows, err := svc.List(ctx, workerID, "")
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.True(t, rows[0].Outstanding.Equal(decimal.NewFromInt(300)))
		assert.True(t, rows[1].Outstanding.IsZero())
		assert.True(t, rows[3].Outstanding.IsZero())

		rows, err = svc.List(ctx, "other-worker", "")
		require.NoError(t, err)
		for _, r := range rows {
			assert.True(t, r.Outstanding.IsZero())
		}
	})

	t.Run("list filters by search term", func(t *testing.T) {
		rows, err := svc.List(ctx, workerID, "fatima")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "3", rows[0].Customer.ID)
	})

	t.Run("profile includes every worker's records", func(t *testing.T) {
		profile, err := svc.Profile(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Sara Ahmed", profile.Customer.FullName)
		assert.Len(t, profile.Ledger.Debts, 2)
		assert.Len(t, profile.Ledger.Payments, 1)
		assert.True(t, profile.Ledger.Outstanding.Equal(decimal.NewFromInt(300)))
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := svc.Profile(ctx, "404")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
