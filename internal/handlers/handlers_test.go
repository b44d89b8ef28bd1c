package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/database"
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewMemoryRepositories(repository.NewMemoryStore())
	require.NoError(t, database.Seed(context.Background(), repos, database.DefaultSeed()))

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{
		CurrentUserID:       "1",
		TopCustomersDefault: 3,
		DuplicateNameCheck:  true,
		ReminderOffsetDays:  1,
		Location:            time.UTC,
	}
	svcs := services.NewServicesWithClock(repos, worker, cfg, func() time.Time { return testNow })

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/health", NewHealthHandler().Index)
	NewHandlers(svcs).Register(v1.Group("", middleware.CurrentUser(cfg.CurrentUserID)))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func amount(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "amount should be a JSON string, got %T", v)
	return decimal.RequireFromString(s)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	w, body := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCustomerEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("list with balances", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/api/v1/customers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := body["customers"].([]any)
		require.Len(t, rows, 4)
		first := rows[0].(map[string]any)
		assert.Equal(t, "Sara Ahmed", first["customer"].(map[string]any)["full_name"])
		assert.Equal(t, "2025-01-20", first["customer"].(map[string]any)["promise_to_pay_date"])
		assert.True(t, amount(t, first["outstanding"]).Equal(decimal.NewFromInt(300)))
	})

	t.Run("search", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/api/v1/customers?search=9665033", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["customers"].([]any), 1)
	})

	t.Run("create nested body", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/customers", map[string]any{
			"customer": map[string]any{"full_name": "Noura Saad", "phone_number": "+966505555555"},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		customer := body["customer"].(map[string]any)
		assert.Equal(t, "2025-01-15", customer["date_registered"])
		assert.Nil(t, customer["promise_to_pay_date"])
	})

	t.Run("duplicate phone is a conflict", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/customers", map[string]any{
			"full_name": "Someone", "phone_number": "+966501111111",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, body["error"], "Sara Ahmed - +966501111111")
	})

	t.Run("missing fields are unprocessable", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/customers", map[string]any{"full_name": ""})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Len(t, body["violations"].([]any), 2)
	})

	t.Run("empty body", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/customers", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("profile", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/api/v1/customers/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["debts"].([]any), 2)
		assert.Len(t, body["payments"].([]any), 1)
		assert.Equal(t, "Sara Ahmed", body["debts"].([]any)[0].(map[string]any)["customer_name"])
		assert.True(t, amount(t, body["outstanding"]).Equal(decimal.NewFromInt(300)))

		w, _ = doJSON(t, router, http.MethodGet, "/api/v1/customers/404", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("toggle block", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPut, "/api/v1/customers/4/toggle_block", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["customer"].(map[string]any)["blocked"])
	})

	t.Run("due customers", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/api/v1/customers/due?offset=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2025-01-20", body["date"])
		assert.Len(t, body["customers"].([]any), 1)

		w, _ = doJSON(t, router, http.MethodGet, "/api/v1/customers/due?offset=x", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDebtAndPaymentEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/debts", map[string]any{"customer_id": "4", "amount": "75.50", "note": "inhaler"})
	require.Equal(t, http.StatusCreated, w.Code)
	debt := body["debt"].(map[string]any)
	assert.Equal(t, "1", debt["created_by_user_id"])
	assert.Equal(t, "Abdullah Salem", debt["customer_name"])
	debtID := debt["id"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/debts", map[string]any{"customer_id": "4", "amount": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/debts", map[string]any{"customer_id": "4", "amount": "0.001"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "precision", body["violations"].([]any)[0].(map[string]any)["rule"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/debts", map[string]any{"customer_id": "404", "amount": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = doJSON(t, router, http.MethodPut, "/api/v1/debts/"+debtID, map[string]any{"debt": map[string]any{"amount": 80}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, amount(t, body["debt"].(map[string]any)["debt_amount"]).Equal(decimal.NewFromInt(80)))

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/payments", map[string]any{"payment": map[string]any{"customer_id": "4", "amount": 80}})
	require.Equal(t, http.StatusCreated, w.Code)
	paymentID := body["payment"].(map[string]any)["id"].(string)

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/customers/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, amount(t, body["outstanding"]).IsZero())

	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/payments/"+paymentID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/payments/"+paymentID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/debts/"+debtID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/dashboard?top=1&notification_day=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, amount(t, body["outstanding"]).Equal(decimal.NewFromInt(620)))
	top := body["top_customers"].([]any)
	require.Len(t, top, 1)
	assert.Equal(t, "3", top[0].(map[string]any)["customer"].(map[string]any)["id"])
	today := body["today_debts"].([]any)
	require.Len(t, today, 1)
	assert.Equal(t, "Fatima Hassan", today[0].(map[string]any)["customer_name"])
	assert.Equal(t, "2025-01-20", body["notification_date"])
	assert.Len(t, body["notification_customers"].([]any), 1)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/dashboard?top=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/reports/balances?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "balances_1_2025-01-15.csv")
	assert.Contains(t, w.Body.String(), "Sara Ahmed")

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/reports/balances?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", body["session"].(map[string]any)["view"])

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/session/events", map[string]any{"event": "request_payment"})
	require.Equal(t, http.StatusOK, w.Code)
	modals := body["session"].(map[string]any)["modals"].(map[string]any)
	assert.Equal(t, "payment", modals["customer_selection"])

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/session/events", map[string]any{"event": "select_customer", "customer_id": "2"})
	require.Equal(t, http.StatusOK, w.Code)
	session := body["session"].(map[string]any)
	assert.Equal(t, "2", session["selected_customer_id"])
	assert.Equal(t, true, session["modals"].(map[string]any)["record_payment"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/session/events", map[string]any{"event": "back"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestNotificationAndJobEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/jobs/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["workers"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/jobs/reminders", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/notifications?status=unread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, body["notifications"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/notifications/mark_all_as_read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/notifications/missing/mark_as_read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
