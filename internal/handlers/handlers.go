package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/debtbook-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Customer     *CustomerHandler
	Debt         *DebtHandler
	Payment      *PaymentHandler
	Dashboard    *DashboardHandler
	Report       *ReportHandler
	Session      *SessionHandler
	Notification *NotificationHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Customer:     NewCustomerHandler(svcs.Customer, svcs.Dashboard),
		Debt:         NewDebtHandler(svcs.Debt),
		Payment:      NewPaymentHandler(svcs.Payment),
		Dashboard:    NewDashboardHandler(svcs.Dashboard),
		Report:       NewReportHandler(svcs.Export),
		Session:      NewSessionHandler(svcs.Session),
		Notification: NewNotificationHandler(svcs.Notification),
		Job:          NewJobHandler(svcs.Job),
	}
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "debtbook-api",
		"version": "1.0.0",
	})
}
