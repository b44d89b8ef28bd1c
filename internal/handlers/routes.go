package handlers

import (
	"github.com/gin-gonic/gin"
)

// Register mounts every ledger route on api. The caller attaches the
// current-user middleware.
func (h *Handlers) Register(api *gin.RouterGroup) {
	customers := api.Group("/customers")
	{
		customers.GET("", h.Customer.Index)
		customers.POST("", h.Customer.Create)
		// static route first so "due" is not matched as :customer_id
		customers.GET("/due", h.Customer.Due)
		customers.GET("/:customer_id", h.Customer.Show)
		customers.PUT("/:customer_id", h.Customer.Update)
		customers.PUT("/:customer_id/toggle_block", h.Customer.ToggleBlock)
	}

	api.POST("/debts", h.Debt.Create)
	api.PUT("/debts/:debt_id", h.Debt.Update)
	api.DELETE("/debts/:debt_id", h.Debt.Delete)

	api.POST("/payments", h.Payment.Create)
	api.PUT("/payments/:payment_id", h.Payment.Update)
	api.DELETE("/payments/:payment_id", h.Payment.Delete)

	api.GET("/dashboard", h.Dashboard.Show)
	api.GET("/reports/balances", h.Report.Balances)

	api.GET("/session", h.Session.Show)
	api.POST("/session/events", h.Session.Event)
	api.DELETE("/session", h.Session.Reset)

	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.Notification.Index)
		notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
		notifications.POST("/:notification_id/mark_as_read", h.Notification.MarkAsRead)
	}

	api.GET("/jobs/status", h.Job.Status)
	api.POST("/jobs/reminders", h.Job.RunReminders)
}
