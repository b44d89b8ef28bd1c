package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// optionalInt parses an optional integer query parameter
func optionalInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

// @Summary Worker Dashboard
// @Description Totals, top customers, today's activity and promise-to-pay notifications
// @Tags Dashboard
// @Produce json
// @Param top query int false "Number of top customers"
// @Param notification_day query int false "Days from today for promise-to-pay notifications"
// @Success 200 {object} dashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Show(c *gin.Context) {
	top, err := optionalInt(c, "top")
	if err != nil {
		badRequest(c, err)
		return
	}
	day, err := optionalInt(c, "notification_day")
	if err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.dashboardService.Dashboard(c.Request.Context(), middleware.GetUserID(c), top, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(view))
}

type ReportHandler struct {
	exportService *services.ExportService
}

func NewReportHandler(exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

// @Summary Export Balances
// @Description Customer balances toward the current worker as CSV, XLSX or PDF
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Router /reports/balances [get]
func (h *ReportHandler) Balances(c *gin.Context) {
	file, err := h.exportService.ExportBalances(c.Request.Context(), middleware.GetUserID(c), c.DefaultQuery("format", services.FormatCSV))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
