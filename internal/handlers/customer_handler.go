package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

type CustomerHandler struct {
	customerService  *services.CustomerService
	dashboardService *services.DashboardService
}

func NewCustomerHandler(customerService *services.CustomerService, dashboardService *services.DashboardService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, dashboardService: dashboardService}
}

// @Summary List Customers
// @Description Customers in registration order with balances toward the current worker
// @Tags Customers
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Router /customers [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	rows, err := h.customerService.List(c.Request.Context(), middleware.GetUserID(c), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": toBalanceResponses(rows), "total": len(rows)})
}

// @Summary Get Customer
// @Description Customer profile with every debt and payment
// @Tags Customers
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} profileResponse
// @Failure 404 {object} map[string]string
// @Router /customers/{customer_id} [get]
func (h *CustomerHandler) Show(c *gin.Context) {
	profile, err := h.customerService.Profile(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile.Customer, profile.Ledger))
}

// @Summary Create Customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body validation.CustomerInput true "Customer Data"
// @Success 201 {object} models.CustomerResponse
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var in validation.CustomerInput
	if err := BindNestedOrFlat(c, "customer", &in); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.customerService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer.ToResponse()})
}

// @Summary Update Customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param request body validation.CustomerInput true "Customer Data"
// @Success 200 {object} models.CustomerResponse
// @Router /customers/{customer_id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	var in validation.CustomerInput
	if err := BindNestedOrFlat(c, "customer", &in); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.customerService.Update(c.Request.Context(), c.Param("customer_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer.ToResponse()})
}

func (h *CustomerHandler) ToggleBlock(c *gin.Context) {
	customer, err := h.customerService.ToggleBlock(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer.ToResponse()})
}

// Due lists customers owing the current worker whose promise-to-pay date is
// today plus ?offset days.
func (h *CustomerHandler) Due(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
		return
	}
	rows, target, err := h.dashboardService.DueCustomers(c.Request.Context(), middleware.GetUserID(c), offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      target.Format(models.DateLayout),
		"customers": toBalanceResponses(rows),
	})
}
