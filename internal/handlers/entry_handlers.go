package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

type DebtHandler struct {
	debtService *services.DebtService
}

func NewDebtHandler(debtService *services.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// @Summary Add Debt
// @Description Records a debt attributed to the current worker
// @Tags Debts
// @Accept json
// @Produce json
// @Param request body validation.EntryInput true "Debt Data"
// @Success 201 {object} models.DebtResponse
// @Failure 422 {object} map[string]interface{}
// @Router /debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	var in validation.EntryInput
	if err := BindNestedOrFlat(c, "debt", &in); err != nil {
		badRequest(c, err)
		return
	}
	debt, err := h.debtService.Create(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"debt": debt.Response()})
}

// @Summary Edit Debt
// @Description Replaces the amount and note of a debt
// @Tags Debts
// @Accept json
// @Produce json
// @Param debt_id path string true "Debt ID"
// @Param request body validation.AmountEditInput true "Amount and note"
// @Success 200 {object} models.DebtResponse
// @Router /debts/{debt_id} [put]
func (h *DebtHandler) Update(c *gin.Context) {
	var in validation.AmountEditInput
	if err := BindNestedOrFlat(c, "debt", &in); err != nil {
		badRequest(c, err)
		return
	}
	debt, err := h.debtService.Update(c.Request.Context(), c.Param("debt_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debt": debt.Response()})
}

func (h *DebtHandler) Delete(c *gin.Context) {
	if err := h.debtService.Delete(c.Request.Context(), c.Param("debt_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted"})
}

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// @Summary Record Payment
// @Description Records a payment received by the current worker
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body validation.EntryInput true "Payment Data"
// @Success 201 {object} models.PaymentResponse
// @Failure 422 {object} map[string]interface{}
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var in validation.EntryInput
	if err := BindNestedOrFlat(c, "payment", &in); err != nil {
		badRequest(c, err)
		return
	}
	payment, err := h.paymentService.Create(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment.Response()})
}

func (h *PaymentHandler) Update(c *gin.Context) {
	var in validation.AmountEditInput
	if err := BindNestedOrFlat(c, "payment", &in); err != nil {
		badRequest(c, err)
		return
	}
	payment, err := h.paymentService.Update(c.Request.Context(), c.Param("payment_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment.Response()})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	if err := h.paymentService.Delete(c.Request.Context(), c.Param("payment_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}
