package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/shopledger/backend/internal/application/sales"
	"github.com/shopledger/backend/internal/domain/sales"
)

// InstallmentHandler handles installment payment API endpoints
type InstallmentHandler struct {
	BaseHandler
	installmentService *salesapp.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(installmentService *salesapp.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// PayInstallmentRequest represents a payment against a sale's schedule
type PayInstallmentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	PaidDate string  `json:"paid_date" binding:"required"`
}

// Pay handles POST /sales/:id/payments
func (h *InstallmentHandler) Pay(c *gin.Context) {
	saleID := c.Param("id")
	if saleID == "" {
		h.BadRequest(c, "Agreement number is required")
		return
	}

	var req PayInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paidDate, err := parseDate(req.PaidDate)
	if err != nil {
		h.BadRequest(c, "Invalid paid date, expected YYYY-MM-DD")
		return
	}

	sale, err := h.installmentService.PayInstallment(c.Request.Context(), saleID, toDecimal(req.Amount), paidDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// Update handles PUT /sales/:id/installments/:installmentId, correcting a
// previously recorded payment
func (h *InstallmentHandler) Update(c *gin.Context) {
	saleID := c.Param("id")
	if saleID == "" {
		h.BadRequest(c, "Agreement number is required")
		return
	}
	installmentID, err := uuid.Parse(c.Param("installmentId"))
	if err != nil {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	var req PayInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paidDate, err := parseDate(req.PaidDate)
	if err != nil {
		h.BadRequest(c, "Invalid paid date, expected YYYY-MM-DD")
		return
	}

	sale, err := h.installmentService.UpdateInstallment(c.Request.Context(), saleID, installmentID, toDecimal(req.Amount), paidDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List handles GET /installments, grouped by status bucket
func (h *InstallmentHandler) List(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	status := sales.InstallmentStatus(c.DefaultQuery("status", string(sales.InstallmentUpcoming)))
	switch status {
	case sales.InstallmentUpcoming, sales.InstallmentPending, sales.InstallmentLate,
		sales.InstallmentPaid, sales.InstallmentPaidLate:
	default:
		h.BadRequest(c, "Unknown installment status")
		return
	}

	items, total, err := h.installmentService.GetInstallments(c.Request.Context(), status, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// Sweep handles POST /installments/sweep, reclassifying open installments
func (h *InstallmentHandler) Sweep(c *gin.Context) {
	if err := h.installmentService.UpdateAllOverdueStatus(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Installment statuses updated"})
}
