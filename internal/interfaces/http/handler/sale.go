package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/shopledger/backend/internal/application/sales"
	"github.com/shopledger/backend/internal/domain/sales"
)

// SaleHandler handles sale engine API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	AgreementNumber string  `json:"agreement_number" binding:"required,min=1,max=50"`
	CustomerID      string  `json:"customer_id" binding:"required,uuid"`
	ProductID       string  `json:"product_id" binding:"required,uuid"`
	SaleType        string  `json:"sale_type" binding:"required,oneof=CASH INSTALLMENT"`
	Quantity        int     `json:"quantity" binding:"required,gt=0"`
	Discount        float64 `json:"discount" binding:"omitempty,gte=0"`
	SaleDate        string  `json:"sale_date" binding:"required"`

	PaidAmount        float64 `json:"paid_amount" binding:"omitempty,gte=0"`
	FirstInstallment  float64 `json:"first_installment" binding:"omitempty,gte=0"`
	TotalInstallments int     `json:"total_installments" binding:"omitempty,gte=0"`
}

// Create handles POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		h.BadRequest(c, "Invalid sale date, expected YYYY-MM-DD")
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), salesapp.CreateSaleInput{
		AgreementNumber:   req.AgreementNumber,
		CustomerID:        customerID,
		ProductID:         productID,
		SaleType:          sales.SaleType(req.SaleType),
		Quantity:          req.Quantity,
		Discount:          toDecimal(req.Discount),
		SaleDate:          saleDate,
		PaidAmount:        toDecimal(req.PaidAmount),
		FirstInstallment:  toDecimal(req.FirstInstallment),
		TotalInstallments: req.TotalInstallments,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// Delete handles DELETE /sales/:id. Removing a sale restores the sold stock
// and erases its installments and linked ledger entry.
func (h *SaleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		h.BadRequest(c, "Agreement number is required")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		h.BadRequest(c, "Agreement number is required")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := sales.SaleFilter{
		SaleType: sales.SaleType(c.Query("sale_type")),
		Status:   sales.SaleStatus(c.Query("status")),
	}
	if v := c.Query("customer_id"); v != "" {
		customerID, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		filter.CustomerID = &customerID
	}
	if v := c.Query("product_id"); v != "" {
		productID, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		filter.ProductID = &productID
	}

	items, total, err := h.saleService.ListSales(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}
