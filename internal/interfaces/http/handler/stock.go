package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/shopledger/backend/internal/application/inventory"
	"github.com/shopledger/backend/internal/domain/inventory"
)

// StockHandler handles stock ledger API endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateStockRequest represents a manual stock ledger entry
type CreateStockRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	BuyingPrice float64 `json:"buying_price" binding:"omitempty,gte=0"`
	Note        string  `json:"note" binding:"max=500"`
}

// Create handles POST /stock
func (h *StockHandler) Create(c *gin.Context) {
	var req CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	txType := inventory.StockTransactionType(req.Type)
	entry, err := h.stockService.CreateStock(c.Request.Context(), productID, req.Quantity, txType, date, toDecimal(req.BuyingPrice), req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// Delete handles DELETE /stock/:id
func (h *StockHandler) Delete(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid stock transaction ID")
		return
	}

	product, err := h.stockService.DeleteStockTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List handles GET /stock
func (h *StockHandler) List(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := inventory.StockTransactionFilter{
		Type: inventory.StockTransactionType(c.Query("type")),
	}
	if v := c.Query("product_id"); v != "" {
		productID, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		filter.ProductID = &productID
	}
	if filter.From, err = parseOptionalDate(c.Query("from")); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.To, err = parseOptionalDate(c.Query("to")); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	entries, total, err := h.stockService.ListStockTransactions(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, page.Page, page.PageSize)
}
