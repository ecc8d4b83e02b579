package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/shopledger/backend/internal/application/finance"
	"github.com/shopledger/backend/internal/domain/finance"
)

// FinanceHandler handles manual ledger, investment and summary API endpoints
type FinanceHandler struct {
	BaseHandler
	ledgerService  *financeapp.LedgerService
	summaryService *financeapp.SummaryService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(ledgerService *financeapp.LedgerService, summaryService *financeapp.SummaryService) *FinanceHandler {
	return &FinanceHandler{
		ledgerService:  ledgerService,
		summaryService: summaryService,
	}
}

// ManualTransactionRequest represents a manual finance ledger entry
type ManualTransactionRequest struct {
	Type   string  `json:"type" binding:"required,oneof=EXPENSE CASH BANK DEBT"`
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date" binding:"required"`
	Note   string  `json:"note" binding:"max=500"`
}

// CreateTransaction handles POST /finance/transactions
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req ManualTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	tx, err := h.ledgerService.RecordManualTransaction(c.Request.Context(), finance.ManualTransactionType(req.Type), toDecimal(req.Amount), date, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// DeleteTransaction handles DELETE /finance/transactions/:id
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.ledgerService.DeleteManualTransaction(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTransactions handles GET /finance/transactions
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := finance.ManualTransactionFilter{
		Type: finance.ManualTransactionType(c.Query("type")),
	}
	if filter.From, err = parseOptionalDate(c.Query("from")); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.To, err = parseOptionalDate(c.Query("to")); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	items, total, err := h.ledgerService.ListManualTransactions(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// InvestmentRequest represents a monthly capital injection
type InvestmentRequest struct {
	Investor string  `json:"investor" binding:"required,min=1,max=200"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Date     string  `json:"date" binding:"required"`
}

// CreateInvestment handles POST /finance/investments
func (h *FinanceHandler) CreateInvestment(c *gin.Context) {
	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	investment, err := h.ledgerService.AddInvestment(c.Request.Context(), req.Investor, toDecimal(req.Amount), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, investment)
}

// DeleteInvestment handles DELETE /finance/investments/:id
func (h *FinanceHandler) DeleteInvestment(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	if err := h.ledgerService.DeleteInvestment(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListInvestments handles GET /finance/investments
func (h *FinanceHandler) ListInvestments(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.ledgerService.ListInvestments(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// SummaryRequest bounds the summary aggregation window; all bounds optional
type SummaryRequest struct {
	FromMonth *int `form:"from_month" binding:"omitempty,min=1,max=12"`
	FromYear  *int `form:"from_year" binding:"omitempty,min=2000,max=2200"`
	ToMonth   *int `form:"to_month" binding:"omitempty,min=1,max=12"`
	ToYear    *int `form:"to_year" binding:"omitempty,min=2000,max=2200"`
}

// GetSummary handles GET /finance/summary
func (h *FinanceHandler) GetSummary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	snapshot, err := h.summaryService.GetSummary(c.Request.Context(), financeapp.SummaryQuery{
		FromMonth: req.FromMonth,
		FromYear:  req.FromYear,
		ToMonth:   req.ToMonth,
		ToYear:    req.ToYear,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// RecalculateRequest names the month to rebuild
type RecalculateRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
}

// Recalculate handles POST /finance/summary/recalculate, rebuilding one
// month's stored summary from the ledgers
func (h *FinanceHandler) Recalculate(c *gin.Context) {
	var req RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	if err := h.summaryService.Recalculate(c.Request.Context(), date); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Summary recalculated"})
}
