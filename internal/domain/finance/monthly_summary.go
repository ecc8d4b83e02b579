package finance

import (
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MonthlySummary is a derived per-month financial snapshot, recomputed from
// the sale and manual-transaction ledgers whenever anything touches its month.
// It is never created directly by a user. Rows are keyed (year, month).
type MonthlySummary struct {
	shared.BaseEntity
	Month time.Month `gorm:"not null;uniqueIndex:idx_monthly_summary_year_month,priority:2" json:"month"`
	Year  int        `gorm:"not null;uniqueIndex:idx_monthly_summary_year_month,priority:1" json:"year"`

	TotalExpense    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_expense"`
	TotalDebt       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_debt"`
	TotalCash       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_cash"`
	TotalBank       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_bank"`
	TotalInvestment decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_investment"`
	TotalSales      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_sales"`
	CostOfStock     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cost_of_stock"`
	GrossProfit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"gross_profit"`
	NetProfit       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"net_profit"`
}

// TableName returns the table name for GORM
func (MonthlySummary) TableName() string {
	return "monthly_summaries"
}

// SummarySnapshot is the read model returned to callers: the summed stored
// period fields plus point-in-time fields computed live against current state.
// The live fields are never summed across months; they describe "now",
// not period activity.
type SummarySnapshot struct {
	TotalExpense    decimal.Decimal `json:"total_expense"`
	TotalDebt       decimal.Decimal `json:"total_debt"`
	TotalCash       decimal.Decimal `json:"total_cash"`
	TotalBank       decimal.Decimal `json:"total_bank"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	CostOfStock     decimal.Decimal `json:"cost_of_stock"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	NetProfit       decimal.Decimal `json:"net_profit"`

	TotalProducts        int64             `json:"total_products"`
	TotalCustomers       int64             `json:"total_customers"`
	TotalStockQuantity   int64             `json:"total_stock_quantity"`
	StockValue           valueobject.Money `json:"stock_value"`
	TotalDebtOnCustomers valueobject.Money `json:"total_debt_on_customers"`
	TotalAssetsValue     valueobject.Money `json:"total_assets_value"`
}

// Accumulate adds a stored month's period fields into the snapshot
func (s *SummarySnapshot) Accumulate(m *MonthlySummary) {
	s.TotalExpense = s.TotalExpense.Add(m.TotalExpense)
	s.TotalDebt = s.TotalDebt.Add(m.TotalDebt)
	s.TotalCash = s.TotalCash.Add(m.TotalCash)
	s.TotalBank = s.TotalBank.Add(m.TotalBank)
	s.TotalInvestment = s.TotalInvestment.Add(m.TotalInvestment)
	s.TotalSales = s.TotalSales.Add(m.TotalSales)
	s.CostOfStock = s.CostOfStock.Add(m.CostOfStock)
	s.GrossProfit = s.GrossProfit.Add(m.GrossProfit)
	s.NetProfit = s.NetProfit.Add(m.NetProfit)
}
