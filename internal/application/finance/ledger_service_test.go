package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/partner"
	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/infrastructure/persistence"
)

func newTestScope(t *testing.T) application.TransactionScope {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{}, &partner.Customer{},
		&sales.Sale{}, &sales.Installment{},
		&inventory.StockTransaction{},
		&finance.ManualTransaction{}, &finance.Investment{}, &finance.MonthlySummary{},
	))
	return persistence.NewGormTransactionScope(db)
}

func newLedgerService(t *testing.T) (*LedgerService, application.TransactionScope) {
	t.Helper()
	scope := newTestScope(t)
	summaries := NewSummaryService(scope, zap.NewNop())
	return NewLedgerService(scope, summaries), scope
}

func TestRecordManualTransactionUpdatesSummary(t *testing.T) {
	svc, scope := newLedgerService(t)
	date := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.Local)

	_, err := svc.RecordManualTransaction(context.Background(), finance.ManualTypeExpense, decimal.NewFromInt(3000), date, "shop rent")
	require.NoError(t, err)
	_, err = svc.RecordManualTransaction(context.Background(), finance.ManualTypeCash, decimal.NewFromInt(12000), date, "counter cash")
	require.NoError(t, err)

	summaries := NewSummaryService(scope, zap.NewNop())
	month, year := 4, 2026
	snapshot, err := summaries.GetSummary(context.Background(), SummaryQuery{
		FromMonth: &month, FromYear: &year, ToMonth: &month, ToYear: &year,
	})
	require.NoError(t, err)
	assert.True(t, snapshot.TotalExpense.Equal(decimal.NewFromInt(3000)), "got %s", snapshot.TotalExpense)
	assert.True(t, snapshot.TotalCash.Equal(decimal.NewFromInt(12000)), "got %s", snapshot.TotalCash)
	assert.True(t, snapshot.NetProfit.Equal(decimal.NewFromInt(-3000)), "got %s", snapshot.NetProfit)
}

func TestDeleteManualTransactionRecomputesMonth(t *testing.T) {
	svc, scope := newLedgerService(t)
	date := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.Local)

	entry, err := svc.RecordManualTransaction(context.Background(), finance.ManualTypeExpense, decimal.NewFromInt(3000), date, "")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteManualTransaction(context.Background(), entry.ID))

	summaries := NewSummaryService(scope, zap.NewNop())
	month, year := 4, 2026
	snapshot, err := summaries.GetSummary(context.Background(), SummaryQuery{
		FromMonth: &month, FromYear: &year, ToMonth: &month, ToYear: &year,
	})
	require.NoError(t, err)
	assert.True(t, snapshot.TotalExpense.IsZero(), "got %s", snapshot.TotalExpense)
}

func TestListManualTransactionsFiltersByType(t *testing.T) {
	svc, _ := newLedgerService(t)
	date := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.Local)

	_, err := svc.RecordManualTransaction(context.Background(), finance.ManualTypeExpense, decimal.NewFromInt(3000), date, "")
	require.NoError(t, err)
	_, err = svc.RecordManualTransaction(context.Background(), finance.ManualTypeBank, decimal.NewFromInt(50000), date, "")
	require.NoError(t, err)

	items, total, err := svc.ListManualTransactions(context.Background(), finance.ManualTransactionFilter{Type: finance.ManualTypeBank}, shared.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, finance.ManualTypeBank, items[0].Type)
}

func TestAddInvestmentOnePerMonth(t *testing.T) {
	svc, _ := newLedgerService(t)
	date := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.Local)

	_, err := svc.AddInvestment(context.Background(), "Imran", decimal.NewFromInt(100000), date)
	require.NoError(t, err)

	_, err = svc.AddInvestment(context.Background(), "Imran", decimal.NewFromInt(50000), date.AddDate(0, 0, 20))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)

	// A different month is fine.
	_, err = svc.AddInvestment(context.Background(), "Imran", decimal.NewFromInt(50000), date.AddDate(0, 1, 0))
	require.NoError(t, err)
}

func TestDeleteInvestmentClearsSummary(t *testing.T) {
	svc, scope := newLedgerService(t)
	date := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.Local)

	entry, err := svc.AddInvestment(context.Background(), "Imran", decimal.NewFromInt(100000), date)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteInvestment(context.Background(), entry.ID))

	summaries := NewSummaryService(scope, zap.NewNop())
	month, year := 5, 2026
	snapshot, err := summaries.GetSummary(context.Background(), SummaryQuery{
		FromMonth: &month, FromYear: &year, ToMonth: &month, ToYear: &year,
	})
	require.NoError(t, err)
	assert.True(t, snapshot.TotalInvestment.IsZero(), "got %s", snapshot.TotalInvestment)
}
