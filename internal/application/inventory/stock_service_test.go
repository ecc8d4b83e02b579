package inventory

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

func seedProduct(t *testing.T, scope application.TransactionScope) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Haier Fridge", "Appliances", "Haier", decimal.NewFromInt(95000))
	require.NoError(t, err)
	require.NoError(t, scope.Execute(context.Background(), func(repos application.Repositories) error {
		return repos.Products().Save(context.Background(), product)
	}))
	return product
}

func loadProduct(t *testing.T, scope application.TransactionScope, product *catalog.Product) *catalog.Product {
	t.Helper()
	var loaded *catalog.Product
	require.NoError(t, scope.Execute(context.Background(), func(repos application.Repositories) error {
		var err error
		loaded, err = repos.Products().FindByID(context.Background(), product.ID)
		return err
	}))
	return loaded
}

func TestCreateStockMarksFirstEntryInitial(t *testing.T) {
	scope := newTestScope(t)
	svc := NewStockService(scope, zap.NewNop())
	product := seedProduct(t, scope)

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	entry, err := svc.CreateStock(context.Background(), product.ID, 10, inventory.StockTypePurchase, date, decimal.NewFromInt(80000), "opening stock")
	require.NoError(t, err)
	assert.True(t, entry.Initial)

	second, err := svc.CreateStock(context.Background(), product.ID, 5, inventory.StockTypePurchase, date.AddDate(0, 0, 10), decimal.NewFromInt(81000), "")
	require.NoError(t, err)
	assert.False(t, second.Initial)

	assert.Equal(t, 15, loadProduct(t, scope, product).StockQuantity)
}

func TestCreateStockRejectsBackdatingBeforeInitial(t *testing.T) {
	scope := newTestScope(t)
	svc := NewStockService(scope, zap.NewNop())
	product := seedProduct(t, scope)

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateStock(context.Background(), product.ID, 10, inventory.StockTypePurchase, date, decimal.NewFromInt(80000), "")
	require.NoError(t, err)

	_, err = svc.CreateStock(context.Background(), product.ID, 5, inventory.StockTypePurchase, date.AddDate(0, 0, -1), decimal.NewFromInt(80000), "")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DATE", domainErr.Code)
}

func TestCreateStockRejectsNegativeBalance(t *testing.T) {
	scope := newTestScope(t)
	svc := NewStockService(scope, zap.NewNop())
	product := seedProduct(t, scope)

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateStock(context.Background(), product.ID, 10, inventory.StockTypePurchase, date, decimal.NewFromInt(80000), "")
	require.NoError(t, err)

	_, err = svc.CreateStock(context.Background(), product.ID, 11, inventory.StockTypeSupplierReturn, date.AddDate(0, 0, 1), decimal.Zero, "")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	// Nothing may have been written for the rejected move.
	assert.Equal(t, 10, loadProduct(t, scope, product).StockQuantity)
}

func TestDeleteStockTransactionReversesDelta(t *testing.T) {
	scope := newTestScope(t)
	svc := NewStockService(scope, zap.NewNop())
	product := seedProduct(t, scope)

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateStock(context.Background(), product.ID, 10, inventory.StockTypePurchase, date, decimal.NewFromInt(80000), "")
	require.NoError(t, err)
	entry, err := svc.CreateStock(context.Background(), product.ID, 5, inventory.StockTypePurchase, date.AddDate(0, 0, 5), decimal.NewFromInt(81000), "")
	require.NoError(t, err)

	updated, err := svc.DeleteStockTransaction(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.StockQuantity)
}

func TestDeleteInitialEntryBlockedWhileHistoryExists(t *testing.T) {
	scope := newTestScope(t)
	svc := NewStockService(scope, zap.NewNop())
	product := seedProduct(t, scope)

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	initial, err := svc.CreateStock(context.Background(), product.ID, 10, inventory.StockTypePurchase, date, decimal.NewFromInt(80000), "")
	require.NoError(t, err)
	second, err := svc.CreateStock(context.Background(), product.ID, 5, inventory.StockTypePurchase, date.AddDate(0, 0, 5), decimal.NewFromInt(81000), "")
	require.NoError(t, err)

	_, err = svc.DeleteStockTransaction(context.Background(), initial.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LINKED_RESOURCE", domainErr.Code)

	// Once it is the only row again, the initial entry can go.
	_, err = svc.DeleteStockTransaction(context.Background(), second.ID)
	require.NoError(t, err)
	updated, err := svc.DeleteStockTransaction(context.Background(), initial.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
}

func TestDeleteSaleLinkedEntryBlocked(t *testing.T) {
	scope := newTestScope(t)
	svc := NewStockService(scope, zap.NewNop())
	product := seedProduct(t, scope)

	saleRow := inventory.NewSaleStockTransaction(product.ID, "AGR-100", 2, time.Now())
	require.NoError(t, scope.Execute(context.Background(), func(repos application.Repositories) error {
		return repos.StockTransactions().Save(context.Background(), saleRow)
	}))

	_, err := svc.DeleteStockTransaction(context.Background(), saleRow.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LINKED_RESOURCE", domainErr.Code)
}

func TestListStockTransactionsFilters(t *testing.T) {
	scope := newTestScope(t)
	svc := NewStockService(scope, zap.NewNop())
	product := seedProduct(t, scope)

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateStock(context.Background(), product.ID, 10, inventory.StockTypePurchase, date, decimal.NewFromInt(80000), "")
	require.NoError(t, err)
	_, err = svc.CreateStock(context.Background(), product.ID, 1, inventory.StockTypeReturn, date.AddDate(0, 0, 3), decimal.NewFromInt(80000), "customer return")
	require.NoError(t, err)

	items, total, err := svc.ListStockTransactions(context.Background(), inventory.StockTransactionFilter{
		ProductID: &product.ID,
		Type:      inventory.StockTypeReturn,
	}, shared.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, inventory.StockTypeReturn, items[0].Type)
}
