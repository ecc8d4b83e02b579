package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/partner"
	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
)

func seedSaleWorld(t *testing.T, scope application.TransactionScope, saleDate time.Time) *sales.Sale {
	t.Helper()
	product, err := catalog.NewProduct("Dawlance Freezer", "Appliances", "Dawlance", decimal.NewFromInt(95000))
	require.NoError(t, err)
	require.NoError(t, product.ApplyStockDelta(6))

	customer, err := partner.NewCustomer("Sana Khan", "", "0321-7654321", "Karachi")
	require.NoError(t, err)

	sale, err := sales.NewSale(
		"AGR-500", customer.ID, product.ID,
		sales.SaleTypeInstallment, 1,
		decimal.NewFromInt(95000), decimal.NewFromInt(70000), decimal.Zero,
		saleDate,
		nil, &sales.InstallmentSaleInput{FirstInstallment: decimal.NewFromInt(20000), TotalInstallments: 5},
		saleDate,
	)
	require.NoError(t, err)

	require.NoError(t, scope.Execute(context.Background(), func(repos application.Repositories) error {
		if err := repos.Products().Save(context.Background(), product); err != nil {
			return err
		}
		if err := repos.Customers().Save(context.Background(), customer); err != nil {
			return err
		}
		return repos.Sales().Save(context.Background(), sale)
	}))
	return sale
}

func TestRecalculateAggregatesMonth(t *testing.T) {
	scope := newTestScope(t)
	svc := NewSummaryService(scope, zap.NewNop())
	saleDate := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.Local)
	seedSaleWorld(t, scope, saleDate)

	require.NoError(t, svc.Recalculate(context.Background(), saleDate))

	month, year := 2, 2026
	snapshot, err := svc.GetSummary(context.Background(), SummaryQuery{
		FromMonth: &month, FromYear: &year, ToMonth: &month, ToYear: &year,
	})
	require.NoError(t, err)
	assert.True(t, snapshot.TotalSales.Equal(decimal.NewFromInt(95000)), "got %s", snapshot.TotalSales)
	assert.True(t, snapshot.CostOfStock.Equal(decimal.NewFromInt(70000)), "got %s", snapshot.CostOfStock)
	assert.True(t, snapshot.GrossProfit.Equal(decimal.NewFromInt(25000)), "got %s", snapshot.GrossProfit)
}

func TestRecalculateIsIdempotent(t *testing.T) {
	scope := newTestScope(t)
	svc := NewSummaryService(scope, zap.NewNop())
	saleDate := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.Local)
	seedSaleWorld(t, scope, saleDate)

	require.NoError(t, svc.Recalculate(context.Background(), saleDate))
	require.NoError(t, svc.Recalculate(context.Background(), saleDate))

	month, year := 2, 2026
	snapshot, err := svc.GetSummary(context.Background(), SummaryQuery{
		FromMonth: &month, FromYear: &year, ToMonth: &month, ToYear: &year,
	})
	require.NoError(t, err)
	// A second run overwrites the month row instead of double counting.
	assert.True(t, snapshot.TotalSales.Equal(decimal.NewFromInt(95000)), "got %s", snapshot.TotalSales)
}

func TestGetSummaryLiveFields(t *testing.T) {
	scope := newTestScope(t)
	svc := NewSummaryService(scope, zap.NewNop())
	saleDate := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.Local)
	sale := seedSaleWorld(t, scope, saleDate)

	month, year := 2, 2026
	snapshot, err := svc.GetSummary(context.Background(), SummaryQuery{
		FromMonth: &month, FromYear: &year, ToMonth: &month, ToYear: &year,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.TotalProducts)
	assert.Equal(t, int64(1), snapshot.TotalCustomers)
	assert.Equal(t, int64(6), snapshot.TotalStockQuantity)
	assert.True(t, snapshot.StockValue.Equal(valueobject.NewMoneyPKR(decimal.NewFromInt(570000))), "got %s", snapshot.StockValue)
	assert.True(t, snapshot.TotalDebtOnCustomers.Equal(valueobject.NewMoneyPKR(sale.RemainingAmount)), "got %s", snapshot.TotalDebtOnCustomers)
	assert.True(t, snapshot.TotalAssetsValue.Equal(valueobject.NewMoneyPKR(decimal.NewFromInt(570000).Add(sale.RemainingAmount))), "got %s", snapshot.TotalAssetsValue)
}

func TestGetSummaryRejectsReversedRange(t *testing.T) {
	scope := newTestScope(t)
	svc := NewSummaryService(scope, zap.NewNop())

	fromMonth, fromYear := 6, 2026
	toMonth, toYear := 5, 2026
	_, err := svc.GetSummary(context.Background(), SummaryQuery{
		FromMonth: &fromMonth, FromYear: &fromYear, ToMonth: &toMonth, ToYear: &toYear,
	})
	assert.Error(t, err)
}
