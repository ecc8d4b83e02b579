package partner

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

func newTestService(t *testing.T) (*CustomerService, application.TransactionScope) {
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
	scope := persistence.NewGormTransactionScope(db)
	return NewCustomerService(scope, zap.NewNop()), scope
}

func TestCreateCustomerRejectsDuplicateCNIC(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCustomer(context.Background(), "Ali Raza", "35202-1234567-1", "0300-1234567", "Lahore")
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), "Other Person", "35202-1234567-1", "", "")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCreateCustomersWithoutCNIC(t *testing.T) {
	svc, _ := newTestService(t)

	// Walk-in customers without a CNIC never collide with each other.
	_, err := svc.CreateCustomer(context.Background(), "Walk-in One", "", "", "")
	require.NoError(t, err)
	_, err = svc.CreateCustomer(context.Background(), "Walk-in Two", "", "", "")
	require.NoError(t, err)
}

func TestUpdateCustomerKeepsOwnCNIC(t *testing.T) {
	svc, _ := newTestService(t)

	customer, err := svc.CreateCustomer(context.Background(), "Ali Raza", "35202-1234567-1", "0300-1234567", "Lahore")
	require.NoError(t, err)

	// Re-submitting the same CNIC with a new address is not a collision.
	updated, err := svc.UpdateCustomer(context.Background(), customer.ID, "Ali Raza", "35202-1234567-1", "0300-1234567", "Model Town, Lahore")
	require.NoError(t, err)
	assert.Equal(t, "Model Town, Lahore", updated.Address)
}

func TestDeleteCustomerBlockedBySales(t *testing.T) {
	svc, scope := newTestService(t)

	customer, err := svc.CreateCustomer(context.Background(), "Ali Raza", "35202-1234567-1", "", "")
	require.NoError(t, err)

	product, err := catalog.NewProduct("Orient AC", "Appliances", "Orient", decimal.NewFromInt(20000))
	require.NoError(t, err)
	now := time.Now()
	sale, err := sales.NewSale(
		"AGR-050", customer.ID, product.ID,
		sales.SaleTypeCash, 1,
		decimal.NewFromInt(20000), decimal.NewFromInt(15000), decimal.Zero,
		now, nil, nil, now,
	)
	require.NoError(t, err)
	require.NoError(t, scope.Execute(context.Background(), func(repos application.Repositories) error {
		if err := repos.Products().Save(context.Background(), product); err != nil {
			return err
		}
		return repos.Sales().Save(context.Background(), sale)
	}))

	err = svc.DeleteCustomer(context.Background(), customer.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LINKED_RESOURCE", domainErr.Code)
}

func TestListCustomersFiltersByName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCustomer(context.Background(), "Ali Raza", "", "", "")
	require.NoError(t, err)
	_, err = svc.CreateCustomer(context.Background(), "Sana Khan", "", "", "")
	require.NoError(t, err)

	items, total, err := svc.ListCustomers(context.Background(), partner.CustomerFilter{Name: "Sana"}, shared.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Sana Khan", items[0].Name)
}
