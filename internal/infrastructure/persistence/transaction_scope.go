package persistence

import (
	"context"

	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/partner"
	"github.com/shopledger/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos application.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories provides access to all repositories within a transaction.
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormRepositories) StockTransactions() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

func (r *gormRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormRepositories) Installments() sales.InstallmentRepository {
	return NewGormInstallmentRepository(r.tx)
}

func (r *gormRepositories) ManualTransactions() finance.ManualTransactionRepository {
	return NewGormManualTransactionRepository(r.tx)
}

func (r *gormRepositories) Investments() finance.InvestmentRepository {
	return NewGormInvestmentRepository(r.tx)
}

func (r *gormRepositories) Summaries() finance.MonthlySummaryRepository {
	return NewGormMonthlySummaryRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ application.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormRepositories implements Repositories
var _ application.Repositories = (*gormRepositories)(nil)
