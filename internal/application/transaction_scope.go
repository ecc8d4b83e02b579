// Package application holds the use-case services that orchestrate domain
// aggregates inside transactional boundaries.
package application

import (
	"context"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/partner"
	"github.com/shopledger/backend/internal/domain/sales"
)

// Repositories provides access to every repository within one transaction.
// All repositories returned share the same underlying database transaction.
// A sale mutation touches products, the stock ledger, the schedule and the
// monthly summaries in a single atomic scope, which is why the scope spans
// all aggregates rather than one per domain package.
type Repositories interface {
	Products() catalog.ProductRepository
	Customers() partner.CustomerRepository
	StockTransactions() inventory.StockTransactionRepository
	Sales() sales.SaleRepository
	Installments() sales.InstallmentRepository
	ManualTransactions() finance.ManualTransactionRepository
	Investments() finance.InvestmentRepository
	Summaries() finance.MonthlySummaryRepository
}

// TransactionScope runs a function within a database transaction. If the
// function returns an error the transaction is rolled back; otherwise it is
// committed. Summary recalculation runs inside the same scope as the
// mutation that triggered it, so the cache can never desync from the ledger.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
