package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService maintains the append-only stock ledger and the cached on-hand
// quantity it derives. Every mutation locks the product row so the quantity
// check and the ledger insert observe the same snapshot.
type StockService struct {
	scope  application.TransactionScope
	logger *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(scope application.TransactionScope, logger *zap.Logger) *StockService {
	return &StockService{scope: scope, logger: logger}
}

// CreateStock appends a manual ledger row (purchase, customer return or
// supplier return) and moves the product's cached stock quantity with it.
// The first row ever recorded for a product is marked as its initial entry.
func (s *StockService) CreateStock(ctx context.Context, productID uuid.UUID, quantity int, txType inventory.StockTransactionType, date time.Time, buyingPrice decimal.Decimal, note string) (*inventory.StockTransaction, error) {
	entry, err := inventory.NewStockTransaction(productID, quantity, txType, date, buyingPrice, note)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos application.Repositories) error {
		product, err := repos.Products().FindByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		initial, err := repos.StockTransactions().FindInitial(ctx, productID)
		switch {
		case err == nil:
			if date.Before(initial.Date) {
				return shared.NewDomainError("INVALID_DATE",
					"Stock cannot be back-dated before the first stock entry")
			}
		case errors.Is(err, shared.ErrNotFound):
			entry.Initial = true
		default:
			return err
		}

		if err := product.ApplyStockDelta(entry.SignedQuantity()); err != nil {
			return err
		}
		if err := repos.StockTransactions().Save(ctx, entry); err != nil {
			return err
		}
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock transaction recorded",
		zap.String("product_id", productID.String()),
		zap.String("type", string(txType)),
		zap.Int("quantity", quantity),
	)
	return entry, nil
}

// DeleteStockTransaction removes a manual ledger row and reverses its effect
// on the cached stock quantity. Sale-linked rows must be removed through the
// sale engine, and the initial entry cannot go while later history exists.
func (s *StockService) DeleteStockTransaction(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		entry, err := repos.StockTransactions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if entry.LinkedToSale() {
			return shared.NewDomainError("LINKED_RESOURCE",
				"Stock transaction is linked to a sale; delete the sale instead")
		}

		if entry.Initial {
			count, err := repos.StockTransactions().CountByProduct(ctx, entry.ProductID)
			if err != nil {
				return err
			}
			if count > 1 {
				return shared.NewDomainError("LINKED_RESOURCE",
					"Initial stock entry cannot be deleted while later transactions exist")
			}
		}

		product, err = repos.Products().FindByIDForUpdate(ctx, entry.ProductID)
		if err != nil {
			return err
		}
		if err := product.ApplyStockDelta(-entry.SignedQuantity()); err != nil {
			return err
		}
		if err := repos.StockTransactions().Delete(ctx, id); err != nil {
			return err
		}
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ListStockTransactions returns a filtered page of the ledger, newest first
func (s *StockService) ListStockTransactions(ctx context.Context, filter inventory.StockTransactionFilter, page shared.Pagination) ([]inventory.StockTransaction, int64, error) {
	var (
		items []inventory.StockTransaction
		total int64
	)
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		items, total, err = repos.StockTransactions().FindAll(ctx, filter, page.Normalize())
		return err
	})
	return items, total, err
}
