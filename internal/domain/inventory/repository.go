package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
)

// StockTransactionFilter is the explicit search filter for ledger listings
type StockTransactionFilter struct {
	ProductID *uuid.UUID
	Type      StockTransactionType
	From      *time.Time
	To        *time.Time
}

// StockTransactionRepository provides access to the stock ledger
type StockTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error)
	FindAll(ctx context.Context, filter StockTransactionFilter, page shared.Pagination) ([]StockTransaction, int64, error)
	// FindInitial returns the initial=true row for the product, or ErrNotFound
	// when the product has no stock history yet.
	FindInitial(ctx context.Context, productID uuid.UUID) (*StockTransaction, error)
	// FindLatestPurchase returns the most recent PURCHASE row for the product,
	// used to snapshot the buying price onto a sale.
	FindLatestPurchase(ctx context.Context, productID uuid.UUID) (*StockTransaction, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	CountLaterThan(ctx context.Context, productID uuid.UUID, id uuid.UUID) (int64, error)
	Save(ctx context.Context, tx *StockTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySale(ctx context.Context, saleID string) error
}
