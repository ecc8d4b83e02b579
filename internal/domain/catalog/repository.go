package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductFilter is the explicit search filter for product listings
type ProductFilter struct {
	Name     string
	Category string
	Brand    string
}

// ProductTotals is the live point-in-time aggregate over the catalog
type ProductTotals struct {
	Count         int64
	StockQuantity int64
	StockValue    decimal.Decimal
}

// ProductRepository provides access to products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDForUpdate loads the product holding a row lock for the duration
	// of the surrounding transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter, page shared.Pagination) ([]Product, int64, error)
	Totals(ctx context.Context) (ProductTotals, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
