package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleFilter is the explicit search filter for sale listings
type SaleFilter struct {
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
	SaleType   SaleType
	Status     SaleStatus
}

// SaleRepository provides access to sales and their schedules
type SaleRepository interface {
	// FindByID loads the sale with its installments ordered by sequence
	FindByID(ctx context.Context, id string) (*Sale, error)
	// FindByIDForUpdate additionally holds a row lock on the sale for the
	// duration of the surrounding transaction, serializing concurrent
	// payments against the same sale.
	FindByIDForUpdate(ctx context.Context, id string) (*Sale, error)
	Exists(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context, filter SaleFilter, page shared.Pagination) ([]Sale, int64, error)
	// FindByDateRange returns sales with SaleDate in [from, to), without
	// installments; used by the summary recalculator.
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Sale, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	// SumOutstandingDebt returns the total remaining amount over open sales
	SumOutstandingDebt(ctx context.Context) (decimal.Decimal, error)
	// Save persists the sale and all of its installment rows
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id string) error
}

// InstallmentWindow selects the read-side bucket for installment listings
type InstallmentWindow struct {
	// Status is the exact status to match; for UPCOMING the repository widens
	// the match to {UPCOMING, PENDING} rows due within the window.
	Status InstallmentStatus
	// DueWithin bounds the UPCOMING window (due date in [today, today+DueWithin]).
	DueWithin time.Duration
}

// InstallmentRepository provides read and sweep access to installment rows.
// Mutations of a sale's schedule go through SaleRepository.Save; this
// repository serves cross-sale queries and the global status sweep.
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Installment, error)
	FindByWindow(ctx context.Context, window InstallmentWindow, now time.Time, page shared.Pagination) ([]Installment, int64, error)
	// MarkPending moves UPCOMING rows due within the current calendar month to
	// PENDING; returns rows affected.
	MarkPending(ctx context.Context, now time.Time) (int64, error)
	// MarkLate moves open rows whose due date has passed to LATE; returns rows
	// affected.
	MarkLate(ctx context.Context, now time.Time) (int64, error)
	DeleteBySale(ctx context.Context, saleID string) error
}
