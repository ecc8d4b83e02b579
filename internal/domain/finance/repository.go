package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ManualTransactionFilter is the explicit search filter for manual entries
type ManualTransactionFilter struct {
	Type ManualTransactionType
	From *time.Time
	To   *time.Time
}

// ManualTransactionRepository provides access to the manual ledger
type ManualTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ManualTransaction, error)
	FindAll(ctx context.Context, filter ManualTransactionFilter, page shared.Pagination) ([]ManualTransaction, int64, error)
	// SumByTypeInRange returns per-type amount sums over [from, to)
	SumByTypeInRange(ctx context.Context, from, to time.Time) (map[ManualTransactionType]decimal.Decimal, error)
	Save(ctx context.Context, tx *ManualTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvestmentRepository provides access to investments
type InvestmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Investment, error)
	// FindByPeriod returns the single investment of the month, or ErrNotFound
	FindByPeriod(ctx context.Context, period valueobject.Period) (*Investment, error)
	FindAll(ctx context.Context, page shared.Pagination) ([]Investment, int64, error)
	Save(ctx context.Context, inv *Investment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MonthlySummaryRepository provides access to the derived summary cache
type MonthlySummaryRepository interface {
	FindByPeriod(ctx context.Context, period valueobject.Period) (*MonthlySummary, error)
	FindByRange(ctx context.Context, r valueobject.PeriodRange) ([]MonthlySummary, error)
	// Upsert writes the summary keyed by (year, month), overwriting any
	// previous row for that month.
	Upsert(ctx context.Context, summary *MonthlySummary) error
}
