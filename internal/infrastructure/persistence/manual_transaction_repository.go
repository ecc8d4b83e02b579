package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormManualTransactionRepository implements ManualTransactionRepository using GORM
type GormManualTransactionRepository struct {
	db *gorm.DB
}

// NewGormManualTransactionRepository creates a new GormManualTransactionRepository
func NewGormManualTransactionRepository(db *gorm.DB) *GormManualTransactionRepository {
	return &GormManualTransactionRepository{db: db}
}

// FindByID finds a manual transaction by its ID
func (r *GormManualTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ManualTransaction, error) {
	var tx finance.ManualTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tx, nil
}

// FindAll finds manual transactions matching the filter, newest first
func (r *GormManualTransactionRepository) FindAll(ctx context.Context, filter finance.ManualTransactionFilter, page shared.Pagination) ([]finance.ManualTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&finance.ManualTransaction{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var txs []finance.ManualTransaction
	if err := query.
		Order("date DESC, created_at DESC").
		Offset(page.Offset()).Limit(page.PageSize).
		Find(&txs).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return txs, total, nil
}

// SumByTypeInRange returns per-type amount sums over [from, to)
func (r *GormManualTransactionRepository) SumByTypeInRange(ctx context.Context, from, to time.Time) (map[finance.ManualTransactionType]decimal.Decimal, error) {
	var rows []struct {
		Type  finance.ManualTransactionType
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&finance.ManualTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ? AND date < ?", from, to).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	sums := make(map[finance.ManualTransactionType]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Type] = row.Total
	}
	return sums, nil
}

// Save creates or updates a manual transaction
func (r *GormManualTransactionRepository) Save(ctx context.Context, tx *finance.ManualTransaction) error {
	return translateError(r.db.WithContext(ctx).Save(tx).Error)
}

// Delete deletes a manual transaction
func (r *GormManualTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.ManualTransaction{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormManualTransactionRepository implements ManualTransactionRepository
var _ finance.ManualTransactionRepository = (*GormManualTransactionRepository)(nil)
