package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
)

// GormInvestmentRepository implements InvestmentRepository using GORM
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

// FindByID finds an investment by its ID
func (r *GormInvestmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Investment, error) {
	var inv finance.Investment
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &inv, nil
}

// FindByPeriod returns the single investment of the month, or ErrNotFound
func (r *GormInvestmentRepository) FindByPeriod(ctx context.Context, period valueobject.Period) (*finance.Investment, error) {
	from, to := period.Bounds(time.Local)
	var inv finance.Investment
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		First(&inv).Error; err != nil {
		return nil, translateError(err)
	}
	return &inv, nil
}

// FindAll returns a page of investments, newest first
func (r *GormInvestmentRepository) FindAll(ctx context.Context, page shared.Pagination) ([]finance.Investment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&finance.Investment{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var items []finance.Investment
	if err := r.db.WithContext(ctx).
		Order("date DESC").
		Offset(page.Offset()).Limit(page.PageSize).
		Find(&items).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return items, total, nil
}

// Save creates or updates an investment
func (r *GormInvestmentRepository) Save(ctx context.Context, inv *finance.Investment) error {
	return translateError(r.db.WithContext(ctx).Save(inv).Error)
}

// Delete deletes an investment
func (r *GormInvestmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Investment{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormInvestmentRepository implements InvestmentRepository
var _ finance.InvestmentRepository = (*GormInvestmentRepository)(nil)
