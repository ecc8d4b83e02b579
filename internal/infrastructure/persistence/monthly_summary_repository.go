package persistence

import (
	"context"

	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMonthlySummaryRepository implements MonthlySummaryRepository using GORM
type GormMonthlySummaryRepository struct {
	db *gorm.DB
}

// NewGormMonthlySummaryRepository creates a new GormMonthlySummaryRepository
func NewGormMonthlySummaryRepository(db *gorm.DB) *GormMonthlySummaryRepository {
	return &GormMonthlySummaryRepository{db: db}
}

// FindByPeriod finds the summary row for the given month
func (r *GormMonthlySummaryRepository) FindByPeriod(ctx context.Context, period valueobject.Period) (*finance.MonthlySummary, error) {
	var summary finance.MonthlySummary
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", period.Year, period.Month).
		First(&summary).Error; err != nil {
		return nil, translateError(err)
	}
	return &summary, nil
}

// FindByRange returns the stored summaries within the period range in
// chronological order. Months with no activity have no row.
func (r *GormMonthlySummaryRepository) FindByRange(ctx context.Context, pr valueobject.PeriodRange) ([]finance.MonthlySummary, error) {
	var summaries []finance.MonthlySummary
	err := r.db.WithContext(ctx).
		Where("(year > ? OR (year = ? AND month >= ?)) AND (year < ? OR (year = ? AND month <= ?))",
			pr.From.Year, pr.From.Year, pr.From.Month,
			pr.To.Year, pr.To.Year, pr.To.Month).
		Order("year ASC, month ASC").
		Find(&summaries).Error
	if err != nil {
		return nil, translateError(err)
	}
	return summaries, nil
}

// Upsert writes the summary keyed by (year, month), overwriting any previous
// row for that month
func (r *GormMonthlySummaryRepository) Upsert(ctx context.Context, summary *finance.MonthlySummary) error {
	return translateError(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_expense", "total_debt", "total_cash", "total_bank",
				"total_investment", "total_sales", "cost_of_stock",
				"gross_profit", "net_profit", "updated_at",
			}),
		}).
		Create(summary).Error)
}

// Ensure GormMonthlySummaryRepository implements MonthlySummaryRepository
var _ finance.MonthlySummaryRepository = (*GormMonthlySummaryRepository)(nil)
