package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// FindByID finds an installment by its ID
func (r *GormInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Installment, error) {
	var inst sales.Installment
	if err := r.db.WithContext(ctx).First(&inst, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &inst, nil
}

// FindByWindow returns installments in the requested status bucket ordered by
// due date. The UPCOMING bucket widens to PENDING rows and is bounded to
// those due within the window.
func (r *GormInstallmentRepository) FindByWindow(ctx context.Context, window sales.InstallmentWindow, now time.Time, page shared.Pagination) ([]sales.Installment, int64, error) {
	query := r.db.WithContext(ctx).Model(&sales.Installment{})

	if window.Status == sales.InstallmentUpcoming {
		today := valueobject.StartOfDay(now, time.Local)
		query = query.
			Where("status IN ?", []sales.InstallmentStatus{sales.InstallmentUpcoming, sales.InstallmentPending}).
			Where("due_date >= ? AND due_date <= ?", today, today.Add(window.DueWithin))
	} else {
		query = query.Where("status = ?", window.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var items []sales.Installment
	if err := query.
		Order("due_date ASC, sequence ASC").
		Offset(page.Offset()).Limit(page.PageSize).
		Find(&items).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return items, total, nil
}

// MarkPending moves UPCOMING rows due within the current calendar month to
// PENDING; returns rows affected
func (r *GormInstallmentRepository) MarkPending(ctx context.Context, now time.Time) (int64, error) {
	monthStart, monthEnd := valueobject.PeriodOf(now).Bounds(time.Local)
	result := r.db.WithContext(ctx).
		Model(&sales.Installment{}).
		Where("status = ? AND due_date >= ? AND due_date < ?",
			sales.InstallmentUpcoming, monthStart, monthEnd).
		Updates(map[string]any{"status": sales.InstallmentPending, "updated_at": now})
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// MarkLate moves open rows whose due date has passed to LATE; returns rows
// affected
func (r *GormInstallmentRepository) MarkLate(ctx context.Context, now time.Time) (int64, error) {
	today := valueobject.StartOfDay(now, time.Local)
	result := r.db.WithContext(ctx).
		Model(&sales.Installment{}).
		Where("status IN ? AND due_date < ?",
			[]sales.InstallmentStatus{sales.InstallmentUpcoming, sales.InstallmentPending}, today).
		Updates(map[string]any{"status": sales.InstallmentLate, "updated_at": now})
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteBySale removes the schedule rows of the given sale
func (r *GormInstallmentRepository) DeleteBySale(ctx context.Context, saleID string) error {
	return translateError(r.db.WithContext(ctx).
		Delete(&sales.Installment{}, "sale_id = ?", saleID).Error)
}

// Ensure GormInstallmentRepository implements InstallmentRepository
var _ sales.InstallmentRepository = (*GormInstallmentRepository)(nil)
