package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID loads the sale with its installments ordered by sequence
func (r *GormSaleRepository) FindByID(ctx context.Context, id string) (*sales.Sale, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads the sale holding a row lock for the duration of the
// surrounding transaction. The lock is taken on the sale row only; the
// installment preload does not need it because schedule mutations always go
// through the locked sale.
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id string) (*sales.Sale, error) {
	return r.findByID(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormSaleRepository) findByID(db *gorm.DB, id string) (*sales.Sale, error) {
	var sale sales.Sale
	err := db.
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// Exists checks whether a sale with the given agreement number exists
func (r *GormSaleRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// FindAll finds sales matching the filter, newest first, with installments
func (r *GormSaleRepository) FindAll(ctx context.Context, filter sales.SaleFilter, page shared.Pagination) ([]sales.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&sales.Sale{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.SaleType != "" {
		query = query.Where("sale_type = ?", filter.SaleType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var items []sales.Sale
	if err := query.
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Order("sale_date DESC, created_at DESC").
		Offset(page.Offset()).Limit(page.PageSize).
		Find(&items).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return items, total, nil
}

// FindByDateRange returns sales with SaleDate in [from, to), without
// installments
func (r *GormSaleRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	var items []sales.Sale
	if err := r.db.WithContext(ctx).
		Where("sale_date >= ? AND sale_date < ?", from, to).
		Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

// CountByCustomer counts sales recorded against a customer
func (r *GormSaleRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// CountByProduct counts sales recorded against a product
func (r *GormSaleRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// SumOutstandingDebt returns the total remaining amount over open sales
func (r *GormSaleRepository) SumOutstandingDebt(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Select("COALESCE(SUM(remaining_amount), 0) AS total").
		Where("status <> ?", sales.SaleStatusCompleted).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, translateError(err)
	}
	return row.Total, nil
}

// Save persists the sale and all of its installment rows
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return translateError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sale).Error)
}

// Delete deletes a sale. Installments and stock rows are deleted separately
// by their own repositories within the same transaction.
func (r *GormSaleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&sales.Sale{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
