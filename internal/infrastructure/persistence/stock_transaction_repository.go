package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements StockTransactionRepository using GORM
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// FindByID finds a stock transaction by its ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	var tx inventory.StockTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tx, nil
}

// FindAll finds stock transactions matching the filter, newest first
func (r *GormStockTransactionRepository) FindAll(ctx context.Context, filter inventory.StockTransactionFilter, page shared.Pagination) ([]inventory.StockTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
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

	var txs []inventory.StockTransaction
	if err := query.
		Order("date DESC, created_at DESC").
		Offset(page.Offset()).Limit(page.PageSize).
		Find(&txs).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return txs, total, nil
}

// FindInitial returns the initial=true row for the product, or ErrNotFound
// when the product has no stock history yet
func (r *GormStockTransactionRepository) FindInitial(ctx context.Context, productID uuid.UUID) (*inventory.StockTransaction, error) {
	var tx inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND initial = ?", productID, true).
		First(&tx).Error; err != nil {
		return nil, translateError(err)
	}
	return &tx, nil
}

// FindLatestPurchase returns the most recent PURCHASE row for the product
func (r *GormStockTransactionRepository) FindLatestPurchase(ctx context.Context, productID uuid.UUID) (*inventory.StockTransaction, error) {
	var tx inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND type = ?", productID, inventory.StockTypePurchase).
		Order("date DESC, created_at DESC").
		First(&tx).Error; err != nil {
		return nil, translateError(err)
	}
	return &tx, nil
}

// CountByProduct counts all ledger rows for a product
func (r *GormStockTransactionRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// CountLaterThan counts the product's ledger rows created after the given row
func (r *GormStockTransactionRepository) CountLaterThan(ctx context.Context, productID uuid.UUID, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Where("product_id = ? AND created_at > (?)", productID,
			r.db.Model(&inventory.StockTransaction{}).Select("created_at").Where("id = ?", id)).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Save creates or updates a stock transaction
func (r *GormStockTransactionRepository) Save(ctx context.Context, tx *inventory.StockTransaction) error {
	return translateError(r.db.WithContext(ctx).Save(tx).Error)
}

// Delete deletes a stock transaction
func (r *GormStockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockTransaction{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBySale removes the ledger rows written by the given sale
func (r *GormStockTransactionRepository) DeleteBySale(ctx context.Context, saleID string) error {
	return translateError(r.db.WithContext(ctx).
		Delete(&inventory.StockTransaction{}, "sale_id = ?", saleID).Error)
}

// Ensure GormStockTransactionRepository implements StockTransactionRepository
var _ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
