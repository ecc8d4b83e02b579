package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// FindByIDForUpdate finds a product by ID holding a row lock for the duration
// of the surrounding transaction
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := forUpdate(r.db.WithContext(ctx)).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// FindByName finds a product by its exact name
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// FindAll finds products matching the filter with the total match count
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter, page shared.Pagination) ([]catalog.Product, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var products []catalog.Product
	if err := query.
		Order("name ASC").
		Offset(page.Offset()).Limit(page.PageSize).
		Find(&products).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return products, total, nil
}

// Totals returns the live aggregate over the whole catalog
func (r *GormProductRepository) Totals(ctx context.Context) (catalog.ProductTotals, error) {
	var row struct {
		Count         int64
		StockQuantity int64
		StockValue    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("COUNT(*) AS count, COALESCE(SUM(stock_quantity), 0) AS stock_quantity, COALESCE(SUM(selling_price * stock_quantity), 0) AS stock_value").
		Scan(&row).Error
	if err != nil {
		return catalog.ProductTotals{}, translateError(err)
	}
	return catalog.ProductTotals{
		Count:         row.Count,
		StockQuantity: row.StockQuantity,
		StockValue:    row.StockValue,
	}, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Save(product).Error)
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
