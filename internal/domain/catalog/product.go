package catalog

import (
	"strings"
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents an item in the shop catalog.
// StockQuantity is a derived cache: it must always equal the signed sum of the
// product's stock transactions. Only the stock ledger and the sale engine are
// allowed to move it.
type Product struct {
	shared.BaseEntity
	Name          string          `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Category      string          `gorm:"size:100;index" json:"category"`
	Brand         string          `gorm:"size:100;index" json:"brand"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"selling_price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock
func NewProduct(name, category, brand string, sellingPrice decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price must be positive")
	}

	return &Product{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Category:     strings.TrimSpace(category),
		Brand:        strings.TrimSpace(brand),
		SellingPrice: sellingPrice,
	}, nil
}

// ChangeSellingPrice updates the catalog price. Past sales snapshot their own
// prices, so this never alters recorded revenue.
func (p *Product) ChangeSellingPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Selling price must be positive")
	}
	p.SellingPrice = price
	p.UpdatedAt = time.Now()
	return nil
}

// ApplyStockDelta moves the cached on-hand quantity by the given signed delta.
// Rejects any move that would take stock negative.
func (p *Product) ApplyStockDelta(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
			"Stock cannot go negative, current stock is %d", p.StockQuantity)
	}
	p.StockQuantity = next
	p.UpdatedAt = time.Now()
	return nil
}

// StockValue returns the value of on-hand stock at the current catalog price
func (p *Product) StockValue() decimal.Decimal {
	return p.SellingPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}
