package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockDirection indicates whether a transaction moves stock in or out
type StockDirection string

const (
	DirectionIn  StockDirection = "IN"
	DirectionOut StockDirection = "OUT"
)

// StockTransactionType classifies the business reason for a stock movement
type StockTransactionType string

const (
	StockTypePurchase       StockTransactionType = "PURCHASE"
	StockTypeSale           StockTransactionType = "SALE"
	StockTypeReturn         StockTransactionType = "RETURN"
	StockTypeSupplierReturn StockTransactionType = "SUPPLIER_RETURN"
)

// IsValid checks if the type is a known StockTransactionType
func (t StockTransactionType) IsValid() bool {
	switch t {
	case StockTypePurchase, StockTypeSale, StockTypeReturn, StockTypeSupplierReturn:
		return true
	}
	return false
}

// Direction returns the movement direction implied by the type.
// Only supplier returns and sales take stock out; everything else is inbound.
func (t StockTransactionType) Direction() StockDirection {
	switch t {
	case StockTypeSupplierReturn, StockTypeSale:
		return DirectionOut
	}
	return DirectionIn
}

// StockTransaction is one row of the append-only per-product stock ledger.
// The product's cached StockQuantity must equal the signed sum of its rows at
// all times.
type StockTransaction struct {
	shared.BaseEntity
	ProductID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity    int                  `gorm:"not null" json:"quantity"`
	Direction   StockDirection       `gorm:"size:3;not null" json:"direction"`
	Type        StockTransactionType `gorm:"size:20;not null" json:"type"`
	Date        time.Time            `gorm:"not null;index" json:"date"`
	BuyingPrice decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"buying_price"`
	SaleID      *string              `gorm:"size:50;index" json:"sale_id,omitempty"`
	Initial     bool                 `gorm:"not null;default:false" json:"initial"`
	Note        string               `gorm:"size:500" json:"note"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewStockTransaction creates a manually entered ledger row (not sale-linked)
func NewStockTransaction(productID uuid.UUID, quantity int, txType StockTransactionType, date time.Time, buyingPrice decimal.Decimal, note string) (*StockTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown stock transaction type")
	}
	if txType == StockTypeSale {
		return nil, shared.NewDomainError("INVALID_TYPE", "Sale transactions are created by the sale engine")
	}

	direction := txType.Direction()
	if direction == DirectionIn && buyingPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Buying price is required for incoming stock")
	}

	return &StockTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		Quantity:    quantity,
		Direction:   direction,
		Type:        txType,
		Date:        date,
		BuyingPrice: buyingPrice,
		Note:        note,
	}, nil
}

// NewSaleStockTransaction creates the OUT row generated by a sale
func NewSaleStockTransaction(productID uuid.UUID, saleID string, quantity int, date time.Time) *StockTransaction {
	return &StockTransaction{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Quantity:   quantity,
		Direction:  DirectionOut,
		Type:       StockTypeSale,
		Date:       date,
		SaleID:     &saleID,
	}
}

// SignedQuantity returns the quantity with its ledger sign
func (t *StockTransaction) SignedQuantity() int {
	if t.Direction == DirectionOut {
		return -t.Quantity
	}
	return t.Quantity
}

// LinkedToSale reports whether the row was generated by a sale
func (t *StockTransaction) LinkedToSale() bool {
	return t.SaleID != nil
}
