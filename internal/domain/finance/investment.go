package finance

import (
	"strings"
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Investment records capital put into the shop. At most one row per calendar
// month; enforced by the application service at creation time.
type Investment struct {
	shared.BaseEntity
	Investor   string          `gorm:"size:200;not null" json:"investor"`
	Investment decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"investment"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
}

// TableName returns the table name for GORM
func (Investment) TableName() string {
	return "investments"
}

// NewInvestment creates an investment entry
func NewInvestment(investor string, amount decimal.Decimal, date time.Time) (*Investment, error) {
	investor = strings.TrimSpace(investor)
	if investor == "" {
		return nil, shared.NewDomainError("INVALID_INVESTOR", "Investor name cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Investment amount must be positive")
	}

	return &Investment{
		BaseEntity: shared.NewBaseEntity(),
		Investor:   investor,
		Investment: amount,
		Date:       date,
	}, nil
}
