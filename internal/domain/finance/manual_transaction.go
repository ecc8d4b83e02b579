package finance

import (
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ManualTransactionType classifies a manually recorded financial entry
type ManualTransactionType string

const (
	ManualTypeExpense ManualTransactionType = "EXPENSE"
	ManualTypeCash    ManualTransactionType = "CASH"
	ManualTypeBank    ManualTransactionType = "BANK"
	ManualTypeDebt    ManualTransactionType = "DEBT"
)

// IsValid checks if the type is a known ManualTransactionType
func (t ManualTransactionType) IsValid() bool {
	switch t {
	case ManualTypeExpense, ManualTypeCash, ManualTypeBank, ManualTypeDebt:
		return true
	}
	return false
}

// ManualTransaction is an independent ledger entry feeding the monthly summary
type ManualTransaction struct {
	shared.BaseEntity
	Type   ManualTransactionType `gorm:"size:10;not null;index" json:"type"`
	Amount decimal.Decimal       `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date   time.Time             `gorm:"not null;index" json:"date"`
	Note   string                `gorm:"size:500" json:"note"`
}

// TableName returns the table name for GORM
func (ManualTransaction) TableName() string {
	return "manual_transactions"
}

// NewManualTransaction creates a manual ledger entry
func NewManualTransaction(txType ManualTransactionType, amount decimal.Decimal, date time.Time, note string) (*ManualTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown transaction type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	return &ManualTransaction{
		BaseEntity: shared.NewBaseEntity(),
		Type:       txType,
		Amount:     amount,
		Date:       date,
		Note:       note,
	}, nil
}
