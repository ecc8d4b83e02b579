package sales

import (
	"time"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the lifecycle state of a scheduled installment
type InstallmentStatus string

const (
	// InstallmentPaid and InstallmentPaidLate are terminal.
	InstallmentPaid     InstallmentStatus = "PAID"
	InstallmentPaidLate InstallmentStatus = "PAID_LATE"
	// InstallmentUpcoming is due in a future month.
	InstallmentUpcoming InstallmentStatus = "UPCOMING"
	// InstallmentPending is due within the current calendar month but unpaid.
	InstallmentPending InstallmentStatus = "PENDING"
	// InstallmentLate is past its due date and unpaid.
	InstallmentLate InstallmentStatus = "LATE"
)

// IsOpen reports whether the installment can still receive a payment
func (s InstallmentStatus) IsOpen() bool {
	switch s {
	case InstallmentUpcoming, InstallmentPending, InstallmentLate:
		return true
	}
	return false
}

// IsPaid reports whether the installment is in a terminal paid state
func (s InstallmentStatus) IsPaid() bool {
	return s == InstallmentPaid || s == InstallmentPaidLate
}

// ClassifyDueDate derives the non-terminal status of an unpaid installment
// from its due date relative to "now": due within the current calendar month
// is PENDING, already past is LATE, anything further out is UPCOMING.
func ClassifyDueDate(dueDate, now time.Time) InstallmentStatus {
	if valueobject.PeriodOf(dueDate) == valueobject.PeriodOf(now) {
		return InstallmentPending
	}
	if dueDate.Before(now) {
		return InstallmentLate
	}
	return InstallmentUpcoming
}

// Installment is one row of a sale's payment schedule, ordered by sequence
// (which follows due date order).
type Installment struct {
	shared.BaseEntity
	SaleID   string            `gorm:"size:50;not null;index" json:"sale_id"`
	Sequence int               `gorm:"not null" json:"sequence"`
	Amount   decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"amount"`
	DueDate  time.Time         `gorm:"not null;index" json:"due_date"`
	PaidDate *time.Time        `gorm:"index" json:"paid_date,omitempty"`
	Status   InstallmentStatus `gorm:"size:10;not null;index" json:"status"`
}

// TableName returns the table name for GORM
func (Installment) TableName() string {
	return "installments"
}

// newScheduledInstallment creates an unpaid schedule row with derived status
func newScheduledInstallment(saleID string, sequence int, amount decimal.Decimal, dueDate, now time.Time) Installment {
	return Installment{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		Sequence:   sequence,
		Amount:     amount,
		DueDate:    dueDate,
		Status:     ClassifyDueDate(dueDate, now),
	}
}

// newPaidInstallment creates the already-settled first installment of a plan
func newPaidInstallment(saleID string, sequence int, amount decimal.Decimal, date time.Time) Installment {
	paid := date
	return Installment{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		Sequence:   sequence,
		Amount:     amount,
		DueDate:    date,
		PaidDate:   &paid,
		Status:     InstallmentPaid,
	}
}

// settle marks the installment paid with the actually received amount, which
// may differ from the scheduled one. A payment after the due date, or against
// an already-late row, settles as PAID_LATE.
func (i *Installment) settle(amount decimal.Decimal, paidDate time.Time) {
	isLate := i.Status == InstallmentLate ||
		valueobject.StartOfDay(paidDate, time.Local).After(valueobject.StartOfDay(i.DueDate, time.Local))

	i.Amount = amount
	i.PaidDate = &paidDate
	if isLate {
		i.Status = InstallmentPaidLate
	} else {
		i.Status = InstallmentPaid
	}
	i.UpdatedAt = time.Now()
}

// closeOut zeroes an open row when the sale completes early, so the schedule
// never dangles unpaid rows on a settled sale.
func (i *Installment) closeOut(paidDate time.Time) {
	i.Amount = decimal.Zero
	i.PaidDate = &paidDate
	i.Status = InstallmentPaid
	i.UpdatedAt = time.Now()
}
