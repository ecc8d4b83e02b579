package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleType distinguishes cash sales from installment plans
type SaleType string

const (
	SaleTypeCash        SaleType = "CASH"
	SaleTypeInstallment SaleType = "INSTALLMENT"
)

// IsValid checks if the type is a known SaleType
func (t SaleType) IsValid() bool {
	return t == SaleTypeCash || t == SaleTypeInstallment
}

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusActive    SaleStatus = "ACTIVE"
	SaleStatusPartial   SaleStatus = "PARTIAL"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Sale is the aggregate root of the sale engine. Its ID is the caller-supplied
// agreement number. Buying and selling prices are snapshotted at sale time and
// never follow later catalog edits.
//
// Invariants: PaidAmount + RemainingAmount == TotalAmount - Discount at all
// times, and Status == COMPLETED exactly when RemainingAmount <= 0.
type Sale struct {
	ID                string          `gorm:"size:50;primaryKey" json:"id"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	SaleType          SaleType        `gorm:"size:12;not null" json:"sale_type"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	BuyingPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"buying_price"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"selling_price"`
	Discount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	PerInstallment    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"per_installment"`
	TotalInstallments int             `gorm:"not null;default:0" json:"total_installments"`
	PaidInstallments  int             `gorm:"not null;default:0" json:"paid_installments"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	RemainingAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"remaining_amount"`
	SaleDate          time.Time       `gorm:"not null;index" json:"sale_date"`
	Status            SaleStatus      `gorm:"size:10;not null;index" json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Installments []Installment `gorm:"foreignKey:SaleID;references:ID" json:"installments,omitempty"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// CashSaleInput carries the CASH-branch parameters of NewSale
type CashSaleInput struct {
	// PaidAmount overrides the settled amount; zero means paid in full.
	PaidAmount decimal.Decimal
}

// InstallmentSaleInput carries the INSTALLMENT-branch parameters of NewSale
type InstallmentSaleInput struct {
	FirstInstallment  decimal.Decimal
	TotalInstallments int
}

// NewSale creates a sale with its payment schedule. The caller provides the
// price snapshot (current selling price and latest purchase buying price);
// stock movement and persistence belong to the application service.
func NewSale(
	id string,
	customerID, productID uuid.UUID,
	saleType SaleType,
	quantity int,
	sellingPrice, buyingPrice, discount decimal.Decimal,
	saleDate time.Time,
	cash *CashSaleInput,
	plan *InstallmentSaleInput,
	now time.Time,
) (*Sale, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Agreement number cannot be empty")
	}
	if customerID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer and product are required")
	}
	if !saleType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown sale type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	totalAmount := sellingPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(totalAmount) {
		return nil, shared.NewDomainErrorf("INVALID_DISCOUNT",
			"Discount cannot exceed total amount (%s)", totalAmount.StringFixed(valueobject.MoneyScale))
	}
	payable := totalAmount.Sub(discount)

	s := &Sale{
		ID:           id,
		CustomerID:   customerID,
		ProductID:    productID,
		SaleType:     saleType,
		Quantity:     quantity,
		BuyingPrice:  buyingPrice,
		SellingPrice: sellingPrice,
		Discount:     discount,
		TotalAmount:  totalAmount,
		SaleDate:     saleDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var initialPayment decimal.Decimal
	switch saleType {
	case SaleTypeCash:
		if cash == nil {
			cash = &CashSaleInput{}
		}
		if cash.PaidAmount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
		}
		initialPayment = payable
		if cash.PaidAmount.IsPositive() {
			initialPayment = cash.PaidAmount
		}
	case SaleTypeInstallment:
		if plan == nil || plan.TotalInstallments < 1 {
			return nil, shared.NewDomainError("INVALID_PLAN", "At least one installment is required")
		}
		if plan.FirstInstallment.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "First installment cannot be negative")
		}
		initialPayment = plan.FirstInstallment
	}

	if initialPayment.GreaterThan(payable) {
		return nil, shared.NewDomainErrorf("OVERPAYMENT",
			"Paid amount exceeds payable total (%s)", payable.StringFixed(valueobject.MoneyScale))
	}

	s.PaidAmount = initialPayment
	s.RemainingAmount = payable.Sub(initialPayment)
	if s.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		s.Status = SaleStatusCompleted
	} else {
		s.Status = SaleStatusActive
	}

	if saleType == SaleTypeInstallment {
		s.buildSchedule(plan, now)
		if s.Status == SaleStatusCompleted {
			// A first installment covering the whole payable amount settles
			// the sale on the spot; close the remaining rows so no unpaid
			// rows dangle on a settled sale.
			for i := range s.Installments {
				if s.Installments[i].Status.IsOpen() {
					s.Installments[i].closeOut(s.SaleDate)
				}
			}
		}
	}

	return s, nil
}

// buildSchedule generates the installment rows: the first installment is
// settled on the sale date, and the remaining balance is spread evenly over
// the rest with due dates one month apart. The last installment absorbs the
// rounding remainder so the schedule sums exactly to the payable total.
func (s *Sale) buildSchedule(plan *InstallmentSaleInput, now time.Time) {
	s.TotalInstallments = plan.TotalInstallments
	s.PaidInstallments = 1
	s.Installments = make([]Installment, 0, plan.TotalInstallments)
	s.Installments = append(s.Installments,
		newPaidInstallment(s.ID, 1, plan.FirstInstallment, s.SaleDate))

	rest := plan.TotalInstallments - 1
	if rest == 0 {
		return
	}

	parts := valueobject.SplitEvenly(s.RemainingAmount, rest)
	s.PerInstallment = parts[0]
	for i, amount := range parts {
		dueDate := s.SaleDate.AddDate(0, i+1, 0)
		s.Installments = append(s.Installments,
			newScheduledInstallment(s.ID, i+2, amount, dueDate, now))
	}
}

// nextPayableIndex returns the index of the first open installment in
// due-date order, or -1 when none remain.
func (s *Sale) nextPayableIndex() int {
	for i := range s.Installments {
		if s.Installments[i].Status.IsOpen() {
			return i
		}
	}
	return -1
}

// ApplyPayment settles a payment against the next payable installment and
// rolls the sale's balances and status forward. The amount may differ from
// the scheduled installment as long as it does not exceed the remaining debt.
// Returns the settled installment.
func (s *Sale) ApplyPayment(amount decimal.Decimal, paidDate, now time.Time) (*Installment, error) {
	if s.Status == SaleStatusCompleted {
		return nil, shared.NewDomainError("SALE_COMPLETED", "Sale is already completed")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(s.RemainingAmount) {
		return nil, shared.NewDomainErrorf("OVERPAYMENT",
			"Payment exceeds remaining debt (%s)", s.RemainingAmount.StringFixed(valueobject.MoneyScale))
	}

	idx := s.nextPayableIndex()
	if idx < 0 {
		// No scheduled row left but debt remains (e.g. a partially paid cash
		// sale). Synthesize one due now so the payment has a ledger row.
		s.Installments = append(s.Installments,
			newScheduledInstallment(s.ID, len(s.Installments)+1, s.RemainingAmount, paidDate, now))
		s.TotalInstallments++
		idx = len(s.Installments) - 1
	}

	inst := &s.Installments[idx]
	inst.settle(amount, paidDate)

	s.PaidInstallments++
	s.PaidAmount = s.PaidAmount.Add(amount)
	s.RemainingAmount = s.RemainingAmount.Sub(amount)
	if s.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		s.Status = SaleStatusCompleted
	} else {
		s.Status = SaleStatusActive
	}
	s.UpdatedAt = now

	s.sweepOverdue(now)

	if s.Status == SaleStatusCompleted {
		// Close the schedule early so no unpaid rows dangle on a settled sale.
		for i := range s.Installments {
			if s.Installments[i].Status.IsOpen() {
				s.Installments[i].closeOut(paidDate)
			}
		}
		return inst, nil
	}

	if s.nextPayableIndex() < 0 {
		// The last scheduled installment was just paid but debt remains:
		// extend the plan by one month covering the new balance.
		s.Installments = append(s.Installments, newScheduledInstallment(
			s.ID, len(s.Installments)+1, s.RemainingAmount, inst.DueDate.AddDate(0, 1, 0), now))
		s.TotalInstallments++
	}

	return inst, nil
}

// sweepOverdue pushes this sale's open installments whose due date has passed
// into LATE, and those due within the current month into PENDING.
func (s *Sale) sweepOverdue(now time.Time) {
	today := valueobject.StartOfDay(now, time.Local)
	for i := range s.Installments {
		inst := &s.Installments[i]
		if !inst.Status.IsOpen() {
			continue
		}
		switch {
		case inst.DueDate.Before(today):
			inst.Status = InstallmentLate
		case inst.Status == InstallmentUpcoming &&
			valueobject.PeriodOf(inst.DueDate) == valueobject.PeriodOf(now):
			inst.Status = InstallmentPending
		}
	}
}

// CorrectInstallment adjusts a historical (already paid) installment's amount
// and paid date, rolling the difference through the sale's balances. Returns
// the previous paid date so both affected months can be recalculated.
func (s *Sale) CorrectInstallment(installmentID uuid.UUID, amount decimal.Decimal, paidDate, now time.Time) (time.Time, error) {
	if s.Status == SaleStatusCompleted {
		return time.Time{}, shared.NewDomainError("SALE_COMPLETED", "Cannot edit installments of a completed sale")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return time.Time{}, shared.NewDomainError("INVALID_AMOUNT", "Installment amount must be positive")
	}

	var inst *Installment
	for i := range s.Installments {
		if s.Installments[i].ID == installmentID {
			inst = &s.Installments[i]
			break
		}
	}
	if inst == nil {
		return time.Time{}, shared.ErrNotFound
	}
	if !inst.Status.IsPaid() {
		return time.Time{}, shared.NewDomainError("INVALID_STATE", "Only paid installments can be corrected")
	}

	difference := amount.Sub(inst.Amount)
	if difference.GreaterThan(s.RemainingAmount) {
		return time.Time{}, shared.NewDomainErrorf("OVERPAYMENT",
			"Correction exceeds remaining debt (%s)", s.RemainingAmount.StringFixed(valueobject.MoneyScale))
	}

	oldPaidDate := inst.DueDate
	if inst.PaidDate != nil {
		oldPaidDate = *inst.PaidDate
	}

	inst.settle(amount, paidDate)
	s.PaidAmount = s.PaidAmount.Add(difference)
	s.RemainingAmount = s.RemainingAmount.Sub(difference)
	if s.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		s.Status = SaleStatusCompleted
		for i := range s.Installments {
			if s.Installments[i].Status.IsOpen() {
				s.Installments[i].closeOut(paidDate)
			}
		}
	} else {
		s.Status = SaleStatusActive
	}
	s.UpdatedAt = now

	return oldPaidDate, nil
}

// PayableTotal returns TotalAmount - Discount
func (s *Sale) PayableTotal() decimal.Decimal {
	return s.TotalAmount.Sub(s.Discount)
}

// CostOfStock returns the snapshotted acquisition cost of the sold units
func (s *Sale) CostOfStock() decimal.Decimal {
	return s.BuyingPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// AffectedDates returns the sale date plus every installment paid date; these
// are the months whose summaries the sale has contributed to.
func (s *Sale) AffectedDates() []time.Time {
	dates := []time.Time{s.SaleDate}
	for i := range s.Installments {
		if s.Installments[i].PaidDate != nil {
			dates = append(dates, *s.Installments[i].PaidDate)
		}
	}
	return dates
}
