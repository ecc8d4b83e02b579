package sales

import (
	"time"

	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
)

// InstallmentView is an installment annotated with its distance from today.
// DaysUntilDue rounds partial days up so an installment due tomorrow morning
// still shows one day; DaysOverdue rounds down so a row is only overdue once
// a full day has passed.
type InstallmentView struct {
	sales.Installment
	DaysUntilDue *int `json:"days_until_due,omitempty"`
	DaysOverdue  *int `json:"days_overdue,omitempty"`
}

func newInstallmentView(inst sales.Installment, now time.Time) InstallmentView {
	view := InstallmentView{Installment: inst}
	switch inst.Status {
	case sales.InstallmentUpcoming, sales.InstallmentPending:
		days := valueobject.DaysBetweenCeil(now, inst.DueDate)
		view.DaysUntilDue = &days
	case sales.InstallmentLate:
		days := valueobject.DaysBetweenFloor(inst.DueDate, now)
		view.DaysOverdue = &days
	}
	return view
}
