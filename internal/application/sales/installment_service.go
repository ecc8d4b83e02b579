package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/application"
	financeapp "github.com/shopledger/backend/internal/application/finance"
	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// upcomingWindow bounds the UPCOMING listing to installments due soon.
const upcomingWindow = 10 * 24 * time.Hour

// InstallmentService handles payments against installment plans and the
// cross-sale schedule queries. Payments lock the parent sale row, so two
// concurrent payments on the same sale serialize instead of double-settling.
type InstallmentService struct {
	scope     application.TransactionScope
	summaries *financeapp.SummaryService
	logger    *zap.Logger
	now       func() time.Time
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(scope application.TransactionScope, summaries *financeapp.SummaryService, logger *zap.Logger) *InstallmentService {
	return &InstallmentService{
		scope:     scope,
		summaries: summaries,
		logger:    logger,
		now:       time.Now,
	}
}

// PayInstallment settles a payment against the sale's next open installment
// and recalculates the payment month's summary. The amount may differ from
// the scheduled one as long as it does not exceed the remaining debt.
func (s *InstallmentService) PayInstallment(ctx context.Context, saleID string, amount decimal.Decimal, paidDate time.Time) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}

		if _, err := sale.ApplyPayment(amount, paidDate, s.now()); err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, paidDate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("installment paid",
		zap.String("sale_id", saleID),
		zap.String("amount", amount.String()),
		zap.String("sale_status", string(sale.Status)),
	)
	return sale, nil
}

// UpdateInstallment corrects a historical installment's amount and paid date,
// rolling the difference through the sale's balances. Both the old and the new
// payment month are recalculated.
func (s *InstallmentService) UpdateInstallment(ctx context.Context, saleID string, installmentID uuid.UUID, amount decimal.Decimal, paidDate time.Time) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}

		oldPaidDate, err := sale.CorrectInstallment(installmentID, amount, paidDate, s.now())
		if err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, oldPaidDate, paidDate)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetInstallments returns a page of installments in the requested status
// bucket, annotated with due-date distances. The UPCOMING bucket also includes
// PENDING rows, limited to those due within the next ten days.
func (s *InstallmentService) GetInstallments(ctx context.Context, status sales.InstallmentStatus, page shared.Pagination) ([]InstallmentView, int64, error) {
	window := sales.InstallmentWindow{Status: status}
	if status == sales.InstallmentUpcoming {
		window.DueWithin = upcomingWindow
	}

	var (
		items []sales.Installment
		total int64
	)
	now := s.now()
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		items, total, err = repos.Installments().FindByWindow(ctx, window, now, page.Normalize())
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	views := make([]InstallmentView, len(items))
	for i := range items {
		views[i] = newInstallmentView(items[i], now)
	}
	return views, total, nil
}

// UpdateAllOverdueStatus sweeps every open installment in the system, moving
// UPCOMING rows due this month to PENDING and past-due rows to LATE. Safe to
// run repeatedly; runs at startup and on a daily schedule.
func (s *InstallmentService) UpdateAllOverdueStatus(ctx context.Context) error {
	now := s.now()
	return s.scope.Execute(ctx, func(repos application.Repositories) error {
		pending, err := repos.Installments().MarkPending(ctx, now)
		if err != nil {
			return err
		}
		late, err := repos.Installments().MarkLate(ctx, now)
		if err != nil {
			return err
		}
		if pending > 0 || late > 0 {
			s.logger.Info("installment status sweep",
				zap.Int64("pending", pending),
				zap.Int64("late", late),
			)
		}
		return nil
	})
}
