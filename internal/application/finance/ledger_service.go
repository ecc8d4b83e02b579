package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LedgerService manages the manual-transaction ledger and investments. Every
// mutation recomputes the affected month's summary in the same transaction.
type LedgerService struct {
	scope     application.TransactionScope
	summaries *SummaryService
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope application.TransactionScope, summaries *SummaryService) *LedgerService {
	return &LedgerService{scope: scope, summaries: summaries}
}

// RecordManualTransaction appends an entry to the manual ledger
func (s *LedgerService) RecordManualTransaction(ctx context.Context, txType finance.ManualTransactionType, amount decimal.Decimal, date time.Time, note string) (*finance.ManualTransaction, error) {
	entry, err := finance.NewManualTransaction(txType, amount, date, note)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos application.Repositories) error {
		if err := repos.ManualTransactions().Save(ctx, entry); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, date)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteManualTransaction removes an entry and recomputes its month
func (s *LedgerService) DeleteManualTransaction(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos application.Repositories) error {
		entry, err := repos.ManualTransactions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.ManualTransactions().Delete(ctx, id); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, entry.Date)
	})
}

// ListManualTransactions returns a filtered page of the manual ledger
func (s *LedgerService) ListManualTransactions(ctx context.Context, filter finance.ManualTransactionFilter, page shared.Pagination) ([]finance.ManualTransaction, int64, error) {
	var (
		items []finance.ManualTransaction
		total int64
	)
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		items, total, err = repos.ManualTransactions().FindAll(ctx, filter, page.Normalize())
		return err
	})
	return items, total, err
}

// AddInvestment records the month's investment. At most one investment row
// may exist per calendar month.
func (s *LedgerService) AddInvestment(ctx context.Context, investor string, amount decimal.Decimal, date time.Time) (*finance.Investment, error) {
	entry, err := finance.NewInvestment(investor, amount, date)
	if err != nil {
		return nil, err
	}

	period := valueobject.PeriodOf(date)
	err = s.scope.Execute(ctx, func(repos application.Repositories) error {
		_, err := repos.Investments().FindByPeriod(ctx, period)
		switch {
		case err == nil:
			return shared.NewDomainErrorf("ALREADY_EXISTS",
				"An investment for %s already exists", period)
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}

		if err := repos.Investments().Save(ctx, entry); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, date)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteInvestment removes an investment and recomputes its month
func (s *LedgerService) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos application.Repositories) error {
		entry, err := repos.Investments().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Investments().Delete(ctx, id); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, entry.Date)
	})
}

// ListInvestments returns a page of investments, newest first
func (s *LedgerService) ListInvestments(ctx context.Context, page shared.Pagination) ([]finance.Investment, int64, error) {
	var (
		items []finance.Investment
		total int64
	)
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		items, total, err = repos.Investments().FindAll(ctx, page.Normalize())
		return err
	})
	return items, total, err
}
