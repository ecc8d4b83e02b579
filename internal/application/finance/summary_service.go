package finance

import (
	"context"
	"errors"
	"time"

	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/finance"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SummaryService derives the per-month financial snapshots from the sale and
// manual-transaction ledgers. Summaries are a pure aggregation over what is
// stored, recomputed whole whenever a relevant month changes; there are no
// incremental counters that could drift.
type SummaryService struct {
	scope  application.TransactionScope
	logger *zap.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(scope application.TransactionScope, logger *zap.Logger) *SummaryService {
	return &SummaryService{scope: scope, logger: logger}
}

// SummaryQuery is a partial range specification: any combination of month and
// year per endpoint, normalized by valueobject.ResolvePeriodRange.
type SummaryQuery struct {
	FromMonth *int
	FromYear  *int
	ToMonth   *int
	ToYear    *int
}

// RecalculateWithin recomputes the summary of every month the given dates
// fall into, using the caller's transaction. Mutating services call this as
// the last step of their own Execute block so the cache commits or rolls
// back together with the triggering mutation.
func (s *SummaryService) RecalculateWithin(ctx context.Context, repos application.Repositories, dates ...time.Time) error {
	for _, period := range valueobject.PeriodsOf(dates) {
		if err := s.generate(ctx, repos, period); err != nil {
			return err
		}
	}
	return nil
}

// Recalculate recomputes the given months in a transaction of its own.
// Used by the maintenance endpoint; regular mutations go through
// RecalculateWithin instead.
func (s *SummaryService) Recalculate(ctx context.Context, dates ...time.Time) error {
	return s.scope.Execute(ctx, func(repos application.Repositories) error {
		return s.RecalculateWithin(ctx, repos, dates...)
	})
}

// generate recomputes and upserts a single month's summary
func (s *SummaryService) generate(ctx context.Context, repos application.Repositories, period valueobject.Period) error {
	start, end := period.Bounds(time.Local)

	sums, err := repos.ManualTransactions().SumByTypeInRange(ctx, start, end)
	if err != nil {
		return err
	}

	monthSales, err := repos.Sales().FindByDateRange(ctx, start, end)
	if err != nil {
		return err
	}
	revenue, costOfStock := decimal.Zero, decimal.Zero
	for i := range monthSales {
		revenue = revenue.Add(monthSales[i].TotalAmount)
		costOfStock = costOfStock.Add(monthSales[i].CostOfStock())
	}
	grossProfit := revenue.Sub(costOfStock)

	totalInvestment := decimal.Zero
	investment, err := repos.Investments().FindByPeriod(ctx, period)
	switch {
	case err == nil:
		totalInvestment = investment.Investment
	case errors.Is(err, shared.ErrNotFound):
		// no investment recorded for this month
	default:
		return err
	}

	summary := &finance.MonthlySummary{
		BaseEntity:      shared.NewBaseEntity(),
		Month:           period.Month,
		Year:            period.Year,
		TotalExpense:    sums[finance.ManualTypeExpense],
		TotalDebt:       sums[finance.ManualTypeDebt],
		TotalCash:       sums[finance.ManualTypeCash],
		TotalBank:       sums[finance.ManualTypeBank],
		TotalInvestment: totalInvestment,
		TotalSales:      revenue,
		CostOfStock:     costOfStock,
		GrossProfit:     grossProfit,
		NetProfit:       grossProfit.Sub(sums[finance.ManualTypeExpense]),
	}
	if err := repos.Summaries().Upsert(ctx, summary); err != nil {
		return err
	}

	s.logger.Debug("monthly summary regenerated",
		zap.String("period", period.String()),
		zap.String("revenue", revenue.String()),
	)
	return nil
}

// GetSummary resolves the partial range, sums the stored per-month fields
// across it, and overwrites the point-in-time fields with values computed
// live against the current product, customer and sale state.
func (s *SummaryService) GetSummary(ctx context.Context, query SummaryQuery) (*finance.SummarySnapshot, error) {
	periodRange, err := valueobject.ResolvePeriodRange(
		query.FromMonth, query.FromYear, query.ToMonth, query.ToYear, time.Now())
	if err != nil {
		return nil, shared.NewDomainError("INVALID_RANGE", err.Error())
	}

	var snapshot finance.SummarySnapshot
	err = s.scope.Execute(ctx, func(repos application.Repositories) error {
		stored, err := repos.Summaries().FindByRange(ctx, periodRange)
		if err != nil {
			return err
		}
		for i := range stored {
			snapshot.Accumulate(&stored[i])
		}

		totals, err := repos.Products().Totals(ctx)
		if err != nil {
			return err
		}
		customers, err := repos.Customers().Count(ctx)
		if err != nil {
			return err
		}
		debt, err := repos.Sales().SumOutstandingDebt(ctx)
		if err != nil {
			return err
		}

		stockValue := valueobject.NewMoneyPKR(totals.StockValue)
		customerDebt := valueobject.NewMoneyPKR(debt)
		assets, err := stockValue.Add(customerDebt)
		if err != nil {
			return err
		}

		snapshot.TotalProducts = totals.Count
		snapshot.TotalCustomers = customers
		snapshot.TotalStockQuantity = totals.StockQuantity
		snapshot.StockValue = stockValue
		snapshot.TotalDebtOnCustomers = customerDebt
		snapshot.TotalAssetsValue = assets
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
