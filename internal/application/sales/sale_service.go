package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/application"
	financeapp "github.com/shopledger/backend/internal/application/finance"
	"github.com/shopledger/backend/internal/domain/inventory"
	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService coordinates the sale engine: a sale mutation moves the stock
// ledger, the product's cached quantity, the installment schedule and the
// monthly summaries in one transaction.
type SaleService struct {
	scope     application.TransactionScope
	summaries *financeapp.SummaryService
	logger    *zap.Logger
	now       func() time.Time
}

// NewSaleService creates a new SaleService
func NewSaleService(scope application.TransactionScope, summaries *financeapp.SummaryService, logger *zap.Logger) *SaleService {
	return &SaleService{
		scope:     scope,
		summaries: summaries,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateSaleInput carries the request parameters of CreateSale
type CreateSaleInput struct {
	AgreementNumber string
	CustomerID      uuid.UUID
	ProductID       uuid.UUID
	SaleType        sales.SaleType
	Quantity        int
	Discount        decimal.Decimal
	SaleDate        time.Time

	// PaidAmount applies to CASH sales; zero means paid in full.
	PaidAmount decimal.Decimal
	// FirstInstallment and TotalInstallments apply to INSTALLMENT sales.
	FirstInstallment  decimal.Decimal
	TotalInstallments int
}

// CreateSale records a sale under the caller-supplied agreement number,
// snapshots the current selling price and the latest purchase buying price,
// writes the linked OUT stock transaction and recalculates the sale month's
// summary. The product row is locked so the stock check and decrement are
// atomic against concurrent sales.
func (s *SaleService) CreateSale(ctx context.Context, input CreateSaleInput) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		exists, err := repos.Sales().Exists(ctx, input.AgreementNumber)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainErrorf("ALREADY_EXISTS",
				"A sale with agreement number %s already exists", input.AgreementNumber)
		}

		if _, err := repos.Customers().FindByID(ctx, input.CustomerID); err != nil {
			return err
		}
		product, err := repos.Products().FindByIDForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}

		initial, err := repos.StockTransactions().FindInitial(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					"Product has no stock history")
			}
			return err
		}
		if input.SaleDate.Before(initial.Date) {
			return shared.NewDomainError("INVALID_DATE",
				"Sale cannot be dated before the product's first stock entry")
		}

		buyingPrice := initial.BuyingPrice
		if latest, err := repos.StockTransactions().FindLatestPurchase(ctx, input.ProductID); err == nil {
			buyingPrice = latest.BuyingPrice
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		var (
			cash *sales.CashSaleInput
			plan *sales.InstallmentSaleInput
		)
		switch input.SaleType {
		case sales.SaleTypeCash:
			cash = &sales.CashSaleInput{PaidAmount: input.PaidAmount}
		case sales.SaleTypeInstallment:
			plan = &sales.InstallmentSaleInput{
				FirstInstallment:  input.FirstInstallment,
				TotalInstallments: input.TotalInstallments,
			}
		}

		sale, err = sales.NewSale(
			input.AgreementNumber,
			input.CustomerID, input.ProductID,
			input.SaleType, input.Quantity,
			product.SellingPrice, buyingPrice, input.Discount,
			input.SaleDate, cash, plan, s.now(),
		)
		if err != nil {
			return err
		}

		if err := product.ApplyStockDelta(-sale.Quantity); err != nil {
			return err
		}
		stockTx := inventory.NewSaleStockTransaction(product.ID, sale.ID, sale.Quantity, sale.SaleDate)

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		if err := repos.StockTransactions().Save(ctx, stockTx); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, sale.SaleDate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("type", string(sale.SaleType)),
		zap.String("total", sale.TotalAmount.String()),
	)
	return sale, nil
}

// DeleteSale reverses a sale entirely: its installment rows and linked stock
// transaction are removed, the sold quantity is returned to stock, and every
// month the sale touched is recalculated.
func (s *SaleService) DeleteSale(ctx context.Context, id string) error {
	return s.scope.Execute(ctx, func(repos application.Repositories) error {
		sale, err := repos.Sales().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		product, err := repos.Products().FindByIDForUpdate(ctx, sale.ProductID)
		if err != nil {
			return err
		}

		if err := product.ApplyStockDelta(sale.Quantity); err != nil {
			return err
		}
		if err := repos.StockTransactions().DeleteBySale(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.Installments().DeleteBySale(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.Sales().Delete(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		return s.summaries.RecalculateWithin(ctx, repos, sale.AffectedDates()...)
	})
}

// GetSale loads a sale with its installment schedule
func (s *SaleService) GetSale(ctx context.Context, id string) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, id)
		return err
	})
	return sale, err
}

// ListSales returns a filtered page of sales, newest first
func (s *SaleService) ListSales(ctx context.Context, filter sales.SaleFilter, page shared.Pagination) ([]sales.Sale, int64, error) {
	var (
		items []sales.Sale
		total int64
	)
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		items, total, err = repos.Sales().FindAll(ctx, filter, page.Normalize())
		return err
	})
	return items, total, err
}
