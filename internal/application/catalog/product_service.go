package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles catalog management. Products carry a cached stock
// quantity that only the stock ledger and the sale engine may move; this
// service never touches it.
type ProductService struct {
	scope  application.TransactionScope
	logger *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(scope application.TransactionScope, logger *zap.Logger) *ProductService {
	return &ProductService{scope: scope, logger: logger}
}

// CreateProduct adds a product to the catalog with zero stock. Names are
// unique across the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, name, category, brand string, sellingPrice decimal.Decimal) (*catalog.Product, error) {
	product, err := catalog.NewProduct(name, category, brand, sellingPrice)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos application.Repositories) error {
		_, err := repos.Products().FindByName(ctx, product.Name)
		if err == nil {
			return shared.NewDomainErrorf("ALREADY_EXISTS",
				"A product named %s already exists", product.Name)
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return product, nil
}

// UpdateProduct applies editable fields. Price changes only affect future
// sales; recorded sales keep their snapshotted prices.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, name, category, brand string, sellingPrice decimal.Decimal) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		product, err = repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		if name != product.Name {
			if _, err := repos.Products().FindByName(ctx, name); err == nil {
				return shared.NewDomainErrorf("ALREADY_EXISTS",
					"A product named %s already exists", name)
			} else if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
		}

		if err := product.ChangeSellingPrice(sellingPrice); err != nil {
			return err
		}
		product.Name = name
		product.Category = strings.TrimSpace(category)
		product.Brand = strings.TrimSpace(brand)
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product. Products referenced by stock transactions
// or sales cannot be deleted; their history must go first.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos application.Repositories) error {
		if _, err := repos.Products().FindByID(ctx, id); err != nil {
			return err
		}

		stockCount, err := repos.StockTransactions().CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if stockCount > 0 {
			return shared.NewDomainError("LINKED_RESOURCE",
				"Product has stock transactions and cannot be deleted")
		}
		saleCount, err := repos.Sales().CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if saleCount > 0 {
			return shared.NewDomainError("LINKED_RESOURCE",
				"Product has recorded sales and cannot be deleted")
		}
		return repos.Products().Delete(ctx, id)
	})
}

// GetProduct loads a single product
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		product, err = repos.Products().FindByID(ctx, id)
		return err
	})
	return product, err
}

// ListProducts returns a filtered page of the catalog together with the live
// totals over the whole catalog (count, units on hand, stock value).
func (s *ProductService) ListProducts(ctx context.Context, filter catalog.ProductFilter, page shared.Pagination) ([]catalog.Product, int64, catalog.ProductTotals, error) {
	var (
		items  []catalog.Product
		total  int64
		totals catalog.ProductTotals
	)
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		items, total, err = repos.Products().FindAll(ctx, filter, page.Normalize())
		if err != nil {
			return err
		}
		totals, err = repos.Products().Totals(ctx)
		return err
	})
	if err != nil {
		return nil, 0, catalog.ProductTotals{}, err
	}
	return items, total, totals, nil
}
