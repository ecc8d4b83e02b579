package partner

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/application"
	"github.com/shopledger/backend/internal/domain/partner"
	"github.com/shopledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService handles customer management
type CustomerService struct {
	scope  application.TransactionScope
	logger *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(scope application.TransactionScope, logger *zap.Logger) *CustomerService {
	return &CustomerService{scope: scope, logger: logger}
}

// CreateCustomer registers a customer. The CNIC is optional but unique when
// present.
func (s *CustomerService) CreateCustomer(ctx context.Context, name, cnic, phone, address string) (*partner.Customer, error) {
	customer, err := partner.NewCustomer(name, cnic, phone, address)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos application.Repositories) error {
		if customer.CNIC != nil {
			if err := s.checkCNIC(ctx, repos, *customer.CNIC); err != nil {
				return err
			}
		}
		return repos.Customers().Save(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.Name),
	)
	return customer, nil
}

// UpdateCustomer applies editable fields
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, name, cnic, phone, address string) (*partner.Customer, error) {
	var customer *partner.Customer
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		customer, err = repos.Customers().FindByID(ctx, id)
		if err != nil {
			return err
		}

		cnic = strings.TrimSpace(cnic)
		if cnic != "" && (customer.CNIC == nil || *customer.CNIC != cnic) {
			if err := s.checkCNIC(ctx, repos, cnic); err != nil {
				return err
			}
		}

		if err := customer.Update(name, cnic, phone, address); err != nil {
			return err
		}
		return repos.Customers().Save(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer. Customers with recorded sales cannot be
// deleted; the sales must go first.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos application.Repositories) error {
		if _, err := repos.Customers().FindByID(ctx, id); err != nil {
			return err
		}
		count, err := repos.Sales().CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("LINKED_RESOURCE",
				"Customer has recorded sales and cannot be deleted")
		}
		return repos.Customers().Delete(ctx, id)
	})
}

// GetCustomer loads a single customer
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer *partner.Customer
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		customer, err = repos.Customers().FindByID(ctx, id)
		return err
	})
	return customer, err
}

// ListCustomers returns a filtered page of customers
func (s *CustomerService) ListCustomers(ctx context.Context, filter partner.CustomerFilter, page shared.Pagination) ([]partner.Customer, int64, error) {
	var (
		items []partner.Customer
		total int64
	)
	err := s.scope.Execute(ctx, func(repos application.Repositories) error {
		var err error
		items, total, err = repos.Customers().FindAll(ctx, filter, page.Normalize())
		return err
	})
	return items, total, err
}

func (s *CustomerService) checkCNIC(ctx context.Context, repos application.Repositories, cnic string) error {
	_, err := repos.Customers().FindByCNIC(ctx, cnic)
	if err == nil {
		return shared.NewDomainErrorf("ALREADY_EXISTS",
			"A customer with CNIC %s already exists", cnic)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return nil
}
