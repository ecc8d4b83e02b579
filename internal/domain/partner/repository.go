package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopledger/backend/internal/domain/shared"
)

// CustomerFilter is the explicit search filter for customer listings
type CustomerFilter struct {
	Name  string
	CNIC  string
	Phone string
}

// CustomerRepository provides access to customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCNIC(ctx context.Context, cnic string) (*Customer, error)
	FindAll(ctx context.Context, filter CustomerFilter, page shared.Pagination) ([]Customer, int64, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
