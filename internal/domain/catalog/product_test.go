package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("  Samsung TV 42 ", "Electronics", "Samsung", decimal.NewFromInt(85000))
	require.NoError(t, err)
	assert.Equal(t, "Samsung TV 42", p.Name)
	assert.Equal(t, 0, p.StockQuantity)
	assert.NotEqual(t, "", p.ID.String())
}

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("   ", "", "", decimal.NewFromInt(100))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)

	_, err = NewProduct("Fan", "", "", decimal.Zero)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
}

func TestChangeSellingPrice(t *testing.T) {
	p, err := NewProduct("Fan", "", "", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, p.ChangeSellingPrice(decimal.NewFromInt(150)))
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(150)))

	err = p.ChangeSellingPrice(decimal.NewFromInt(-5))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
}

func TestApplyStockDelta(t *testing.T) {
	p, err := NewProduct("Fan", "", "", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, p.ApplyStockDelta(10))
	require.NoError(t, p.ApplyStockDelta(-4))
	assert.Equal(t, 6, p.StockQuantity)

	err = p.ApplyStockDelta(-7)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, 6, p.StockQuantity, "a rejected move must not change stock")
}

func TestStockValue(t *testing.T) {
	p, err := NewProduct("Fan", "", "", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, p.ApplyStockDelta(3))
	assert.True(t, p.StockValue().Equal(decimal.NewFromInt(300)))
}
