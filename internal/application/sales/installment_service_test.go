package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	financeapp "github.com/shopledger/backend/internal/application/finance"
	"github.com/shopledger/backend/internal/domain/sales"
	"github.com/shopledger/backend/internal/domain/shared"
)

func newInstallmentFixture(t *testing.T) (*saleFixture, *InstallmentService) {
	t.Helper()
	f := newSaleFixture(t)
	summaries := financeapp.NewSummaryService(f.scope, zap.NewNop())
	svc := NewInstallmentService(f.scope, summaries, zap.NewNop())
	svc.now = func() time.Time { return testClock }
	return f, svc
}

func TestPayInstallmentSettlesNextOpen(t *testing.T) {
	f, svc := newInstallmentFixture(t)

	// 20000 total, 5000 down, 4 installments: three open rows of 5000.
	sale, err := f.sales.CreateSale(context.Background(), f.installmentInput("AGR-010", decimal.NewFromInt(5000), 4))
	require.NoError(t, err)
	require.Len(t, sale.Installments, 4)

	dueDate := sale.Installments[1].DueDate
	paid, err := svc.PayInstallment(context.Background(), sale.ID, decimal.NewFromInt(5000), dueDate)
	require.NoError(t, err)

	assert.Equal(t, sales.SaleStatusActive, paid.Status)
	assert.True(t, paid.PaidAmount.Equal(decimal.NewFromInt(10000)), "got %s", paid.PaidAmount)
	assert.True(t, paid.RemainingAmount.Equal(decimal.NewFromInt(10000)), "got %s", paid.RemainingAmount)
	assert.Equal(t, sales.InstallmentPaid, paid.Installments[1].Status)
	assert.Equal(t, 2, paid.PaidInstallments)
}

func TestPayInstallmentCompletesSale(t *testing.T) {
	f, svc := newInstallmentFixture(t)

	sale, err := f.sales.CreateSale(context.Background(), f.installmentInput("AGR-011", decimal.NewFromInt(10000), 3))
	require.NoError(t, err)

	_, err = svc.PayInstallment(context.Background(), sale.ID, decimal.NewFromInt(5000), sale.Installments[1].DueDate)
	require.NoError(t, err)
	done, err := svc.PayInstallment(context.Background(), sale.ID, decimal.NewFromInt(5000), sale.Installments[2].DueDate)
	require.NoError(t, err)

	assert.Equal(t, sales.SaleStatusCompleted, done.Status)
	assert.True(t, done.RemainingAmount.IsZero())
	for _, inst := range done.Installments {
		assert.True(t, inst.Status.IsPaid(), "installment %d is %s", inst.Sequence, inst.Status)
	}
}

func TestPayInstallmentRejectsOverpayment(t *testing.T) {
	f, svc := newInstallmentFixture(t)

	sale, err := f.sales.CreateSale(context.Background(), f.installmentInput("AGR-012", decimal.NewFromInt(15000), 2))
	require.NoError(t, err)

	_, err = svc.PayInstallment(context.Background(), sale.ID, decimal.NewFromInt(6000), testClock)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OVERPAYMENT", domainErr.Code)
}

func TestUpdateInstallmentRollsBalances(t *testing.T) {
	f, svc := newInstallmentFixture(t)

	sale, err := f.sales.CreateSale(context.Background(), f.installmentInput("AGR-013", decimal.NewFromInt(5000), 4))
	require.NoError(t, err)

	// The down payment was actually 4000.
	updated, err := svc.UpdateInstallment(context.Background(), sale.ID, sale.Installments[0].ID, decimal.NewFromInt(4000), testClock)
	require.NoError(t, err)

	assert.True(t, updated.PaidAmount.Equal(decimal.NewFromInt(4000)), "got %s", updated.PaidAmount)
	assert.True(t, updated.RemainingAmount.Equal(decimal.NewFromInt(16000)), "got %s", updated.RemainingAmount)
}

func TestGetInstallmentsPaidBucket(t *testing.T) {
	f, svc := newInstallmentFixture(t)

	_, err := f.sales.CreateSale(context.Background(), f.installmentInput("AGR-014", decimal.NewFromInt(5000), 4))
	require.NoError(t, err)

	views, total, err := svc.GetInstallments(context.Background(), sales.InstallmentPaid, shared.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].Sequence)
	assert.Nil(t, views[0].DaysUntilDue)
}

func TestUpdateAllOverdueStatusSweep(t *testing.T) {
	f, svc := newInstallmentFixture(t)

	sale, err := f.sales.CreateSale(context.Background(), f.installmentInput("AGR-015", decimal.NewFromInt(5000), 4))
	require.NoError(t, err)
	for _, inst := range sale.Installments[1:] {
		require.Equal(t, sales.InstallmentUpcoming, inst.Status)
	}

	// Two months later the July and August rows are past due and the
	// September row falls inside the current month.
	svc.now = func() time.Time { return testClock.AddDate(0, 3, 0) }
	require.NoError(t, svc.UpdateAllOverdueStatus(context.Background()))

	swept, err := f.sales.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	byMonth := map[time.Month]sales.InstallmentStatus{}
	for _, inst := range swept.Installments[1:] {
		byMonth[inst.DueDate.Month()] = inst.Status
	}
	assert.Equal(t, sales.InstallmentLate, byMonth[time.July])
	assert.Equal(t, sales.InstallmentLate, byMonth[time.August])
	assert.Equal(t, sales.InstallmentPending, byMonth[time.September])
}
