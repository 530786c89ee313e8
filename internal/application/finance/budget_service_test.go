package finance

import (
	"context"
	"testing"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBudgetService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("revised defaults to original", func(t *testing.T) {
		repo := new(MockBudgetRepository)
		svc := NewBudgetService(repo)
		repo.On("Save", ctx, mock.AnythingOfType("*finance.Budget")).Return(nil)

		resp, err := svc.Create(ctx, CreateBudgetRequest{
			Name:            "Marketing",
			Department:      "Sales",
			FiscalYear:      2024,
			OriginalAmount:  decPtr("20000"),
			ActualAmount:    decPtr("12000"),
			CommittedAmount: decPtr("3000"),
		})

		require.NoError(t, err)
		assertDecimal(t, "20000", resp.RevisedAmount)
		assertDecimal(t, "15000", resp.TotalUtilised)
		assertDecimal(t, "75", resp.UtilisationPercent)
		assertDecimal(t, "5000", resp.RemainingAmount)
		assert.False(t, resp.OverBudget)
	})

	t.Run("utilisation is measured against the revised amount", func(t *testing.T) {
		repo := new(MockBudgetRepository)
		svc := NewBudgetService(repo)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateBudgetRequest{
			Name:           "Travel",
			FiscalYear:     2024,
			OriginalAmount: decPtr("10000"),
			RevisedAmount:  decPtr("8000"),
			ActualAmount:   decPtr("9000"),
		})

		require.NoError(t, err)
		assertDecimal(t, "112.5", resp.UtilisationPercent)
		assertDecimal(t, "-1000", resp.RemainingAmount)
		assert.True(t, resp.OverBudget)
	})

	t.Run("zero revised amount yields zero utilisation", func(t *testing.T) {
		repo := new(MockBudgetRepository)
		svc := NewBudgetService(repo)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateBudgetRequest{
			Name:           "Unfunded",
			FiscalYear:     2024,
			OriginalAmount: decPtr("0"),
			ActualAmount:   decPtr("50"),
		})

		require.NoError(t, err)
		assertDecimal(t, "0", resp.UtilisationPercent)
	})
}

func TestBudgetService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBudgetRepository)
	svc := NewBudgetService(repo)

	b, err := finance.NewBudget("IT", 2024, dec("1000"))
	require.NoError(t, err)
	b.Department = "Engineering"
	repo.On("FindByID", ctx, b.ID).Return(b, nil)
	repo.On("Save", ctx, b).Return(nil)

	resp, err := svc.Update(ctx, b.ID, UpdateBudgetRequest{ActualAmount: decPtr("950")})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", resp.Department)
	assertDecimal(t, "95", resp.UtilisationPercent)

	_, err = svc.Update(ctx, b.ID, UpdateBudgetRequest{CommittedAmount: decPtr("-1")})
	assert.ErrorContains(t, err, "cannot be negative")
}
