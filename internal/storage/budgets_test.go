package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

func TestBudgetLifecycle(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	budget := &model.Budget{Category: "Groceries", Budget: 400, Spent: 300}
	id, err := store.SaveBudget(ctx, budget)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, 75, budget.Percentage, "percentage recomputed on save")

	budget.Budget = 500
	require.NoError(t, store.UpdateBudget(ctx, budget))
	assert.Equal(t, 60, budget.Percentage, "percentage recomputed on update")

	fetched, err := store.GetBudgetByCategory(ctx, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, 500.0, fetched.Budget)
	assert.Equal(t, 60, fetched.Percentage)

	require.NoError(t, store.DeleteBudget(ctx, id))
	_, err = store.GetBudgetByCategory(ctx, "Groceries")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetBudgetsOrderedByCategory(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, category := range []string{"Rent", "Dining Out", "Groceries"} {
		_, err := store.SaveBudget(ctx, &model.Budget{Category: category, Budget: 100})
		require.NoError(t, err)
	}

	budgets, err := store.GetBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 3)
	assert.Equal(t, "Dining Out", budgets[0].Category)
	assert.Equal(t, "Groceries", budgets[1].Category)
	assert.Equal(t, "Rent", budgets[2].Category)
}

func TestBudgetZeroCeiling(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	budget := &model.Budget{Category: "Misc", Budget: 0, Spent: 50}
	_, err := store.SaveBudget(ctx, budget)
	require.NoError(t, err)
	assert.Equal(t, 0, budget.Percentage, "zero ceiling never divides")
}

func TestUpdateBudgetNotFound(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.UpdateBudget(ctx, &model.Budget{ID: 999, Category: "Ghost", Budget: 100})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
