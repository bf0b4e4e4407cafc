package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

func newTestSuggestion() *model.Suggestion {
	return &model.Suggestion{
		Title:          "Adjust Groceries budget",
		Description:    "Spending has grown past the current ceiling.",
		Rationale:      "Based on 3 months of history.",
		DataReferences: []string{"transactions", "budgets"},
		Type:           model.SuggestionBudgetAdjustment,
		Category:       "Groceries",
		ProposedChange: model.BudgetAdjustmentChange{Category: "Groceries", NewAmount: 150},
		Confidence:     72,
	}
}

func TestSaveAndGetSuggestion(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	suggestion := newTestSuggestion()
	id, err := store.SaveSuggestion(ctx, suggestion)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, model.StatusPending, suggestion.Status, "defaults to pending")

	fetched, err := store.GetSuggestion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Adjust Groceries budget", fetched.Title)
	assert.Equal(t, model.SuggestionBudgetAdjustment, fetched.Type)
	assert.Equal(t, []string{"transactions", "budgets"}, fetched.DataReferences)
	assert.Equal(t, 72, fetched.Confidence)

	// The typed payload must survive the JSON round trip.
	change, ok := fetched.ProposedChange.(model.BudgetAdjustmentChange)
	require.True(t, ok, "expected BudgetAdjustmentChange, got %T", fetched.ProposedChange)
	assert.Equal(t, "Groceries", change.Category)
	assert.Equal(t, 150.0, change.NewAmount)
}

func TestGetSuggestionNotFound(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetSuggestion(ctx, 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetSuggestionsFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	first := newTestSuggestion()
	first.CreatedAt = time.Date(2023, 3, 10, 9, 0, 0, 0, time.UTC)
	firstID, err := store.SaveSuggestion(ctx, first)
	require.NoError(t, err)

	second := newTestSuggestion()
	second.Title = "Review subscriptions"
	second.Type = model.SuggestionSubscriptionOptimization
	second.ProposedChange = model.SubscriptionOptimizationChange{Category: "Entertainment", Action: "review"}
	second.CreatedAt = time.Date(2023, 3, 12, 9, 0, 0, 0, time.UTC)
	_, err = store.SaveSuggestion(ctx, second)
	require.NoError(t, err)

	require.NoError(t, store.UpdateSuggestionStatus(ctx, firstID, model.StatusAccepted))

	pending, err := store.GetSuggestions(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Review subscriptions", pending[0].Title)

	all, err := store.GetSuggestions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Review subscriptions", all[0].Title, "newest first")
}

func TestUpdateSuggestionStatusTerminal(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	id, err := store.SaveSuggestion(ctx, newTestSuggestion())
	require.NoError(t, err)

	require.NoError(t, store.UpdateSuggestionStatus(ctx, id, model.StatusRejected))

	// A decided suggestion cannot transition again.
	err = store.UpdateSuggestionStatus(ctx, id, model.StatusAccepted)
	assert.ErrorIs(t, err, common.ErrAlreadyDecided)

	fetched, err := store.GetSuggestion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, fetched.Status)
}

func TestUpdateSuggestionStatusNotFound(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.UpdateSuggestionStatus(ctx, 99, model.StatusAccepted)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveSuggestionRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	bad := newTestSuggestion()
	bad.Type = "fortune_telling"
	_, err := store.SaveSuggestion(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidSuggestion)
}
