package session

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/learning"
	"github.com/calmcoin/penny/internal/model"
	"github.com/calmcoin/penny/internal/storage"
)

var testNow = time.Date(2023, 3, 14, 9, 30, 0, 0, time.UTC)

func createTestSession(t *testing.T) (*Session, *storage.SQLiteStorage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	clock := func() time.Time { return testNow }
	sess, err := New(ctx, store,
		WithClock(clock),
		WithEngineOptions(
			learning.WithClock(clock),
			learning.WithRand(rand.New(rand.NewSource(1))),
		))
	require.NoError(t, err)

	return sess, store, func() { _ = store.Close() }
}

func TestGenerateSuggestionPersistsPending(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	suggestion, err := sess.GenerateSuggestion(ctx)
	require.NoError(t, err)
	assert.Positive(t, suggestion.ID)
	assert.Equal(t, model.StatusPending, suggestion.Status)
	assert.GreaterOrEqual(t, suggestion.Confidence, 70)
	assert.LessOrEqual(t, suggestion.Confidence, 95)

	stored, err := store.GetSuggestion(ctx, suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, suggestion.Title, stored.Title)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestRecordDecisionFlipsStatusAndPersistsWeights(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	suggestion, err := sess.GenerateSuggestion(ctx)
	require.NoError(t, err)

	decided, err := sess.RecordDecision(ctx, suggestion.ID, learning.DecisionAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, decided.Status)

	stored, err := store.GetSuggestion(ctx, suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, stored.Status)

	// Weights were written through to storage.
	data, err := store.LoadWeights(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)

	// Deciding the same suggestion again is refused.
	_, err = sess.RecordDecision(ctx, suggestion.ID, learning.DecisionRejected)
	assert.ErrorIs(t, err, common.ErrAlreadyDecided)
}

func TestLearningStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))

	sess, err := New(ctx, store)
	require.NoError(t, err)

	suggestion, err := sess.GenerateSuggestion(ctx)
	require.NoError(t, err)
	_, err = sess.RecordDecision(ctx, suggestion.ID, learning.DecisionAccepted)
	require.NoError(t, err)

	acceptedType := suggestion.Type
	require.NoError(t, store.Close())

	// Reopen as a fresh session; the learned weight must come back.
	store, err = storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate(ctx))

	sess, err = New(ctx, store)
	require.NoError(t, err)

	insights := sess.Insights()
	assert.Equal(t, 1, insights.TotalDecisions)
	found := false
	for _, pref := range insights.TypePreferences {
		if pref.Type == acceptedType {
			found = true
			assert.InDelta(t, 1.1, pref.Weight, 1e-9)
		}
	}
	assert.True(t, found, "accepted type should appear in preferences")
}

func TestApplyBudgetAdjustment(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	_, err := store.SaveBudget(ctx, &model.Budget{Category: "Groceries", Budget: 400, Spent: 300})
	require.NoError(t, err)

	suggestion := &model.Suggestion{
		Title:          "Raise Groceries budget",
		Type:           model.SuggestionBudgetAdjustment,
		Category:       "Groceries",
		ProposedChange: model.BudgetAdjustmentChange{Category: "Groceries", NewAmount: 500},
		Confidence:     75,
	}
	id, err := store.SaveSuggestion(ctx, suggestion)
	require.NoError(t, err)

	budget, err := sess.ApplyBudgetAdjustment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 500.0, budget.Budget)
	assert.Equal(t, 300.0, budget.Spent)
	assert.Equal(t, 60, budget.Percentage, "percentage recomputed from new ceiling")

	stored, err := store.GetSuggestion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, stored.Status)

	// The acceptance fed the learning engine.
	assert.Equal(t, 1, sess.Insights().TotalDecisions)
}

func TestApplyBudgetAdjustmentNoMatchingBudget(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	suggestion := &model.Suggestion{
		Title:          "Raise Travel budget",
		Type:           model.SuggestionBudgetAdjustment,
		Category:       "Travel",
		ProposedChange: model.BudgetAdjustmentChange{Category: "Travel", NewAmount: 200},
	}
	id, err := store.SaveSuggestion(ctx, suggestion)
	require.NoError(t, err)

	_, err = sess.ApplyBudgetAdjustment(ctx, id)
	assert.ErrorIs(t, err, common.ErrNoMatchingBudget)

	// The suggestion stays pending: nothing was applied.
	stored, err := store.GetSuggestion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestApplyBudgetAdjustmentWrongType(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	suggestion := &model.Suggestion{
		Title:          "Watch Dining Out",
		Type:           model.SuggestionRiskAlert,
		Category:       "Dining Out",
		ProposedChange: model.RiskAlertChange{Alert: "watch spending", CategoryID: "Dining Out"},
	}
	id, err := store.SaveSuggestion(ctx, suggestion)
	require.NoError(t, err)

	_, err = sess.ApplyBudgetAdjustment(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotAdjustment)
}

func TestApplyBudgetAdjustmentAlreadyDecided(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	_, err := store.SaveBudget(ctx, &model.Budget{Category: "Groceries", Budget: 400})
	require.NoError(t, err)

	suggestion := &model.Suggestion{
		Title:          "Raise Groceries budget",
		Type:           model.SuggestionBudgetAdjustment,
		Category:       "Groceries",
		ProposedChange: model.BudgetAdjustmentChange{Category: "Groceries", NewAmount: 500},
	}
	id, err := store.SaveSuggestion(ctx, suggestion)
	require.NoError(t, err)

	_, err = sess.RecordDecision(ctx, id, learning.DecisionRejected)
	require.NoError(t, err)

	_, err = sess.ApplyBudgetAdjustment(ctx, id)
	assert.ErrorIs(t, err, common.ErrAlreadyDecided)
}

func TestPredictionsReadStoredTransactions(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	// Three months of expenses relative to the fixed clock (March 2023).
	txns := []model.Transaction{
		{Name: "Jan spend", Amount: -45, Date: "Jan 10", Type: model.TypeExpense},
		{Name: "Feb spend", Amount: -55, Date: "Feb 10", Type: model.TypeExpense},
		{Name: "Mar spend", Amount: -65, Date: "Mar 10", Type: model.TypeExpense},
	}
	_, err := store.SaveTransactions(ctx, txns)
	require.NoError(t, err)

	prediction, err := sess.PredictMonthly(ctx)
	require.NoError(t, err)
	assert.Equal(t, 55.0, prediction.AverageMonthly)
	assert.Equal(t, 75.0, prediction.PredictedNextMonth)
}

func TestGenerateReportCounts(t *testing.T) {
	ctx := context.Background()
	sess, store, cleanup := createTestSession(t)
	defer cleanup()

	_, err := store.SaveTransaction(ctx, &model.Transaction{
		Name: "Coffee", Amount: -4, Date: "Mar 14", Type: model.TypeExpense})
	require.NoError(t, err)
	_, err = store.SaveBudget(ctx, &model.Budget{Category: "Dining Out", Budget: 100})
	require.NoError(t, err)
	_, err = sess.GenerateSuggestion(ctx)
	require.NoError(t, err)

	report, err := sess.GenerateReport(ctx, "monthly", "2023-03", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.TotalTransactions)
	assert.Equal(t, 1, report.Summary.NewTransactions)
	assert.Equal(t, 1, report.Summary.BudgetsUsed)
	assert.Equal(t, 1, report.Summary.SuggestionsGenerated)

	reports, err := store.GetReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "2023-03", reports[0].Period)
}
