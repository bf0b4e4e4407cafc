package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/model"
)

func TestSubscriptionLifecycle(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	sub := &model.Subscription{
		Name:        "Streaming Service",
		Amount:      15.99,
		Category:    "Entertainment",
		RenewalDate: "2023-04-01",
		Active:      true,
	}

	id, err := store.SaveSubscription(ctx, sub)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, model.FrequencyMonthly, sub.Frequency, "frequency defaults to monthly")

	subs, err := store.GetSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Active)

	require.NoError(t, store.SetSubscriptionActive(ctx, id, false))

	subs, err = store.GetSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Active)

	require.NoError(t, store.DeleteSubscription(ctx, id))
	err = store.DeleteSubscription(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestReportLifecycle(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	report := &model.Report{
		Type:   "monthly",
		Period: "2023-03",
		Summary: model.ReportSummary{
			TotalTransactions:    42,
			NewTransactions:      7,
			BudgetsUsed:          3,
			SuggestionsGenerated: 2,
		},
	}

	id, err := store.SaveReport(ctx, report)
	require.NoError(t, err)
	assert.Positive(t, id)

	reports, err := store.GetReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "2023-03", reports[0].Period)
	assert.Equal(t, 42, reports[0].Summary.TotalTransactions)
	assert.Equal(t, 7, reports[0].Summary.NewTransactions)

	require.NoError(t, store.DeleteReport(ctx, id))
	err = store.DeleteReport(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
