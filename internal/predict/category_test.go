package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmcoin/penny/internal/model"
)

func categoryExpense(date, category string, amount float64) model.Transaction {
	txn := expense(date, amount)
	txn.Category = category
	return txn
}

func TestCategorySpendingConsistent(t *testing.T) {
	txns := []model.Transaction{
		categoryExpense("Jan 2", "Coffee", -10),
		categoryExpense("Jan 3", "Coffee", -10),
		categoryExpense("Jan 4", "Coffee", -10),
		categoryExpense("Jan 5", "Coffee", -10),
		categoryExpense("Jan 2", "Rent", -400),
	}

	got, ok := CategorySpending(txns, "Coffee", fixedNow)
	require.True(t, ok)

	assert.Equal(t, "Coffee", got.Category)
	assert.Equal(t, 4, got.Frequency)
	assert.Equal(t, PatternConsistent, got.Pattern)
	// 10 average * 4.33 weeks
	assert.Equal(t, float64(43), got.AverageMonthly)
	assert.Equal(t, float64(43), got.PredictedNextMonth)
}

func TestCategorySpendingPeakedScalesProjection(t *testing.T) {
	txns := []model.Transaction{
		categoryExpense("Jan 1", "Brunch", -30),
		categoryExpense("Jan 8", "Brunch", -30),
		categoryExpense("Jan 15", "Brunch", -30),
		categoryExpense("Jan 3", "Brunch", -30),
	}

	got, ok := CategorySpending(txns, "Brunch", fixedNow)
	require.True(t, ok)

	assert.Equal(t, PatternWeeklyPeak, got.Pattern)
	assert.Equal(t, float64(130), got.AverageMonthly)
	// 129.9 * 1.45 multiplier
	assert.Equal(t, float64(188), got.PredictedNextMonth)
}

func TestCategorySpendingNoHistory(t *testing.T) {
	txns := []model.Transaction{
		categoryExpense("Jan 2", "Rent", -400),
		{Name: "refund", Amount: 25, Date: "Jan 3", Category: "Coffee", Type: model.TypeIncome},
	}

	_, ok := CategorySpending(txns, "Coffee", fixedNow)
	assert.False(t, ok)
}
