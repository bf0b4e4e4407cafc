package predict

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calmcoin/penny/internal/model"
)

var fixedNow = time.Date(2023, time.July, 10, 15, 0, 0, 0, time.UTC)

func expense(date string, amount float64) model.Transaction {
	return model.Transaction{
		Name:     "test expense",
		Amount:   amount,
		Date:     date,
		Category: "Misc",
		Type:     model.TypeExpense,
	}
}

func TestMonthlySpendingThreeMonthTrend(t *testing.T) {
	txns := []model.Transaction{
		expense("Jan 5", -45),
		expense("Feb 5", -55),
		expense("Mar 5", -65),
	}

	got := MonthlySpending(txns, fixedNow)

	assert.Equal(t, float64(55), got.AverageMonthly)
	assert.Equal(t, 3, got.DataPoints)
	assert.Equal(t, ConfidenceMedium, got.Confidence)
	assert.Equal(t, TrendIncreasing, got.Trend)

	// Trend over the last three totals is 10/month; the projection scales
	// the last total by the normalized slope: 65 * (1 + 10/65) = 75.
	assert.Equal(t, float64(75), got.PredictedNextMonth)
}

func TestMonthlySpendingNoData(t *testing.T) {
	got := MonthlySpending(nil, fixedNow)

	assert.Equal(t, float64(0), got.AverageMonthly)
	assert.Equal(t, float64(0), got.PredictedNextMonth)
	assert.Equal(t, ConfidenceLow, got.Confidence)
	assert.Equal(t, 0, got.DataPoints)
}

func TestMonthlySpendingIgnoresIncomeAndBadDates(t *testing.T) {
	txns := []model.Transaction{
		expense("Jan 5", -100),
		{Name: "salary", Amount: 2000, Date: "Jan 6", Type: model.TypeIncome},
		expense("not a date", -500),
	}

	got := MonthlySpending(txns, fixedNow)

	assert.Equal(t, 1, got.DataPoints)
	assert.Equal(t, float64(100), got.AverageMonthly)
}

func TestMonthlySpendingFewerThanThreeMonthsUsesAverage(t *testing.T) {
	txns := []model.Transaction{
		expense("Jan 5", -40),
		expense("Feb 5", -60),
	}

	got := MonthlySpending(txns, fixedNow)

	assert.Equal(t, float64(50), got.AverageMonthly)
	assert.Equal(t, float64(50), got.PredictedNextMonth)
	assert.Equal(t, ConfidenceLow, got.Confidence)
}

func TestMonthlySpendingConfidenceTiers(t *testing.T) {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}

	tests := []struct {
		want       ConfidenceTier
		monthCount int
	}{
		{ConfidenceLow, 1},
		{ConfidenceLow, 2},
		{ConfidenceMedium, 3},
		{ConfidenceMedium, 5},
		{ConfidenceHigh, 6},
		{ConfidenceHigh, 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d months", tt.monthCount), func(t *testing.T) {
			var txns []model.Transaction
			for i := 0; i < tt.monthCount; i++ {
				txns = append(txns, expense(months[i]+" 10", -50))
			}

			got := MonthlySpending(txns, fixedNow)
			assert.Equal(t, tt.want, got.Confidence)
			assert.Equal(t, tt.monthCount, got.DataPoints)
		})
	}
}

func TestMonthlySpendingBucketsAreChronological(t *testing.T) {
	// Out-of-order input must not change which totals feed the trend window.
	txns := []model.Transaction{
		expense("Mar 5", -65),
		expense("Jan 5", -45),
		expense("Feb 5", -55),
	}

	got := MonthlySpending(txns, fixedNow)
	assert.Equal(t, float64(75), got.PredictedNextMonth)
}
