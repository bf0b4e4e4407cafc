package predict

import (
	"math"
	"time"

	"github.com/calmcoin/penny/internal/model"
)

// weeksPerMonth scales a weekly average to a monthly estimate.
const weeksPerMonth = 4.33

// CategoryPrediction estimates next month's spending for one category.
type CategoryPrediction struct {
	Category           string
	Pattern            string
	AverageMonthly     float64
	PredictedNextMonth float64
	Frequency          int
}

// CategorySpending forecasts one category from its expense transactions.
// The second return is false when the category has no expense history.
func CategorySpending(txns []model.Transaction, category string, now time.Time) (CategoryPrediction, bool) {
	var matched []model.Transaction
	var sum float64

	for i := range txns {
		if txns[i].Category != category || !txns[i].IsExpense() {
			continue
		}
		matched = append(matched, txns[i])
		sum += math.Abs(txns[i].Amount)
	}

	if len(matched) == 0 {
		return CategoryPrediction{}, false
	}

	average := sum / float64(len(matched))
	monthly := average * weeksPerMonth

	weekly := DetectWeeklyPattern(matched, now)

	return CategoryPrediction{
		Category:           category,
		AverageMonthly:     math.Round(monthly),
		PredictedNextMonth: math.Round(monthly * weekly.Multiplier()),
		Frequency:          len(matched),
		Pattern:            weekly.Pattern,
	}, true
}
