package predict

import (
	"math"
	"sort"
	"time"

	"github.com/calmcoin/penny/internal/dates"
	"github.com/calmcoin/penny/internal/model"
)

// ConfidenceTier is a rough data-sufficiency grade, not a probability.
type ConfidenceTier string

// Confidence tiers based on how many monthly buckets back the forecast.
const (
	ConfidenceLow    ConfidenceTier = "low"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceHigh   ConfidenceTier = "high"
)

// Trend tags.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// trendWindow is how many recent monthly totals feed the trend projection.
const trendWindow = 3

// MonthlyPrediction is a derived snapshot of expected spending. It is
// recomputed whenever transactions change and never stored.
type MonthlyPrediction struct {
	Confidence         ConfidenceTier
	Trend              string
	AverageMonthly     float64
	PredictedNextMonth float64
	DataPoints         int
}

type monthKey struct {
	year  int
	month time.Month
}

// MonthlySpending buckets expense transactions by calendar month and projects
// next month's spending from the recent trend. It always returns a result;
// with no usable data every figure is zero at low confidence.
func MonthlySpending(txns []model.Transaction, now time.Time) MonthlyPrediction {
	buckets := make(map[monthKey]float64)

	for i := range txns {
		if !txns[i].IsExpense() {
			continue
		}
		date, ok := dates.Parse(txns[i].Date, now)
		if !ok {
			continue
		}
		key := monthKey{year: date.Year(), month: date.Month()}
		buckets[key] += math.Abs(txns[i].Amount)
	}

	keys := make([]monthKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	totals := make([]float64, 0, len(keys))
	for _, key := range keys {
		totals = append(totals, buckets[key])
	}

	var average float64
	for _, total := range totals {
		average += total
	}
	if len(totals) > 0 {
		average /= float64(len(totals))
	}

	predicted := average
	if len(totals) >= trendWindow {
		recent := totals[len(totals)-trendWindow:]
		last := totals[len(totals)-1]
		if last != 0 {
			normalized := Slope(recent) / last
			predicted = last * (1 + normalized)
		}
	}

	confidence := ConfidenceMedium
	switch {
	case len(totals) >= 6:
		confidence = ConfidenceHigh
	case len(totals) <= 2:
		confidence = ConfidenceLow
	}

	// Tag comparison happens before rounding; flat data flips this on tiny
	// differences, which is accepted behavior.
	trend := TrendDecreasing
	if predicted > average {
		trend = TrendIncreasing
	}

	average = math.Round(average)
	predicted = math.Round(predicted)

	return MonthlyPrediction{
		AverageMonthly:     average,
		PredictedNextMonth: predicted,
		Confidence:         confidence,
		Trend:              trend,
		DataPoints:         len(totals),
	}
}
