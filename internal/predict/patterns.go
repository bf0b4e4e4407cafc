package predict

import (
	"math"
	"sort"
	"time"

	"github.com/calmcoin/penny/internal/dates"
	"github.com/calmcoin/penny/internal/model"
)

// patternWindow is how far back spending pattern detection looks.
const patternWindow = 30 * 24 * time.Hour

// trendStrengthThreshold is the minimum weekly slope magnitude that counts
// as a real trend rather than noise.
const trendStrengthThreshold = 0.5

// SpendingPattern flags a category whose recent weekly spending is trending.
type SpendingPattern struct {
	Type     string
	Category string
	Message  string
	Strength float64
}

// DetectSpendingPatterns scans the last 30 days of expenses for categories
// whose week-over-week totals are climbing.
func DetectSpendingPatterns(txns []model.Transaction, now time.Time) []SpendingPattern {
	cutoff := now.Add(-patternWindow)

	// category -> week number -> total
	weekly := make(map[string]map[int]float64)

	for i := range txns {
		if !txns[i].IsExpense() {
			continue
		}
		date, ok := dates.Parse(txns[i].Date, now)
		if !ok || !date.After(cutoff) {
			continue
		}

		week := weekNumber(date)
		if weekly[txns[i].Category] == nil {
			weekly[txns[i].Category] = make(map[int]float64)
		}
		weekly[txns[i].Category][week] += math.Abs(txns[i].Amount)
	}

	categories := make([]string, 0, len(weekly))
	for category := range weekly {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var patterns []SpendingPattern
	for _, category := range categories {
		weeks := weekly[category]
		if len(weeks) < 3 {
			continue
		}

		numbers := make([]int, 0, len(weeks))
		for week := range weeks {
			numbers = append(numbers, week)
		}
		sort.Ints(numbers)

		totals := make([]float64, 0, len(numbers))
		for _, week := range numbers {
			totals = append(totals, weeks[week])
		}

		slope := Slope(totals)
		if slope > trendStrengthThreshold {
			patterns = append(patterns, SpendingPattern{
				Type:     "increasing_trend",
				Category: category,
				Strength: slope,
				Message:  category + " spending is increasing",
			})
		}
	}

	return patterns
}

// weekNumber gives a calendar week index within the year, Sunday-based.
func weekNumber(t time.Time) int {
	firstDay := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	pastDays := t.Sub(firstDay).Hours() / 24
	return int(math.Ceil((pastDays + float64(firstDay.Weekday()) + 1) / 7))
}
