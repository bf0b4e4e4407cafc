package predict

import (
	"math"
	"time"

	"github.com/calmcoin/penny/internal/dates"
	"github.com/calmcoin/penny/internal/model"
)

// Weekly pattern classifications.
const (
	PatternWeeklyPeak = "weekly_peak"
	PatternConsistent = "consistent"
)

// peakShareThreshold is the fraction of transactions one weekday must carry
// for the category to count as peaked.
const peakShareThreshold = 0.3

// WeeklyPattern describes how one category's transactions distribute across
// weekdays. It is only a multiplicative hint into the category forecast.
type WeeklyPattern struct {
	PeakDay        string
	Pattern        string
	PeakPercentage int
}

// Multiplier converts the pattern into a forecast adjustment. A peaked
// category scales the projection by how far its peak share exceeds the
// threshold; consistent categories leave it untouched.
func (p WeeklyPattern) Multiplier() float64 {
	if p.Pattern != PatternWeeklyPeak {
		return 1
	}
	return 1 + float64(p.PeakPercentage-30)/100
}

// DetectWeeklyPattern buckets one category's transactions by day of week
// (Sunday first) and classifies the spread. Ties go to the earliest weekday.
func DetectWeeklyPattern(txns []model.Transaction, now time.Time) WeeklyPattern {
	var dayCounts [7]int
	total := 0

	for i := range txns {
		date, ok := dates.Parse(txns[i].Date, now)
		if !ok {
			continue
		}
		dayCounts[int(date.Weekday())]++
		total++
	}

	if total == 0 {
		return WeeklyPattern{Pattern: PatternConsistent}
	}

	peakDay := 0
	for day := 1; day < 7; day++ {
		if dayCounts[day] > dayCounts[peakDay] {
			peakDay = day
		}
	}

	pattern := PatternConsistent
	if float64(dayCounts[peakDay]) > float64(total)*peakShareThreshold {
		pattern = PatternWeeklyPeak
	}

	return WeeklyPattern{
		PeakDay:        time.Weekday(peakDay).String(),
		PeakPercentage: int(math.Round(float64(dayCounts[peakDay]) / float64(total) * 100)),
		Pattern:        pattern,
	}
}
