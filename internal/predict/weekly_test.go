package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calmcoin/penny/internal/model"
)

// fixedNow is July 10 2023; Jan 1 2023 was a Sunday, which makes weekday
// expectations below easy to read.

func TestDetectWeeklyPatternPeaked(t *testing.T) {
	txns := []model.Transaction{
		expense("Jan 1", -30),  // Sunday
		expense("Jan 8", -30),  // Sunday
		expense("Jan 15", -30), // Sunday
		expense("Jan 3", -30),  // Tuesday
	}

	got := DetectWeeklyPattern(txns, fixedNow)

	assert.Equal(t, PatternWeeklyPeak, got.Pattern)
	assert.Equal(t, "Sunday", got.PeakDay)
	assert.Equal(t, 75, got.PeakPercentage)
	assert.InDelta(t, 1.45, got.Multiplier(), 1e-9)
}

func TestDetectWeeklyPatternConsistent(t *testing.T) {
	txns := []model.Transaction{
		expense("Jan 2", -10), // Monday
		expense("Jan 3", -10), // Tuesday
		expense("Jan 4", -10), // Wednesday
		expense("Jan 5", -10), // Thursday
	}

	got := DetectWeeklyPattern(txns, fixedNow)

	assert.Equal(t, PatternConsistent, got.Pattern)
	assert.Equal(t, 25, got.PeakPercentage)
	assert.InDelta(t, 1.0, got.Multiplier(), 1e-9)
}

func TestDetectWeeklyPatternNoUsableDates(t *testing.T) {
	txns := []model.Transaction{
		expense("garbage", -10),
	}

	got := DetectWeeklyPattern(txns, fixedNow)

	assert.Equal(t, PatternConsistent, got.Pattern)
	assert.Empty(t, got.PeakDay)
	assert.InDelta(t, 1.0, got.Multiplier(), 1e-9)
}
