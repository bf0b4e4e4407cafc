// Package dates resolves the informal date tokens used on transactions
// ("Today", "Yesterday", "Jan 28") into calendar dates.
package dates

import (
	"strconv"
	"strings"
	"time"
)

var monthAbbrev = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// Parse resolves an informal date token against a reference time. It returns
// false for anything it cannot interpret; callers must exclude such records
// from date-dependent aggregation rather than fail.
//
// "Mon Day" tokens always resolve into the reference year, so a December
// token read in January lands eleven months in the future. Known limitation.
func Parse(token string, now time.Time) (time.Time, bool) {
	switch token {
	case "Today":
		return now, true
	case "Yesterday":
		return now.AddDate(0, 0, -1), true
	}

	parts := strings.Fields(token)
	if len(parts) != 2 {
		return time.Time{}, false
	}

	month, ok := monthAbbrev[parts[0]]
	if !ok {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location()), true
}

// Token renders a time as the canonical informal token, used when importing
// transactions that carry full dates.
func Token(t time.Time) string {
	return t.Format("Jan 2")
}

// TimeOfDay buckets an hour into morning, afternoon, or evening.
func TimeOfDay(t time.Time) string {
	switch {
	case t.Hour() < 12:
		return "morning"
	case t.Hour() < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
