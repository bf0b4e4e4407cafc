package model

import "time"

// Subscription billing frequencies.
const (
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
	FrequencyWeekly  = "weekly"
)

// Subscription represents a recurring charge the user is tracking.
type Subscription struct {
	CreatedAt   time.Time
	Name        string
	Frequency   string
	Category    string
	RenewalDate string // ISO date (2006-01-02)
	ID          int64
	Amount      float64
	Active      bool
}

// MonthlyAmount normalizes the subscription cost to a monthly figure.
func (s *Subscription) MonthlyAmount() float64 {
	switch s.Frequency {
	case FrequencyYearly:
		return s.Amount / 12
	case FrequencyWeekly:
		return s.Amount * 4.33
	default:
		return s.Amount
	}
}

// SubscriptionSummary aggregates active subscription costs.
type SubscriptionSummary struct {
	CategoryBreakdown map[string]float64
	UpcomingRenewals  []Subscription
	MonthlyCost       float64
	YearlyCost        float64
	ActiveCount       int
}

// SummarizeSubscriptions computes cost totals, a per-category breakdown, and
// renewals due within the next seven days. Inactive subscriptions are
// excluded entirely.
func SummarizeSubscriptions(subs []Subscription, now time.Time) SubscriptionSummary {
	summary := SubscriptionSummary{
		CategoryBreakdown: make(map[string]float64),
	}

	weekOut := now.AddDate(0, 0, 7)

	for _, sub := range subs {
		if !sub.Active {
			continue
		}

		summary.ActiveCount++
		summary.MonthlyCost += sub.MonthlyAmount()
		summary.CategoryBreakdown[sub.Category] += sub.Amount

		renewal, err := time.Parse("2006-01-02", sub.RenewalDate)
		if err != nil {
			continue // Unparseable renewal dates are skipped
		}
		if !renewal.Before(now) && !renewal.After(weekOut) {
			summary.UpcomingRenewals = append(summary.UpcomingRenewals, sub)
		}
	}

	summary.YearlyCost = summary.MonthlyCost * 12

	return summary
}
