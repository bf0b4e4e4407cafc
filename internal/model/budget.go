package model

import "math"

// Budget tracks a spending ceiling for one category. Percentage is always
// derived from Spent/Budget at write time and never stored stale.
type Budget struct {
	Category   string
	ID         int64
	Budget     float64
	Spent      float64
	Percentage int
}

// RecomputePercentage refreshes the derived percentage. A non-positive
// ceiling yields 0 rather than a division error.
func (b *Budget) RecomputePercentage() {
	if b.Budget <= 0 {
		b.Percentage = 0
		return
	}
	b.Percentage = int(math.Round(b.Spent / b.Budget * 100))
}
