// Package predict derives spending forecasts from recorded transactions.
// Everything here is a pure computation over in-memory data; records whose
// dates cannot be resolved are skipped, never fatal.
package predict

// Slope returns the ordinary-least-squares slope of values against their
// indices, treating samples as equally spaced in time. Fewer than two
// samples have no trend.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	nf := float64(n)
	denom := nf*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}

	return (nf*sumXY - sumX*sumY) / denom
}
