// Package health computes a heuristic financial health score from the
// user's transactions and budgets.
package health

import (
	"math"
	"time"

	"github.com/calmcoin/penny/internal/dates"
	"github.com/calmcoin/penny/internal/model"
)

// Component weights. Savings and budget adherence dominate the score.
const (
	savingsWeight   = 0.3
	budgetWeight    = 0.3
	diversityWeight = 0.2
	frequencyWeight = 0.2
)

// Breakdown exposes the individual component scores behind the total.
type Breakdown struct {
	SavingsScore   int
	BudgetScore    int
	DiversityScore int
	FrequencyScore int
}

// Score is the overall financial health assessment.
type Score struct {
	Rating          string
	Color           string
	Recommendations []string
	Breakdown       Breakdown
	Total           int
}

// Calculate scores financial health on a 0-100 scale from savings rate,
// budget adherence, category diversity, and recent activity.
func Calculate(txns []model.Transaction, budgets []model.Budget, now time.Time) Score {
	var income, expenses float64
	categories := make(map[string]struct{})
	recentCount := 0
	cutoff := now.AddDate(0, 0, -30)

	for i := range txns {
		if txns[i].Amount > 0 {
			income += txns[i].Amount
		} else {
			expenses += math.Abs(txns[i].Amount)
		}
		categories[txns[i].Category] = struct{}{}

		if date, ok := dates.Parse(txns[i].Date, now); ok && date.After(cutoff) {
			recentCount++
		}
	}

	var savingsRate float64
	if income > 0 {
		savingsRate = (income - expenses) / income * 100
	}
	savingsScore := math.Min(100, math.Max(0, savingsRate*3))

	budgetScore := 100.0
	if len(budgets) > 0 {
		total := 0.0
		for i := range budgets {
			switch {
			case budgets[i].Percentage <= 80:
				total += 100
			case budgets[i].Percentage <= 100:
				total += 50
			}
		}
		budgetScore = total / float64(len(budgets))
	}

	diversityScore := math.Min(100, float64(len(categories))*20)
	frequencyScore := math.Min(100, float64(recentCount)*2)

	total := int(math.Round(
		savingsScore*savingsWeight +
			budgetScore*budgetWeight +
			diversityScore*diversityWeight +
			frequencyScore*frequencyWeight))

	rating, color := "Excellent", "green"
	switch {
	case total < 60:
		rating, color = "Needs Improvement", "red"
	case total < 75:
		rating, color = "Good", "yellow"
	case total < 90:
		rating, color = "Very Good", "blue"
	}

	return Score{
		Total:  total,
		Rating: rating,
		Color:  color,
		Breakdown: Breakdown{
			SavingsScore:   int(math.Round(savingsScore)),
			BudgetScore:    int(math.Round(budgetScore)),
			DiversityScore: int(math.Round(diversityScore)),
			FrequencyScore: int(math.Round(frequencyScore)),
		},
		Recommendations: recommendations(total, savingsRate, budgetScore),
	}
}

func recommendations(total int, savingsRate, budgetScore float64) []string {
	var recs []string

	if savingsRate < 20 {
		recs = append(recs, "Try to save at least 20% of your income")
	}
	if budgetScore < 70 {
		recs = append(recs, "Review budgets where spending exceeds 80%")
	}
	if total < 70 {
		recs = append(recs, "Consider tracking more categories for better insights")
	}

	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}
