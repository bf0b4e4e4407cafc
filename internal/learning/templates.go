package learning

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/calmcoin/penny/internal/model"
)

// synthesize builds the display text and typed proposed-change payload for a
// suggestion. The learning signal only decides which type and category show
// up; numeric magnitudes here are not learned.
func synthesize(suggestionType model.SuggestionType, category string, rng *rand.Rand) model.Suggestion {
	lower := strings.ToLower(category)

	suggestion := model.Suggestion{
		Type:           suggestionType,
		Category:       category,
		DataReferences: []string{"Preference-weighted pattern detection"},
	}

	switch suggestionType {
	case model.SuggestionBudgetAdjustment:
		amount := float64(50 + rng.Intn(150))
		suggestion.Title = fmt.Sprintf("Adjust %s Budget", category)
		suggestion.Description = fmt.Sprintf("Consider optimizing your %s budget based on spending patterns.", lower)
		suggestion.Rationale = "Analysis suggests budget optimization opportunity."
		suggestion.ProposedChange = model.BudgetAdjustmentChange{Category: category, NewAmount: amount}

	case model.SuggestionRiskAlert:
		suggestion.Title = fmt.Sprintf("%s Spending Pattern", category)
		suggestion.Description = fmt.Sprintf("Unusual patterns detected in %s spending.", lower)
		suggestion.Rationale = "Pattern analysis suggests attention needed."
		suggestion.ProposedChange = model.RiskAlertChange{Alert: "monitor_category", CategoryID: category}

	case model.SuggestionCategoryRestructure:
		suggestion.Title = fmt.Sprintf("Restructure %s Spending", category)
		suggestion.Description = fmt.Sprintf("Consider restructuring your %s spending for efficiency.", lower)
		suggestion.Rationale = "Analysis suggests restructuring could improve financial flow."
		suggestion.ProposedChange = model.CategoryRestructureChange{Category: category, Action: "restructure"}

	case model.SuggestionSavingsOpportunity:
		target := float64(25 + rng.Intn(75))
		suggestion.Title = fmt.Sprintf("Savings Opportunity in %s", category)
		suggestion.Description = fmt.Sprintf("Trimming %s spending could free up money each month.", lower)
		suggestion.Rationale = "Recent spending leaves room for a modest savings target."
		suggestion.ProposedChange = model.SavingsOpportunityChange{Category: category, MonthlyTarget: target}

	case model.SuggestionSubscriptionOptimization:
		suggestion.Title = fmt.Sprintf("Review %s Subscriptions", category)
		suggestion.Description = fmt.Sprintf("Recurring %s charges may include services you no longer use.", lower)
		suggestion.Rationale = "Subscription spend accumulates quietly over time."
		suggestion.ProposedChange = model.SubscriptionOptimizationChange{Category: category, Action: "review_subscriptions"}

	case model.SuggestionSystemImprovement:
		suggestion.Title = "Improve Tracking Coverage"
		suggestion.Description = "Categorizing more transactions improves every forecast."
		suggestion.Rationale = "Predictions sharpen as more of your history is categorized."
		suggestion.ProposedChange = model.SystemImprovementChange{Note: "Review uncategorized transactions"}
	}

	return suggestion
}
