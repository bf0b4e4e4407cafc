package learning

import (
	"math"
	"sort"

	"github.com/calmcoin/penny/internal/model"
)

// readinessThreshold is how many decisions the engine wants before calling
// its insights meaningful.
const readinessThreshold = 3

// TypePreference labels one suggestion type's learned weight.
type TypePreference struct {
	Type       model.SuggestionType
	Preference string
	Weight     float64
}

// TypePattern summarizes accept/reject history for one suggestion type.
type TypePattern struct {
	Type           model.SuggestionType
	Decisions      int
	Accepted       int
	AcceptanceRate int
}

// Insights is a read-only summary of the learning state.
type Insights struct {
	TypePreferences  []TypePreference
	Patterns         []TypePattern
	TotalDecisions   int
	LearningProgress int
	Ready            bool
}

func buildInsights(state State) Insights {
	total := state.TotalDecisions()

	progress := total * 10
	if progress > 100 {
		progress = 100
	}

	prefs := make([]TypePreference, 0, len(state.TypeWeights))
	for _, t := range model.SuggestionTypes {
		w := state.WeightForType(t)
		label := "Neutral"
		if w > defaultWeight {
			label = "High"
		} else if w < defaultWeight {
			label = "Low"
		}
		prefs = append(prefs, TypePreference{Type: t, Weight: w, Preference: label})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].Weight > prefs[j].Weight
	})

	return Insights{
		Ready:            total >= readinessThreshold,
		TotalDecisions:   total,
		LearningProgress: progress,
		TypePreferences:  prefs,
		Patterns:         typePatterns(state),
	}
}

// typePatterns computes per-type acceptance rates over the decision logs.
func typePatterns(state State) []TypePattern {
	accepted := make(map[model.SuggestionType]int)
	decisions := make(map[model.SuggestionType]int)

	for _, p := range state.Accepted {
		accepted[p.Type]++
		decisions[p.Type]++
	}
	for _, p := range state.Rejected {
		decisions[p.Type]++
	}

	var patterns []TypePattern
	for _, t := range model.SuggestionTypes {
		n := decisions[t]
		if n == 0 {
			continue
		}
		patterns = append(patterns, TypePattern{
			Type:           t,
			Decisions:      n,
			Accepted:       accepted[t],
			AcceptanceRate: int(math.Round(float64(accepted[t]) / float64(n) * 100)),
		})
	}
	return patterns
}
