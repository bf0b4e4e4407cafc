// Package learning implements the preference-learning engine: it adjusts
// per-type and per-category weights from accept/reject decisions and uses
// them to steer which suggestion is generated next.
package learning

import (
	"time"

	"github.com/calmcoin/penny/internal/model"
)

// Weight bounds and update deltas. Rejection penalizes twice as hard as
// acceptance rewards, so unwanted suggestion kinds get rarer faster than
// wanted ones get more common.
const (
	WeightFloor   = 0.3
	WeightCeiling = 2.0

	acceptDelta = 0.1
	rejectDelta = -0.2

	defaultWeight = 1.0
)

// defaultCategories are the category weights every fresh store starts with.
var defaultCategories = []string{
	"Groceries",
	"Dining Out",
	"Rent",
	"Entertainment",
	"Transportation",
	"Education",
	"Shopping",
	"Healthcare",
}

// DecisionContext captures when a decision was made.
type DecisionContext struct {
	TimeOfDay string `json:"timeOfDay"`
	IsWeekend bool   `json:"isWeekend"`
}

// DecisionPattern is one entry in the append-only accept/reject logs.
type DecisionPattern struct {
	Timestamp time.Time            `json:"timestamp"`
	Type      model.SuggestionType `json:"type"`
	Category  string               `json:"category,omitempty"`
	Context   DecisionContext      `json:"context"`
}

// State is the full preference-learning state. Operations on it return new
// values rather than mutating shared maps, so callers can hold before/after
// snapshots safely.
type State struct {
	TypeWeights     map[model.SuggestionType]float64
	CategoryWeights map[string]float64
	Accepted        []DecisionPattern
	Rejected        []DecisionPattern
}

// NewState returns the neutral initial state: every known suggestion type
// and default category at weight 1.0, empty decision logs.
func NewState() State {
	state := State{
		TypeWeights:     make(map[model.SuggestionType]float64, len(model.SuggestionTypes)),
		CategoryWeights: make(map[string]float64, len(defaultCategories)),
	}
	for _, t := range model.SuggestionTypes {
		state.TypeWeights[t] = defaultWeight
	}
	for _, c := range defaultCategories {
		state.CategoryWeights[c] = defaultWeight
	}
	return state
}

// Clone deep-copies the state.
func (s State) Clone() State {
	out := State{
		TypeWeights:     make(map[model.SuggestionType]float64, len(s.TypeWeights)),
		CategoryWeights: make(map[string]float64, len(s.CategoryWeights)),
		Accepted:        make([]DecisionPattern, len(s.Accepted)),
		Rejected:        make([]DecisionPattern, len(s.Rejected)),
	}
	for k, v := range s.TypeWeights {
		out.TypeWeights[k] = v
	}
	for k, v := range s.CategoryWeights {
		out.CategoryWeights[k] = v
	}
	copy(out.Accepted, s.Accepted)
	copy(out.Rejected, s.Rejected)
	return out
}

// WeightForType returns the current weight for a suggestion type, defaulting
// to neutral for types never seen before.
func (s State) WeightForType(t model.SuggestionType) float64 {
	if w, ok := s.TypeWeights[t]; ok {
		return w
	}
	return defaultWeight
}

// WeightForCategory returns the current weight for a category, defaulting to
// neutral for categories never seen before.
func (s State) WeightForCategory(category string) float64 {
	if w, ok := s.CategoryWeights[category]; ok {
		return w
	}
	return defaultWeight
}

// TotalDecisions counts all logged accept/reject decisions.
func (s State) TotalDecisions() int {
	return len(s.Accepted) + len(s.Rejected)
}

// applyDecision returns a new state with the weight deltas applied and the
// pattern appended to the matching log.
func (s State) applyDecision(suggestionType model.SuggestionType, category string, accepted bool, pattern DecisionPattern) State {
	delta := rejectDelta
	if accepted {
		delta = acceptDelta
	}

	out := s.Clone()
	out.TypeWeights[suggestionType] = clampWeight(s.WeightForType(suggestionType) + delta)
	if category != "" {
		out.CategoryWeights[category] = clampWeight(s.WeightForCategory(category) + delta)
	}

	if accepted {
		out.Accepted = append(out.Accepted, pattern)
	} else {
		out.Rejected = append(out.Rejected, pattern)
	}
	return out
}

func clampWeight(w float64) float64 {
	if w < WeightFloor {
		return WeightFloor
	}
	if w > WeightCeiling {
		return WeightCeiling
	}
	return w
}
