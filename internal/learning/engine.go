package learning

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/calmcoin/penny/internal/common"
	"github.com/calmcoin/penny/internal/dates"
	"github.com/calmcoin/penny/internal/model"
	"github.com/calmcoin/penny/internal/service"
)

// Decision is the user's verdict on a suggestion.
type Decision string

// Decisions.
const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// Confidence bounds for generated suggestions. The score is a bounded
// heuristic, not a probability.
const (
	confidenceBase    = 70
	confidenceCeiling = 95
)

// Engine owns the preference weight state and turns user decisions into
// weight updates and new suggestions. It is an explicit session-owned value;
// every mutation is a read-modify-write-persist sequence under one lock.
type Engine struct {
	store service.WeightStore
	now   func() time.Time
	rng   *rand.Rand
	state State
	mu    sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand overrides the randomness source, used by tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// NewEngine creates an engine with neutral weights. Call Load to hydrate
// persisted state.
func NewEngine(store service.WeightStore, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		state: NewState(),
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load hydrates the engine from the weight store. Absent or unreadable data
// falls back to neutral defaults; startup never fails on a bad weight file.
func (e *Engine) Load(ctx context.Context) error {
	data, err := e.store.LoadWeights(ctx)
	if err != nil {
		common.LogError(err, "failed to load learning weights, starting neutral", nil)
		return nil
	}
	if data == nil {
		return nil
	}

	state, err := UnmarshalState(data)
	if err != nil {
		common.LogError(err, "corrupt learning weights, starting neutral", nil)
		return nil
	}

	e.mu.Lock()
	e.state = state
	e.mu.Unlock()

	slog.Debug("loaded learning weights",
		"types", len(state.TypeWeights),
		"categories", len(state.CategoryWeights),
		"decisions", state.TotalDecisions())
	return nil
}

// RecordDecision applies a decision to a pending suggestion: the weight
// deltas, the pattern log append, the suggestion's status flip, and the
// persist happen as one logical step. Deciding an already-decided
// suggestion is refused so replays cannot double-apply deltas.
func (e *Engine) RecordDecision(ctx context.Context, suggestion *model.Suggestion, decision Decision) error {
	if suggestion == nil {
		return fmt.Errorf("%w: nil suggestion", common.ErrInvalidInput)
	}
	if decision != DecisionAccepted && decision != DecisionRejected {
		return fmt.Errorf("%w: decision %q", common.ErrInvalidInput, decision)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if suggestion.Terminal() {
		return fmt.Errorf("%w: suggestion %d is %s", common.ErrAlreadyDecided, suggestion.ID, suggestion.Status)
	}

	now := e.now()
	pattern := DecisionPattern{
		Type:      suggestion.Type,
		Category:  suggestion.Category,
		Timestamp: now,
		Context: DecisionContext{
			TimeOfDay: dates.TimeOfDay(now),
			IsWeekend: dates.IsWeekend(now),
		},
	}

	accepted := decision == DecisionAccepted
	e.state = e.state.applyDecision(suggestion.Type, suggestion.Category, accepted, pattern)

	if accepted {
		suggestion.Status = model.StatusAccepted
	} else {
		suggestion.Status = model.StatusRejected
	}

	e.persist(ctx)
	return nil
}

// Generate synthesizes a new pending suggestion biased toward the
// highest-weighted type and category.
func (e *Engine) Generate(_ context.Context) model.Suggestion {
	e.mu.Lock()
	defer e.mu.Unlock()

	topType := e.topType()
	topCategory := e.topCategory()

	typeWeight := e.state.WeightForType(topType)
	categoryWeight := e.state.WeightForCategory(topCategory)

	confidence := confidenceBase + int((typeWeight-1)*10+(categoryWeight-1)*5)
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}
	if confidence < confidenceBase {
		confidence = confidenceBase
	}

	suggestion := synthesize(topType, topCategory, e.rng)
	suggestion.Confidence = confidence
	suggestion.Status = model.StatusPending
	suggestion.CreatedAt = e.now()

	return suggestion
}

// topType ranks suggestion types by weight; ties break by declaration order.
func (e *Engine) topType() model.SuggestionType {
	top := model.SuggestionTypes[0]
	best := e.state.WeightForType(top)
	for _, t := range model.SuggestionTypes[1:] {
		if w := e.state.WeightForType(t); w > best {
			top, best = t, w
		}
	}
	return top
}

// topCategory ranks categories by weight; ties break alphabetically so
// generation stays deterministic.
func (e *Engine) topCategory() string {
	top := ""
	best := -1.0
	for category, w := range e.state.CategoryWeights {
		if w > best || (w == best && category < top) {
			top, best = category, w
		}
	}
	if top == "" {
		top = defaultCategories[0]
	}
	return top
}

// Insights summarizes what the engine has learned so far.
func (e *Engine) Insights() Insights {
	e.mu.Lock()
	defer e.mu.Unlock()
	return buildInsights(e.state)
}

// Reset restores neutral weights, clears both pattern logs, and persists
// the cleared state. Calling it repeatedly is harmless.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = NewState()
	e.persist(ctx)
	return nil
}

// State returns a snapshot of the current learning state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// persist writes the current state through the weight store. Durability is
// best-effort: a save failure is logged and the in-memory state stands.
func (e *Engine) persist(ctx context.Context) {
	data, err := MarshalState(e.state, e.now())
	if err != nil {
		common.LogError(err, "failed to encode learning weights", nil)
		return
	}
	if err := e.store.SaveWeights(ctx, data); err != nil {
		common.LogError(err, "failed to save learning weights, continuing in memory", nil)
	}
}
