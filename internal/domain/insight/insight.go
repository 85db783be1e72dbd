// Package insight derives textual and statistical insights from the current
// score and the stored history. Every function is a pure recomputation over
// its inputs and never mutates them.
package insight

import (
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/progress"
)

// Default engine parameters.
const (
	defaultTrendWindow        = 7
	defaultTrendMinPoints     = 4
	defaultTrendThreshold     = 1.0
	defaultDamping            = 0.6
	defaultPredictionPoints   = 3
	defaultPredictionDeadBand = 0.8
	defaultHabitThreshold     = 1.0
	defaultHabitMinSamples    = 2
)

// Insights bundles everything derived for one scan.
type Insights struct {
	Pattern    Pattern           `json:"pattern"`
	Band       model.Band        `json:"band"`
	Trend      Trend             `json:"trend"`
	Prediction Prediction        `json:"prediction"`
	Habits     []HabitImpact     `json:"habits"`
	Progress   progress.Progress `json:"progress"`
}

// Engine holds the thresholds for one score scale.
type Engine struct {
	scale              model.Scale
	strategy           string
	trendWindow        int
	trendMinPoints     int
	trendThreshold     float64
	damping            float64
	predictionPoints   int
	predictionDeadBand float64
	habitThreshold     float64
	habitMinSamples    int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTrendWindow sets how many recent entries the trend looks at.
func WithTrendWindow(n int) Option {
	return func(e *Engine) {
		if n >= 2 {
			e.trendWindow = n
		}
	}
}

// WithStrategy limits the score windows (trend, prediction, habit impact,
// average and daily chart) to entries scored by the named strategy, so that
// scores from scales with a different maximum are never mixed. Without it
// every entry is used.
func WithStrategy(name string) Option {
	return func(e *Engine) {
		e.strategy = name
	}
}

// WithTrendThreshold sets the mean difference that counts as a change.
func WithTrendThreshold(v float64) Option {
	return func(e *Engine) {
		if v > 0 {
			e.trendThreshold = v
		}
	}
}

// WithDamping sets the extrapolation factor of the prediction.
func WithDamping(k float64) Option {
	return func(e *Engine) {
		if k >= 0 {
			e.damping = k
		}
	}
}

// WithHabitThreshold sets the mean difference needed to report an impact.
func WithHabitThreshold(v float64) Option {
	return func(e *Engine) {
		if v > 0 {
			e.habitThreshold = v
		}
	}
}

// New creates an Engine for scale with the given options.
func New(scale model.Scale, opts ...Option) *Engine {
	e := &Engine{
		scale:              scale,
		trendWindow:        defaultTrendWindow,
		trendMinPoints:     defaultTrendMinPoints,
		trendThreshold:     defaultTrendThreshold,
		damping:            defaultDamping,
		predictionPoints:   defaultPredictionPoints,
		predictionDeadBand: defaultPredictionDeadBand,
		habitThreshold:     defaultHabitThreshold,
		habitMinSamples:    defaultHabitMinSamples,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.trendMinPoints > e.trendWindow {
		e.trendMinPoints = e.trendWindow
	}
	return e
}

// Scale returns the scale the engine was built for.
func (e *Engine) Scale() model.Scale { return e.scale }

// Strategy returns the strategy the score windows are limited to, or "".
func (e *Engine) Strategy() string { return e.strategy }

// Derive computes all insights for current given the full history (which
// normally already contains current as its last entry) and habit records.
// Progress counts every entry; it depends on risk labels only.
func (e *Engine) Derive(current model.ScoreResult, history []model.HistoryEntry, habits []model.HabitRecord) Insights {
	return Insights{
		Pattern:    Classify(current),
		Band:       e.scale.Band(current.SymptomIndex),
		Trend:      e.Trend(history),
		Prediction: e.Predict(history),
		Habits:     e.HabitImpacts(history, habits),
		Progress:   progress.Compute(history, habits),
	}
}

// scored returns the entries on the engine's scale, in order. The input is
// returned as is when no strategy is set.
func (e *Engine) scored(history []model.HistoryEntry) []model.HistoryEntry {
	if e.strategy == "" {
		return history
	}
	out := make([]model.HistoryEntry, 0, len(history))
	for _, h := range history {
		if h.Strategy == e.strategy {
			out = append(out, h)
		}
	}
	return out
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
