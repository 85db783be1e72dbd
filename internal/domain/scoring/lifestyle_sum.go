package scoring

import (
	"math"

	"github.com/okian/mindscan/internal/domain/model"
)

// LifestyleSumV1 is the single-sum model of the lite revision.
const LifestyleSumV1 = "lifestyle-sum-v1"

// Penalty subtracts the part of an answer above Neutral.
type Penalty struct {
	Question string
	Neutral  float64
}

// LifestyleSumConfig describes a single-sum strategy version.
type LifestyleSumConfig struct {
	Name      string
	Questions []Question
	Positive  []string
	Penalties []Penalty
	Scale     model.Scale
}

// LifestyleSumV1Config returns the lite revision's items and cutoffs.
func LifestyleSumV1Config() LifestyleSumConfig {
	return LifestyleSumConfig{
		Name: LifestyleSumV1,
		Questions: []Question{
			{ID: "sleep", Prompt: "How well did you sleep last night?", Min: 0, Max: 4},
			{ID: "energy", Prompt: "How energetic do you feel today?", Min: 0, Max: 3},
			{ID: "motivation", Prompt: "How motivated do you feel today?", Min: 0, Max: 3},
			{ID: "mood", Prompt: "How would you rate your mood today?", Min: 0, Max: 3},
			{ID: "stress", Prompt: "How stressed do you feel today?", Min: 0, Max: 3},
			{ID: "screen", Prompt: "How much leisure screen time did you have today?", Min: 0, Max: 4},
		},
		Positive: []string{"sleep", "energy", "motivation", "mood"},
		Penalties: []Penalty{
			{Question: "stress", Neutral: 0},
			{Question: "screen", Neutral: 2},
		},
		Scale: model.Scale{Max: 13, HighRiskBelow: 5, ModerateBelow: 9, BandMedium: 5, BandHigh: 9},
	}
}

// LifestyleSum adds positive indicators and subtracts penalties.
type LifestyleSum struct {
	cfg LifestyleSumConfig
	q   Questionnaire
}

// NewLifestyleSum builds a single-sum strategy from cfg.
func NewLifestyleSum(cfg LifestyleSumConfig) *LifestyleSum {
	return &LifestyleSum{cfg: cfg, q: Questionnaire{Questions: cfg.Questions}}
}

// Name implements Strategy.
func (l *LifestyleSum) Name() string { return l.cfg.Name }

// Questionnaire implements Strategy.
func (l *LifestyleSum) Questionnaire() Questionnaire { return l.q }

// Scale implements Strategy.
func (l *LifestyleSum) Scale() model.Scale { return l.cfg.Scale }

// Compute implements Strategy. The raw sum is floored at zero; the symptom
// index is the complement of the score.
func (l *LifestyleSum) Compute(answers model.Answers) (model.ScoreResult, error) {
	if err := l.q.Validate(answers); err != nil {
		return model.ScoreResult{}, err
	}
	var sum float64
	for _, id := range l.cfg.Positive {
		sum += float64(answers[id])
	}
	for _, p := range l.cfg.Penalties {
		sum -= math.Max(0, float64(answers[p.Question])-p.Neutral)
	}
	scale := l.cfg.Scale
	wellness := scale.Clamp(sum)
	risk := scale.Classify(wellness)
	return model.ScoreResult{
		Strategy:     l.cfg.Name,
		Wellness:     wellness,
		Max:          scale.Max,
		SymptomIndex: scale.Max - wellness,
		Risk:         risk,
		Label:        risk.Title(),
	}, nil
}
