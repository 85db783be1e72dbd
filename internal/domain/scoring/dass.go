package scoring

import "github.com/okian/mindscan/internal/domain/model"

// DASSLifestyleV2 is the three-axis model with lifestyle adjustments.
const DASSLifestyleV2 = "dass-lifestyle-v2"

// LifestyleFactor turns one lifestyle answer into a signed deviation:
// Orientation * (answer - Neutral).
type LifestyleFactor struct {
	Question    string
	Neutral     float64
	Orientation float64
}

// AxisSpec sums Questions into one raw axis and adds each lifestyle
// deviation times its weight. Factors absent from Weights do not apply.
type AxisSpec struct {
	Axis      model.Axis
	Questions []string
	Weights   map[string]float64
}

// DASSConfig fully describes a three-axis strategy version.
type DASSConfig struct {
	Name      string
	Questions []Question
	Factors   []LifestyleFactor
	Axes      []AxisSpec
	// RawMax is the theoretical maximum of one raw axis.
	RawMax float64
	Scale  model.Scale
}

// DASSLifestyleV2Config returns the weights of the current revision.
func DASSLifestyleV2Config() DASSConfig {
	return DASSConfig{
		Name: DASSLifestyleV2,
		Questions: []Question{
			{ID: "q1", Prompt: "I found it hard to feel positive or interested in things.", Min: 0, Max: 3},
			{ID: "q2", Prompt: "I felt down, sad or hopeless.", Min: 0, Max: 3},
			{ID: "q3", Prompt: "I had little energy or motivation to start tasks.", Min: 0, Max: 3},
			{ID: "q4", Prompt: "I felt nervous, anxious or on edge.", Min: 0, Max: 3},
			{ID: "q5", Prompt: "I worried a lot about different things.", Min: 0, Max: 3},
			{ID: "q6", Prompt: "I noticed physical signs of anxiety (racing heart, shaking).", Min: 0, Max: 3},
			{ID: "q7", Prompt: "I found it hard to relax.", Min: 0, Max: 3},
			{ID: "q8", Prompt: "I felt irritable or easily annoyed.", Min: 0, Max: 3},
			{ID: "q9", Prompt: "I felt overwhelmed by tasks or deadlines.", Min: 0, Max: 3},
			{ID: "sleep", Prompt: "How well did you sleep last night?", Min: 1, Max: 4},
			{ID: "screen", Prompt: "How much leisure screen time did you have today?", Min: 0, Max: 4},
			{ID: "move", Prompt: "How much did you move or exercise today?", Min: 0, Max: 2},
			{ID: "support", Prompt: "Did you talk with someone you trust today?", Min: 0, Max: 2},
		},
		Factors: []LifestyleFactor{
			{Question: "sleep", Neutral: 3, Orientation: -1},
			{Question: "screen", Neutral: 2, Orientation: 1},
			{Question: "move", Neutral: 1, Orientation: -1},
			{Question: "support", Neutral: 1, Orientation: -1},
		},
		Axes: []AxisSpec{
			{
				Axis:      model.AxisMood,
				Questions: []string{"q1", "q2", "q3"},
				Weights:   map[string]float64{"sleep": 0.7, "screen": 0.5, "move": -0.7, "support": -0.8},
			},
			{
				Axis:      model.AxisAnxiety,
				Questions: []string{"q4", "q5", "q6"},
				Weights:   map[string]float64{"sleep": 0.5, "screen": 0.8, "move": -0.6},
			},
			{
				Axis:      model.AxisStress,
				Questions: []string{"q7", "q8", "q9"},
				Weights:   map[string]float64{"sleep": 1.0, "screen": 1.0, "move": -0.5},
			},
		},
		RawMax: 9,
		Scale:  model.Scale{Max: 12, HighRiskBelow: 4, ModerateBelow: 8, BandMedium: 4, BandHigh: 8},
	}
}

// DASS scores answers on symptom axes and inverts their mean into wellness.
type DASS struct {
	cfg DASSConfig
	q   Questionnaire
}

// NewDASS builds a three-axis strategy from cfg.
func NewDASS(cfg DASSConfig) *DASS {
	return &DASS{cfg: cfg, q: Questionnaire{Questions: cfg.Questions}}
}

// Name implements Strategy.
func (d *DASS) Name() string { return d.cfg.Name }

// Questionnaire implements Strategy.
func (d *DASS) Questionnaire() Questionnaire { return d.q }

// Scale implements Strategy.
func (d *DASS) Scale() model.Scale { return d.cfg.Scale }

// Compute implements Strategy.
func (d *DASS) Compute(answers model.Answers) (model.ScoreResult, error) {
	if err := d.q.Validate(answers); err != nil {
		return model.ScoreResult{}, err
	}

	deviation := make(map[string]float64, len(d.cfg.Factors))
	for _, f := range d.cfg.Factors {
		deviation[f.Question] = f.Orientation * (float64(answers[f.Question]) - f.Neutral)
	}

	scale := d.cfg.Scale
	axes := make(map[model.Axis]float64, len(d.cfg.Axes))
	raw := make(map[model.Axis]float64, len(d.cfg.Axes))
	var sum float64
	for _, spec := range d.cfg.Axes {
		var r float64
		for _, id := range spec.Questions {
			r += float64(answers[id])
		}
		adjusted := r
		for _, f := range d.cfg.Factors {
			adjusted += spec.Weights[f.Question] * deviation[f.Question]
		}
		normalized := scale.Clamp(adjusted / d.cfg.RawMax * scale.Max)
		raw[spec.Axis] = r
		axes[spec.Axis] = normalized
		sum += normalized
	}

	var index float64
	if n := len(d.cfg.Axes); n > 0 {
		index = sum / float64(n)
	}
	wellness := scale.Clamp(scale.Max - index)
	risk := scale.Classify(wellness)

	return model.ScoreResult{
		Strategy:     d.cfg.Name,
		Wellness:     wellness,
		Max:          scale.Max,
		SymptomIndex: index,
		Risk:         risk,
		Label:        risk.Title(),
		Axes:         axes,
		RawAxes:      raw,
	}, nil
}
