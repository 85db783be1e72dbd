package insight

import "github.com/okian/mindscan/internal/domain/model"

// Prediction texts.
const (
	PredictionInsufficientText = "After one scan it’s still too early to predict tomorrow."
	PredictionHeavierText      = "If nothing changes, tomorrow may feel a bit heavier. Small actions today can help soften it."
	PredictionLighterText      = "If you keep your current habits, tomorrow is likely to feel slightly lighter than today."
	PredictionSteadyText       = "Your pattern is quite steady, tomorrow will likely feel similar to today unless something big changes."
)

// Prediction is a damped linear extrapolation of the recent wellness scores.
type Prediction struct {
	Sufficient bool             `json:"sufficient"`
	Value      float64          `json:"value"`
	Risk       *model.RiskLevel `json:"risk,omitempty"`
	Label      string           `json:"label,omitempty"`
	Direction  string           `json:"direction"`
	Text       string           `json:"text"`
}

// Predict extrapolates last + k*(last - first) over the last few wellness
// scores, clamps into the scale and labels the result like a real score.
func (e *Engine) Predict(history []model.HistoryEntry) Prediction {
	history = e.scored(history)
	if len(history) < e.predictionPoints {
		return Prediction{Direction: DirectionInsufficient, Text: PredictionInsufficientText}
	}
	recent := history[len(history)-e.predictionPoints:]
	first, last := recent[0].Wellness, recent[len(recent)-1].Wellness
	slope := last - first

	value := e.scale.Clamp(last + e.damping*slope)
	risk := e.scale.Classify(value)
	p := Prediction{
		Sufficient: true,
		Value:      value,
		Risk:       &risk,
		Label:      risk.Title(),
	}
	switch {
	case slope < -e.predictionDeadBand:
		p.Direction, p.Text = DirectionWorsening, PredictionHeavierText
	case slope > e.predictionDeadBand:
		p.Direction, p.Text = DirectionImproving, PredictionLighterText
	default:
		p.Direction, p.Text = DirectionStable, PredictionSteadyText
	}
	return p
}
