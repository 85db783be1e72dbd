package insight

import "github.com/okian/mindscan/internal/domain/model"

// Direction values shared by Trend and Prediction.
const (
	DirectionInsufficient = "insufficient"
	DirectionImproving    = "improving"
	DirectionWorsening    = "worsening"
	DirectionStable       = "stable"
)

// Trend texts.
const (
	TrendInsufficientText = "Not enough data for trend yet."
	TrendWorseningText    = "Your stress symptoms are rising compared to earlier this week."
	TrendImprovingText    = "Your pattern is improving compared to earlier this week."
	TrendStableText       = "Your level is fairly stable over the past few days."
)

// Trend compares the earlier and later half of the recent symptom indices.
type Trend struct {
	Sufficient  bool    `json:"sufficient"`
	Direction   string  `json:"direction"`
	Points      int     `json:"points"`
	EarlierMean float64 `json:"earlier_mean"`
	LaterMean   float64 `json:"later_mean"`
	Delta       float64 `json:"delta"`
	Text        string  `json:"text"`
}

// Trend looks at the last window entries' symptom indices. A rising symptom
// index means worsening.
func (e *Engine) Trend(history []model.HistoryEntry) Trend {
	recent := e.scored(history)
	if len(recent) > e.trendWindow {
		recent = recent[len(recent)-e.trendWindow:]
	}
	if len(recent) < e.trendMinPoints {
		return Trend{Direction: DirectionInsufficient, Points: len(recent), Text: TrendInsufficientText}
	}

	values := make([]float64, len(recent))
	for i, h := range recent {
		values[i] = h.SymptomIndex
	}
	mid := len(values) / 2
	earlier, later := mean(values[:mid]), mean(values[mid:])
	delta := later - earlier

	t := Trend{
		Sufficient:  true,
		Points:      len(values),
		EarlierMean: earlier,
		LaterMean:   later,
		Delta:       delta,
	}
	switch {
	case delta > e.trendThreshold:
		t.Direction, t.Text = DirectionWorsening, TrendWorseningText
	case delta < -e.trendThreshold:
		t.Direction, t.Text = DirectionImproving, TrendImprovingText
	default:
		t.Direction, t.Text = DirectionStable, TrendStableText
	}
	return t
}
