package insight

import "github.com/okian/mindscan/internal/domain/model"

// Pattern names the dominant symptom axis of a scan.
type Pattern struct {
	Axis  model.Axis `json:"axis,omitempty"`
	Title string     `json:"title"`
}

// BalancedTitle is used when a result carries no axes.
const BalancedTitle = "Balanced pattern"

var patternTitles = map[model.Axis]string{
	model.AxisMood:    "Low mood pattern",
	model.AxisAnxiety: "Anxiety / worry pattern",
	model.AxisStress:  "Overload / tension pattern",
}

// Classify picks the axis with the highest value. Ties go to the first axis
// in model.AxisOrder.
func Classify(r model.ScoreResult) Pattern {
	var (
		best  model.Axis
		found bool
		top   float64
	)
	for _, a := range model.AxisOrder {
		v, ok := r.Axes[a]
		if !ok {
			continue
		}
		if !found || v > top {
			best, top, found = a, v, true
		}
	}
	if !found {
		return Pattern{Title: BalancedTitle}
	}
	return Pattern{Axis: best, Title: patternTitles[best]}
}
