package model

// Axis is one symptom dimension derived from grouped answers.
type Axis string

const (
	AxisMood    Axis = "mood"
	AxisAnxiety Axis = "anxiety"
	AxisStress  Axis = "stress"
)

// AxisOrder is the fixed priority used wherever axes must be visited
// deterministically (pattern tie-break, rendering).
var AxisOrder = []Axis{AxisMood, AxisAnxiety, AxisStress}

// Answers maps question IDs to integer answers on small ordinal scales.
type Answers map[string]int

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Scale describes the bounds and thresholds of a composite wellness score.
type Scale struct {
	Max float64 `json:"max"`
	// HighRiskBelow and ModerateBelow split wellness into risk labels.
	HighRiskBelow float64 `json:"high_risk_below"`
	ModerateBelow float64 `json:"moderate_below"`
	// BandMedium and BandHigh split the symptom index into bands.
	BandMedium float64 `json:"band_medium"`
	BandHigh   float64 `json:"band_high"`
}

// Clamp bounds v into [0, Max].
func (s Scale) Clamp(v float64) float64 {
	return Clamp(v, 0, s.Max)
}

// Classify maps a wellness score to its risk label.
func (s Scale) Classify(wellness float64) RiskLevel {
	switch {
	case wellness < s.HighRiskBelow:
		return RiskHigh
	case wellness < s.ModerateBelow:
		return RiskModerate
	default:
		return RiskLow
	}
}

// Band maps a symptom index to its band.
func (s Scale) Band(symptomIndex float64) Band {
	switch {
	case symptomIndex >= s.BandHigh:
		return BandHigh
	case symptomIndex >= s.BandMedium:
		return BandMedium
	default:
		return BandLow
	}
}

// ScoreResult is the immutable outcome of scoring one questionnaire.
type ScoreResult struct {
	Strategy     string           `json:"strategy"`
	Wellness     float64          `json:"wellness"`
	Max          float64          `json:"max"`
	SymptomIndex float64          `json:"symptom_index"`
	Risk         RiskLevel        `json:"risk"`
	Label        string           `json:"label"`
	Axes         map[Axis]float64 `json:"axes,omitempty"`
	RawAxes      map[Axis]float64 `json:"raw_axes,omitempty"`
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
