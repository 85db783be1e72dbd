package model

import "time"

// DateLayout is the calendar-day format used for history and habit keys.
const DateLayout = "2006-01-02"

// Lifestyle answers copied onto history entries when the strategy has them.
var LifestyleQuestions = []string{"sleep", "screen", "move", "support"}

// HistoryEntry is one persisted scan. Entries are never mutated.
type HistoryEntry struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Strategy     string           `json:"strategy"`
	Wellness     float64          `json:"wellness"`
	Risk         RiskLevel        `json:"risk"`
	SymptomIndex float64          `json:"symptom_index"`
	Axes         map[Axis]float64 `json:"axes,omitempty"`
	Lifestyle    map[string]int   `json:"lifestyle,omitempty"`
}

// NewHistoryEntry builds the record appended after a scan.
func NewHistoryEntry(id, date string, r ScoreResult, answers Answers) HistoryEntry {
	e := HistoryEntry{
		ID:           id,
		Date:         date,
		Strategy:     r.Strategy,
		Wellness:     r.Wellness,
		Risk:         r.Risk,
		SymptomIndex: r.SymptomIndex,
	}
	if len(r.Axes) > 0 {
		e.Axes = make(map[Axis]float64, len(r.Axes))
		for k, v := range r.Axes {
			e.Axes[k] = v
		}
	}
	for _, q := range LifestyleQuestions {
		v, ok := answers[q]
		if !ok {
			continue
		}
		if e.Lifestyle == nil {
			e.Lifestyle = make(map[string]int, len(LifestyleQuestions))
		}
		e.Lifestyle[q] = v
	}
	return e
}

// Result rebuilds the score view of a stored entry. Raw axes are not stored.
func (e HistoryEntry) Result(max float64) ScoreResult {
	return ScoreResult{
		Strategy:     e.Strategy,
		Wellness:     e.Wellness,
		Max:          max,
		SymptomIndex: e.SymptomIndex,
		Risk:         e.Risk,
		Label:        e.Risk.Title(),
		Axes:         e.Axes,
	}
}

// Day parses the entry date. ok is false for malformed dates.
func (e HistoryEntry) Day() (time.Time, bool) {
	t, err := time.Parse(DateLayout, e.Date)
	return t, err == nil
}
