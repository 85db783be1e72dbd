package insight

import (
	"fmt"

	"github.com/okian/mindscan/internal/domain/model"
)

// Impact of a habit on the wellness score.
type Impact string

const (
	ImpactPositive     Impact = "positive"
	ImpactNegative     Impact = "negative"
	ImpactInconclusive Impact = "inconclusive"
	ImpactInsufficient Impact = "insufficient"
)

// HabitImpact compares mean wellness on days a habit was and was not done.
// It is a plain two-group mean comparison, not a significance test.
type HabitImpact struct {
	Habit       model.Habit `json:"habit"`
	Title       string      `json:"title"`
	Impact      Impact      `json:"impact"`
	DoneMean    float64     `json:"done_mean"`
	NotDoneMean float64     `json:"not_done_mean"`
	Diff        float64     `json:"diff"`
	DoneCount   int         `json:"done_count"`
	NotDone     int         `json:"not_done_count"`
	Text        string      `json:"text"`
}

// HabitImpacts evaluates every tracked habit. Only entries whose date has a
// habit record take part; each entry contributes its own score.
func (e *Engine) HabitImpacts(history []model.HistoryEntry, habits []model.HabitRecord) []HabitImpact {
	byDate := make(map[string]map[model.Habit]bool, len(habits))
	for _, r := range habits {
		byDate[r.Date] = r.Done
	}

	history = e.scored(history)
	out := make([]HabitImpact, 0, len(model.Habits))
	for _, h := range model.Habits {
		var done, notDone []float64
		for _, entry := range history {
			rec, ok := byDate[entry.Date]
			if !ok {
				continue
			}
			if rec[h] {
				done = append(done, entry.Wellness)
			} else {
				notDone = append(notDone, entry.Wellness)
			}
		}
		out = append(out, e.compare(h, done, notDone))
	}
	return out
}

func (e *Engine) compare(h model.Habit, done, notDone []float64) HabitImpact {
	hi := HabitImpact{
		Habit:     h,
		Title:     h.Title(),
		DoneCount: len(done),
		NotDone:   len(notDone),
	}
	if len(done) < e.habitMinSamples || len(notDone) < e.habitMinSamples {
		hi.Impact = ImpactInsufficient
		hi.Text = fmt.Sprintf("Track %q on a few more days, with and without it, to compare.", hi.Title)
		return hi
	}
	hi.DoneMean, hi.NotDoneMean = mean(done), mean(notDone)
	hi.Diff = hi.DoneMean - hi.NotDoneMean
	switch {
	case hi.Diff > e.habitThreshold:
		hi.Impact = ImpactPositive
		hi.Text = fmt.Sprintf("On days with %q your score averaged %.1f points higher.", hi.Title, hi.Diff)
	case hi.Diff < -e.habitThreshold:
		hi.Impact = ImpactNegative
		hi.Text = fmt.Sprintf("On days with %q your score averaged %.1f points lower. This may be a coincidence; keep tracking.", hi.Title, -hi.Diff)
	default:
		hi.Impact = ImpactInconclusive
		hi.Text = fmt.Sprintf("No clear difference yet between days with and without %q.", hi.Title)
	}
	return hi
}
