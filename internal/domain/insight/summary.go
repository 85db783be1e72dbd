package insight

import (
	"sort"

	"github.com/okian/mindscan/internal/domain/model"
)

// DefaultChartDays is the number of distinct dates in the weekly chart.
const DefaultChartDays = 7

// RiskCounts tallies entries per risk label.
type RiskCounts struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// DailyAverage is the mean wellness of one calendar date.
type DailyAverage struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Scans   int     `json:"scans"`
}

// Summary is the whole-history overview. TotalScans, Counts and Last cover
// every entry; AverageWellness and Daily cover the entries of Strategy only
// when it is set.
type Summary struct {
	Strategy        string              `json:"strategy,omitempty"`
	TotalScans      int                 `json:"total_scans"`
	AverageWellness float64             `json:"average_wellness"`
	Last            *model.HistoryEntry `json:"last,omitempty"`
	Counts          RiskCounts          `json:"counts"`
	Daily           []DailyAverage      `json:"daily"`
}

// Summarize computes totals, average, last entry, label counts and the daily
// averages of the most recent DefaultChartDays dates over every entry.
func Summarize(history []model.HistoryEntry) Summary {
	return summarize(history, history)
}

// Summarize is like the package function but averages only the entries on
// the engine's scale.
func (e *Engine) Summarize(history []model.HistoryEntry) Summary {
	s := summarize(history, e.scored(history))
	s.Strategy = e.strategy
	return s
}

func summarize(history, scored []model.HistoryEntry) Summary {
	s := Summary{Daily: DailyAverages(scored, DefaultChartDays)}
	if len(scored) > 0 {
		var sum float64
		for _, h := range scored {
			sum += h.Wellness
		}
		s.AverageWellness = sum / float64(len(scored))
	}
	if len(history) == 0 {
		return s
	}
	for _, h := range history {
		switch h.Risk {
		case model.RiskLow:
			s.Counts.Green++
		case model.RiskModerate:
			s.Counts.Yellow++
		default:
			s.Counts.Red++
		}
	}
	last := history[len(history)-1]
	s.TotalScans = len(history)
	s.Last = &last
	return s
}

// DailyAverages groups entries by date and returns the last n dates in
// ascending order.
func DailyAverages(history []model.HistoryEntry, n int) []DailyAverage {
	byDate := map[string][]float64{}
	for _, h := range history {
		byDate[h.Date] = append(byDate[h.Date], h.Wellness)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if n > 0 && len(dates) > n {
		dates = dates[len(dates)-n:]
	}
	out := make([]DailyAverage, len(dates))
	for i, d := range dates {
		out[i] = DailyAverage{Date: d, Average: mean(byDate[d]), Scans: len(byDate[d])}
	}
	return out
}
