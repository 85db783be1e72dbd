package progress

import "github.com/okian/mindscan/internal/domain/model"

// Rule is a badge definition. Earned must be a pure predicate over the
// history; rules share no state.
type Rule struct {
	ID          string
	Title       string
	Description string
	Earned      func(history []model.HistoryEntry) bool
}

// Rules lists every badge in display order.
var Rules = []Rule{
	{ID: "first-scan", Title: "First check-in", Description: "Completed your first MindScan.", Earned: FirstScan},
	{ID: "week-of-checkins", Title: "Seven check-ins", Description: "Completed 7 scans in total.", Earned: WeekOfCheckins},
	{ID: "green-streak", Title: "Green streak", Description: "3 days in a row in the green zone.", Earned: GreenStreak},
	{ID: "comeback", Title: "Comeback", Description: "Reached green right after a red scan.", Earned: Comeback},
	{ID: "steady-streak", Title: "Steady habit", Description: "Checked in 5 days in a row.", Earned: SteadyStreak},
}

// FirstScan is earned by any entry.
func FirstScan(history []model.HistoryEntry) bool {
	return len(history) >= 1
}

// WeekOfCheckins is earned by 7 or more entries.
func WeekOfCheckins(history []model.HistoryEntry) bool {
	return len(history) >= 7
}

// GreenStreak is earned by 3 consecutive calendar days whose last entry is
// low risk.
func GreenStreak(history []model.HistoryEntry) bool {
	run := 0
	ds := days(history)
	for i, d := range ds {
		if d.last.Risk != model.RiskLow {
			run = 0
			continue
		}
		if i > 0 && run > 0 && nextDay(ds[i-1].date, d.date) {
			run++
		} else {
			run = 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}

// Comeback is earned by a low-risk entry immediately following a high-risk
// entry anywhere in the history.
func Comeback(history []model.HistoryEntry) bool {
	for i := 1; i < len(history); i++ {
		if history[i-1].Risk == model.RiskHigh && history[i].Risk == model.RiskLow {
			return true
		}
	}
	return false
}

// SteadyStreak is earned by a current day streak of 5 or more.
func SteadyStreak(history []model.HistoryEntry) bool {
	return DayStreak(history) >= 5
}
