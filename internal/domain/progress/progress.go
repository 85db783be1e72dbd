// Package progress computes the gamified view of a history: experience
// points, levels, day streaks and badges. Everything is recomputed from the
// full history on each call.
package progress

import (
	"sort"
	"time"

	"github.com/okian/mindscan/internal/domain/model"
)

// XP awarded per entry and per completed habit.
const (
	XPLowRisk      = 5
	XPModerateRisk = 3
	XPHighRisk     = 1
	XPPerHabit     = 1
	LevelSize      = 25
)

// Badge is one evaluated achievement.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Progress is the gamification summary of a device.
type Progress struct {
	XP          int     `json:"xp"`
	Level       int     `json:"level"`
	LevelXP     int     `json:"level_xp"`
	NextLevelAt int     `json:"next_level_at"`
	DayStreak   int     `json:"day_streak"`
	Badges      []Badge `json:"badges"`
}

// Compute evaluates XP, level, streak and every badge rule.
func Compute(history []model.HistoryEntry, habits []model.HabitRecord) Progress {
	xp := XP(history, habits)
	level := Level(xp)
	badges := make([]Badge, len(Rules))
	for i, r := range Rules {
		badges[i] = Badge{ID: r.ID, Title: r.Title, Description: r.Description, Earned: r.Earned(history)}
	}
	return Progress{
		XP:          xp,
		Level:       level,
		LevelXP:     xp - (level-1)*LevelSize,
		NextLevelAt: level * LevelSize,
		DayStreak:   DayStreak(history),
		Badges:      badges,
	}
}

// XP adds the per-risk points of every entry and one point per completed habit.
func XP(history []model.HistoryEntry, habits []model.HabitRecord) int {
	total := 0
	for _, e := range history {
		total += entryXP(e.Risk)
	}
	for _, h := range habits {
		total += h.Completed() * XPPerHabit
	}
	return total
}

func entryXP(r model.RiskLevel) int {
	switch r {
	case model.RiskLow:
		return XPLowRisk
	case model.RiskModerate:
		return XPModerateRisk
	default:
		return XPHighRisk
	}
}

// Level is floor(xp / LevelSize) + 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/LevelSize + 1
}

// DayStreak counts consecutive calendar days with a scan, ending at the most
// recent scan date.
func DayStreak(history []model.HistoryEntry) int {
	ds := days(history)
	if len(ds) == 0 {
		return 0
	}
	streak := 1
	for i := len(ds) - 1; i > 0; i-- {
		if !nextDay(ds[i-1].date, ds[i].date) {
			break
		}
		streak++
	}
	return streak
}

// day is one calendar date with the last entry recorded on it.
type day struct {
	date time.Time
	last model.HistoryEntry
}

// days groups entries by date in calendar order. Entries with malformed
// dates are skipped.
func days(history []model.HistoryEntry) []day {
	byDate := make(map[string]day, len(history))
	for _, e := range history {
		t, ok := e.Day()
		if !ok {
			continue
		}
		byDate[e.Date] = day{date: t, last: e}
	}
	out := make([]day, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}

func nextDay(a, b time.Time) bool {
	return a.AddDate(0, 0, 1).Equal(b)
}
