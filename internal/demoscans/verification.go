package demoscans

import (
	"fmt"
	"maps"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/progress"
)

// verifyResults checks the service's view against the simulated days and a
// local recomputation of progress.
func verifyResults(days []Day, obs observed) error {
	if len(obs.history) == 0 {
		return fmt.Errorf("%w: empty history", ErrVerification)
	}

	if err := verifyCoverage(days, obs.history, obs.habits); err != nil {
		return err
	}

	latest := obs.history[len(obs.history)-1]
	if obs.insights.Entry.ID != latest.ID {
		return fmt.Errorf("%w: insights entry %s is not the latest entry %s",
			ErrVerification, obs.insights.Entry.ID, latest.ID)
	}

	if err := verifyProgress(obs.insights.Insights.Progress, progress.Compute(obs.history, obs.habits)); err != nil {
		return err
	}

	counts := obs.summary.Counts
	if obs.summary.TotalScans != len(obs.history) {
		return fmt.Errorf("%w: summary counts %d scans, history holds %d",
			ErrVerification, obs.summary.TotalScans, len(obs.history))
	}
	if sum := counts.Green + counts.Yellow + counts.Red; sum != obs.summary.TotalScans {
		return fmt.Errorf("%w: risk counts add up to %d, expected %d",
			ErrVerification, sum, obs.summary.TotalScans)
	}
	return nil
}

// verifyCoverage requires a history entry and the uploaded checklist for
// every simulated date.
func verifyCoverage(days []Day, history []model.HistoryEntry, habits []model.HabitRecord) error {
	dates := make(map[string]struct{}, len(history))
	for _, e := range history {
		dates[e.Date] = struct{}{}
	}
	records := make(map[string]map[model.Habit]bool, len(habits))
	for _, r := range habits {
		records[r.Date] = r.Done
	}
	for _, d := range days {
		if _, ok := dates[d.Date]; !ok {
			return fmt.Errorf("%w: no history entry for %s", ErrVerification, d.Date)
		}
		if !maps.Equal(records[d.Date], d.Habits) {
			return fmt.Errorf("%w: habits for %s differ from the uploaded checklist", ErrVerification, d.Date)
		}
	}
	return nil
}

// verifyProgress compares the served gamification summary with want.
func verifyProgress(got, want progress.Progress) error {
	switch {
	case got.XP != want.XP:
		return fmt.Errorf("%w: xp %d, recomputed %d", ErrVerification, got.XP, want.XP)
	case got.Level != want.Level:
		return fmt.Errorf("%w: level %d, recomputed %d", ErrVerification, got.Level, want.Level)
	case got.DayStreak != want.DayStreak:
		return fmt.Errorf("%w: day streak %d, recomputed %d", ErrVerification, got.DayStreak, want.DayStreak)
	}
	return nil
}
