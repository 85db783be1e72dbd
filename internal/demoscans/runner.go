package demoscans

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/okian/mindscan/internal/domain/insight"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/types"
	"github.com/okian/mindscan/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// observed is everything fetched back from the service after the uploads.
type observed struct {
	insights types.Assessment
	summary  insight.Summary
	history  []model.HistoryEntry
	habits   []model.HabitRecord
}

// Run executes the complete simulation: upload habits, submit scans in date
// order, replay one submission, then fetch and verify the derived view.
func Run(ctx context.Context, config *Config) (*Report, error) {
	cfg := config.withDefaults()
	log := cfg.Logger
	stats := Stats{StartTime: time.Now()}

	log.Info(ctx, "starting mindscan simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("days", cfg.Days),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Any("seed", cfg.Seed))

	client := NewClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if _, err := client.Get(ctx, "/healthz", nil); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate days against the served questionnaire
	var q types.QuestionnaireResponse
	if _, err := client.Get(ctx, "/questionnaire", &q); err != nil {
		return nil, fmt.Errorf("questionnaire retrieval failed: %w", err)
	}
	days := Generate(cfg, q.Questions)
	stats.DaysGenerated = len(days)
	log.Info(ctx, "generated days", logger.Int("count", len(days)), logger.String("strategy", q.Strategy))

	// Step 3: Upload habits concurrently
	saved, err := saveHabits(ctx, client, cfg.Workers, days)
	if err != nil {
		return nil, fmt.Errorf("habit upload failed: %w", err)
	}
	stats.HabitDaysSaved = saved

	// Step 4: Submit scans in order, then replay the last one
	submitScans(ctx, &cfg, client, days, &stats)
	if len(days) > 0 {
		submitScans(ctx, &cfg, client, days[len(days)-1:], &stats)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 5: Fetch the derived view
	obs, err := fetchObserved(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("result retrieval failed: %w", err)
	}

	// Step 6: Verify results
	if err := verifyResults(days, obs); err != nil {
		return nil, err
	}

	// Step 7: Save days to file
	if cfg.OutputFile != "" {
		if err := saveDaysToFile(cfg.OutputFile, days); err != nil {
			log.Warn(ctx, "failed to save days to file", logger.Error(err))
		} else {
			log.Info(ctx, "days saved to file", logger.String("filename", cfg.OutputFile))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	progress := obs.insights.Insights.Progress
	report := &Report{
		Stats:   stats,
		Days:    days,
		XP:      progress.XP,
		Level:   progress.Level,
		Streak:  progress.DayStreak,
		Latest:  obs.insights.Result.Risk,
		Total:   obs.summary.TotalScans,
		Average: obs.summary.AverageWellness,
	}
	displayFinalStats(ctx, log, report)
	return report, nil
}

// saveHabits PUTs every day's checklist with at most workers requests in
// flight and stops at the first failure.
func saveHabits(ctx context.Context, client *Client, workers int, days []Day) (int, error) {
	var saved atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, day := range days {
		g.Go(func() error {
			body := types.HabitsRequest{Done: day.Habits}
			if _, err := client.Put(gctx, "/habits/"+day.Date, body, nil); err != nil {
				return err
			}
			saved.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return int(saved.Load()), err
}

// submitScans posts days sequentially so history stays in date order.
// Failures are counted and logged; the run carries on.
func submitScans(ctx context.Context, cfg *Config, client *Client, days []Day, stats *Stats) {
	for _, day := range days {
		if ctx.Err() != nil {
			return
		}
		req := types.ScanRequest{Answers: day.Answers, SubmissionID: day.SubmissionID, Date: day.Date}
		var resp types.ScanResponse
		status, err := client.Post(ctx, "/scans", req, &resp)
		switch {
		case err != nil:
			stats.ScansFailed++
			cfg.Logger.Warn(ctx, "scan submission failed", logger.String("date", day.Date), logger.Error(err))
		case status == http.StatusOK && resp.Duplicate:
			stats.ScansDuplicate++
			cfg.Logger.Debug(ctx, "scan acknowledged as duplicate", logger.String("date", day.Date))
		default:
			stats.ScansRecorded++
			if cfg.Verbose && resp.Assessment != nil {
				cfg.Logger.Info(ctx, "scan recorded",
					logger.String("date", day.Date),
					logger.Float64("strain", day.Strain),
					logger.Float64("wellness", resp.Assessment.Result.Wellness),
					logger.String("risk", resp.Assessment.Result.Risk.String()))
			}
		}
	}
}

// fetchObserved reads the insights, summary, history and habits in parallel.
func fetchObserved(ctx context.Context, client *Client) (observed, error) {
	var (
		obs     observed
		history types.HistoryResponse
		habits  types.HabitsResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := client.Get(gctx, "/insights", &obs.insights)
		return err
	})
	g.Go(func() error {
		_, err := client.Get(gctx, "/summary", &obs.summary)
		return err
	})
	g.Go(func() error {
		_, err := client.Get(gctx, "/history", &history)
		return err
	})
	g.Go(func() error {
		_, err := client.Get(gctx, "/habits", &habits)
		return err
	})
	if err := g.Wait(); err != nil {
		return observed{}, err
	}
	obs.history, obs.habits = history.Entries, habits.Records
	return obs, nil
}

// saveDaysToFile writes the generated days as an indented JSON array.
func saveDaysToFile(filename string, days []Day) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal days: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, r *Report) {
	log.Info(ctx, "final statistics",
		logger.Int("daysGenerated", r.Stats.DaysGenerated),
		logger.Int("habitDaysSaved", r.Stats.HabitDaysSaved),
		logger.Int("scansRecorded", r.Stats.ScansRecorded),
		logger.Int("scansDuplicate", r.Stats.ScansDuplicate),
		logger.Int("scansFailed", r.Stats.ScansFailed),
		logger.Int("totalScans", r.Total),
		logger.Float64("averageWellness", r.Average),
		logger.String("latestRisk", r.Latest.String()),
		logger.Int("xp", r.XP),
		logger.Int("level", r.Level),
		logger.Int("dayStreak", r.Streak),
		logger.String("duration", r.Stats.Duration.String()))
}
