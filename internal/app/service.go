// Package service provides the application-state object that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/mindscan/internal/adapters/coach"
	"github.com/okian/mindscan/internal/adapters/repository"
	"github.com/okian/mindscan/internal/domain/advice"
	"github.com/okian/mindscan/internal/domain/breathing"
	"github.com/okian/mindscan/internal/domain/dedupe"
	"github.com/okian/mindscan/internal/domain/insight"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/scoring"
	"github.com/okian/mindscan/internal/domain/types"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
)

// Scan statuses reported by Submit.
const (
	StatusRecorded  = "recorded"
	StatusDuplicate = "duplicate"
)

// Service holds everything one device needs: the store, the active scoring
// strategy, the insight engine, the advice table, the coaching session, the
// submission deduper and the reminder.
type Service struct {
	// mu serializes store read-modify-write cycles and guards the state below.
	mu sync.Mutex

	// Core components
	store    *repository.Store
	strategy scoring.Strategy
	engine   *insight.Engine
	advice   *advice.Table
	coach    *coach.Session
	deduper  dedupe.Deduper
	reminder *Reminder

	// Configuration
	strategyName  string
	dedupeSize    int
	reminderDelay time.Duration
	onReminder    func(string)
	now           func() time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		strategyName:  scoring.Default,
		dedupeSize:    dedupe.DefaultMaxSize,
		reminderDelay: DefaultReminderDelay,
		advice:        advice.Default(),
		now:           time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start resolves the strategy, builds the remaining components and arms the
// reminder when the stored setting asks for it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting mindscan service...")

	strategy, err := scoring.Lookup(s.strategyName)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	s.strategy = strategy
	s.engine = insight.New(strategy.Scale(), insight.WithStrategy(strategy.Name()))

	if s.store == nil {
		s.store = repository.NewStore(repository.Instrument(repository.NewMemoryKV(), repository.DriverMemory),
			repository.WithLogger(s.logger))
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.coach == nil {
		s.coach = coach.NewSession(nil, coach.WithSessionLogger(s.logger))
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
		dedupe.WithOnEvict(func(id, entryID string) {
			s.logger.Debug(context.Background(), "submission id forgotten",
				logger.String("submissionID", id), logger.String("entryID", entryID))
		}),
	)
	s.reminder = NewReminder(s.reminderDelay, s.fireReminder)

	settings, err := s.store.Settings(ctx)
	if err != nil {
		return fmt.Errorf("start: load settings: %w", err)
	}
	if settings.ReminderEnabled {
		s.reminder.Arm()
	}
	s.refreshGaugesLocked(ctx)

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "mindscan service started",
		logger.String("strategy", strategy.Name()),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("reminder", settings.ReminderEnabled),
		logger.Bool("coach", s.coach.Available()),
	)

	return nil
}

// Stop cancels the reminder and closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping mindscan service...")

	s.reminder.Cancel()
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "mindscan service stopped")
}

func (s *Service) ready() error {
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

func (s *Service) today() string {
	return s.now().Format(model.DateLayout)
}

// checkDate accepts a calendar day that is not after today.
func (s *Service) checkDate(date string) error {
	if err := model.ValidateDate(date); err != nil {
		return err
	}
	if date > s.today() {
		return fmt.Errorf("%w: %s", ErrFutureDate, date)
	}
	return nil
}

// Questionnaire describes the active strategy.
func (s *Service) Questionnaire() (types.QuestionnaireResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return types.QuestionnaireResponse{}, err
	}
	return types.QuestionnaireResponse{
		Strategy:   s.strategy.Name(),
		Strategies: scoring.Names(),
		Questions:  s.strategy.Questionnaire().Questions,
		Scale:      s.strategy.Scale(),
	}, nil
}

// Submit validates and scores one questionnaire, appends the entry to the
// history and returns it with everything derived from it. A repeated
// submission ID is acknowledged without recording again.
func (s *Service) Submit(ctx context.Context, req types.ScanRequest) (types.ScanResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return types.ScanResponse{}, err
	}

	id := strings.TrimSpace(req.SubmissionID)
	if id != "" && s.deduper.SeenAndRecord(ctx, id) {
		metrics.RecordScanDuplicate()
		entryID, _ := s.deduper.EntryFor(ctx, id)
		s.logger.Debug(ctx, "duplicate scan submission",
			logger.String("submissionID", id),
			logger.String("entryID", entryID),
		)
		return types.ScanResponse{Status: StatusDuplicate, Duplicate: true, EntryID: entryID}, nil
	}

	resp, err := s.submitLocked(ctx, req)
	if err != nil {
		if id != "" {
			s.deduper.Unrecord(ctx, id)
		}
		return types.ScanResponse{}, err
	}
	if id != "" {
		s.deduper.Attach(ctx, id, resp.EntryID)
	}
	return resp, nil
}

func (s *Service) submitLocked(ctx context.Context, req types.ScanRequest) (types.ScanResponse, error) {
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.today()
	} else if err := s.checkDate(date); err != nil {
		return types.ScanResponse{}, err
	}

	start := time.Now()
	result, err := s.strategy.Compute(req.Answers)
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		if errors.Is(err, scoring.ErrIncompleteAnswers) {
			metrics.RecordValidationFailure()
		}
		return types.ScanResponse{}, err
	}

	entry := model.NewHistoryEntry(uuid.NewString(), date, result, req.Answers)
	history, err := s.store.AppendHistory(ctx, entry)
	if err != nil {
		return types.ScanResponse{}, fmt.Errorf("append history: %w", err)
	}
	habits, err := s.store.Habits(ctx)
	if err != nil {
		return types.ScanResponse{}, fmt.Errorf("load habits: %w", err)
	}

	metrics.RecordScan(result.Strategy, result.Risk.String())
	metrics.UpdateHistoryLength(len(history))
	s.logger.Info(ctx, "scan recorded",
		logger.String("entryID", entry.ID),
		logger.String("date", entry.Date),
		logger.Float64("wellness", entry.Wellness),
		logger.String("risk", entry.Risk.String()),
	)

	a := s.assess(result, entry, history, habits.Records())
	return types.ScanResponse{Status: StatusRecorded, EntryID: entry.ID, Assessment: &a}, nil
}

func (s *Service) assess(result model.ScoreResult, entry model.HistoryEntry, history []model.HistoryEntry, habits []model.HabitRecord) types.Assessment {
	engine := s.engine
	if result.Strategy != s.strategy.Name() {
		engine = insight.New(scoring.ScaleFor(result.Strategy), insight.WithStrategy(result.Strategy))
	}
	start := time.Now()
	ins := engine.Derive(result, history, habits)
	metrics.RecordInsightLatency(float64(time.Since(start).Microseconds()) / 1000)

	return types.Assessment{
		Entry:    entry,
		Result:   result,
		Insights: ins,
		Plan:     s.advice.Plan(ins.Band, ins.Pattern.Axis),
		Message:  s.advice.Message(result.Risk),
		Avatar:   s.advice.Avatar(result.Risk),
	}
}

// History returns every entry in insertion order.
func (s *Service) History(ctx context.Context) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.History(ctx)
}

// ClearHistory removes every entry.
func (s *Service) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.ClearHistory(ctx); err != nil {
		return err
	}
	metrics.UpdateHistoryLength(0)
	s.logger.Info(ctx, "history cleared")
	return nil
}

// Insights rebuilds the assessment of the latest entry.
func (s *Service) Insights(ctx context.Context) (types.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return types.Assessment{}, err
	}
	history, err := s.store.History(ctx)
	if err != nil {
		return types.Assessment{}, err
	}
	if len(history) == 0 {
		return types.Assessment{}, ErrNoHistory
	}
	habits, err := s.store.Habits(ctx)
	if err != nil {
		return types.Assessment{}, err
	}
	latest := history[len(history)-1]
	result := latest.Result(scoring.ScaleFor(latest.Strategy).Max)
	return s.assess(result, latest, history, habits.Records()), nil
}

// Summary returns totals, label counts and the weekly chart data.
func (s *Service) Summary(ctx context.Context) (insight.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return insight.Summary{}, err
	}
	history, err := s.store.History(ctx)
	if err != nil {
		return insight.Summary{}, err
	}
	return s.engine.Summarize(history), nil
}

// Profile returns the saved profile.
func (s *Service) Profile(ctx context.Context) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return model.Profile{}, err
	}
	return s.store.Profile(ctx)
}

// SaveProfile trims and validates p before storing it.
func (s *Service) SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	p = model.Profile{
		Name:   strings.TrimSpace(p.Name),
		Age:    strings.TrimSpace(p.Age),
		Gender: strings.TrimSpace(p.Gender),
		Course: strings.TrimSpace(p.Course),
		Email:  strings.TrimSpace(p.Email),
	}
	if err := p.Validate(); err != nil {
		return model.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return model.Profile{}, err
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// Habits returns the habit records sorted by date.
func (s *Service) Habits(ctx context.Context) ([]model.HabitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	log, err := s.store.Habits(ctx)
	if err != nil {
		return nil, err
	}
	return log.Records(), nil
}

// SaveHabits overwrites the checklist of rec.Date and returns every record.
func (s *Service) SaveHabits(ctx context.Context, rec model.HabitRecord) ([]model.HabitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.checkDate(rec.Date); err != nil {
		return nil, err
	}
	if rec.Done == nil {
		rec.Done = map[model.Habit]bool{}
	}
	log, err := s.store.PutHabits(ctx, rec)
	if err != nil {
		return nil, err
	}
	metrics.UpdateHabitDays(len(log))
	return log.Records(), nil
}

// Settings returns the device preferences.
func (s *Service) Settings(ctx context.Context) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return model.Settings{}, err
	}
	return s.store.Settings(ctx)
}

// SaveSettings stores st and arms or cancels the reminder accordingly.
func (s *Service) SaveSettings(ctx context.Context, st model.Settings) (model.Settings, error) {
	if err := st.Validate(); err != nil {
		return model.Settings{}, err
	}
	if st.Theme == "" {
		st.Theme = model.ThemeDark
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return model.Settings{}, err
	}
	if err := s.store.SaveSettings(ctx, st); err != nil {
		return model.Settings{}, err
	}
	if st.ReminderEnabled {
		s.reminder.Arm()
	} else {
		s.reminder.Cancel()
	}
	return st, nil
}

// AskCoach forwards question with the latest scan and profile as context.
// Coaching failures come back as a fixed reply, never as an error.
func (s *Service) AskCoach(ctx context.Context, question string) (types.CoachResponse, error) {
	if strings.TrimSpace(question) == "" {
		return types.CoachResponse{}, ErrEmptyQuestion
	}

	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return types.CoachResponse{}, err
	}
	history, err := s.store.History(ctx)
	if err != nil {
		s.mu.Unlock()
		return types.CoachResponse{}, err
	}
	profile, err := s.store.Profile(ctx)
	if err != nil {
		s.mu.Unlock()
		return types.CoachResponse{}, err
	}
	session := s.coach
	s.mu.Unlock()

	var latest *model.HistoryEntry
	if len(history) > 0 {
		latest = &history[len(history)-1]
	}
	var p *model.Profile
	if !profile.Empty() {
		p = &profile
	}

	reply := session.Ask(ctx, question, latest, p)
	return types.CoachResponse{Answer: reply.Answer, Stale: reply.Stale, Fallback: reply.Fallback}, nil
}

// Tip returns a random wellness tip.
func (s *Service) Tip() string {
	return s.advice.Tip(nil)
}

// BreathingSchedule returns the guided breathing timings and every step.
func (s *Service) BreathingSchedule() types.BreathingResponse {
	sched := breathing.DefaultSchedule()
	return types.BreathingResponse{
		InhaleSeconds:     int(sched.Inhale / time.Second),
		HoldSeconds:       int(sched.Hold / time.Second),
		ExhaleSeconds:     int(sched.Exhale / time.Second),
		SessionSeconds:    int(sched.Session / time.Second),
		SafetyStopSeconds: int(sched.SafetyStop / time.Second),
		Steps:             sched.Plan(time.Second),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) types.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := types.Stats{
		Started:  s.started,
		Strategy: s.strategyName,
	}
	if !s.started {
		return stats
	}

	stats.Strategy = s.strategy.Name()
	stats.DedupeSize = s.deduper.Size()
	stats.ReminderArmed = s.reminder.Armed()
	stats.CoachAvailable = s.coach.Available()
	stats.UptimeSeconds = int64(s.now().Sub(s.startedAt) / time.Second)
	stats.HistoryLength, stats.HabitDays = s.refreshGaugesLocked(ctx)
	if p, err := s.store.Profile(ctx); err == nil {
		stats.ProfileSet = !p.Empty()
	}
	return stats
}

// refreshGaugesLocked reloads the history and habit sizes into the gauges.
func (s *Service) refreshGaugesLocked(ctx context.Context) (historyLen, habitDays int) {
	if history, err := s.store.History(ctx); err == nil {
		historyLen = len(history)
	} else {
		s.logger.Warn(ctx, "failed to load history for stats", logger.Error(err))
	}
	if habits, err := s.store.Habits(ctx); err == nil {
		habitDays = len(habits)
	} else {
		s.logger.Warn(ctx, "failed to load habits for stats", logger.Error(err))
	}
	metrics.UpdateHistoryLength(historyLen)
	metrics.UpdateHabitDays(habitDays)
	return historyLen, habitDays
}

func (s *Service) fireReminder() {
	ctx := context.Background()
	metrics.RecordReminderFired()
	s.logger.Info(ctx, ReminderText)
	if s.onReminder != nil {
		s.onReminder(ReminderText)
	}
}
