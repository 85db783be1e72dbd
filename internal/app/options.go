package service

import (
	"time"

	"github.com/okian/mindscan/internal/adapters/coach"
	"github.com/okian/mindscan/internal/adapters/repository"
	"github.com/okian/mindscan/internal/domain/advice"
	"github.com/okian/mindscan/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the persistence layer. The service closes it on Stop.
func WithStore(store *repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStrategy selects the scoring strategy by name.
func WithStrategy(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.strategyName = name
		}
	}
}

// WithCoach sets the coaching session.
func WithCoach(session *coach.Session) Option {
	return func(s *Service) {
		if session != nil {
			s.coach = session
		}
	}
}

// WithAdvice replaces the built-in advice table.
func WithAdvice(t *advice.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.advice = t
		}
	}
}

// WithDedupeSize sets the size of the submission ID cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithReminderDelay sets how long after arming the reminder fires.
func WithReminderDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.reminderDelay = d
		}
	}
}

// WithReminderHook is called with the reminder text each time it fires.
func WithReminderHook(fn func(text string)) Option {
	return func(s *Service) {
		s.onReminder = fn
	}
}

// WithClock overrides the time source used for dates and uptime.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
