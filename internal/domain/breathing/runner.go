package breathing

import (
	"context"
	"errors"
	"time"
)

// ErrSafetyStop is returned when the wall-clock safety limit ends a session
// before the schedule completes.
var ErrSafetyStop = errors.New("breathing session hit safety stop")

// Runner drives a Schedule one step per tick.
type Runner struct {
	schedule Schedule
	step     time.Duration
	interval time.Duration
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithSchedule replaces the default schedule.
func WithSchedule(s Schedule) Option {
	return func(r *Runner) {
		if s.Validate() == nil {
			r.schedule = s
		}
	}
}

// WithInterval sets the wall-clock time between ticks. Each tick still
// advances the schedule by one second.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// NewRunner creates a Runner for the default schedule.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		schedule: DefaultSchedule(),
		step:     time.Second,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Schedule returns the schedule the runner drives.
func (r *Runner) Schedule() Schedule { return r.schedule }

// Run emits the initial state and then one state per tick until the session
// is done, the safety stop fires or ctx is cancelled. The wall-clock safety
// stop is measured from the start of Run.
func (r *Runner) Run(ctx context.Context, emit func(State)) error {
	safety, cancel := context.WithTimeout(ctx, r.schedule.SafetyStop)
	defer cancel()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var elapsed time.Duration
	emit(r.schedule.StateAt(elapsed))
	for {
		select {
		case <-safety.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(r.schedule.StateAt(r.schedule.Session))
			return ErrSafetyStop
		case <-ticker.C:
			elapsed += r.step
			st := r.schedule.StateAt(elapsed)
			emit(st)
			if st.Done() {
				return nil
			}
		}
	}
}
