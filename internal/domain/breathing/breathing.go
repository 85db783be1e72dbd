// Package breathing models the guided 4-4-4 breathing exercise: a pure
// schedule that maps elapsed time to a phase, and a runner that drives it.
package breathing

import (
	"errors"
	"fmt"
	"time"
)

// Phase of a breathing cycle.
type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
	PhaseDone   Phase = "done"
)

// ErrInvalidSchedule is returned by Validate.
var ErrInvalidSchedule = errors.New("invalid breathing schedule")

// Schedule holds the phase lengths and session limits.
type Schedule struct {
	Inhale     time.Duration
	Hold       time.Duration
	Exhale     time.Duration
	Session    time.Duration
	SafetyStop time.Duration
}

// DefaultSchedule is one minute of 4-4-4 breathing with a 65 second stop.
func DefaultSchedule() Schedule {
	return Schedule{
		Inhale:     4 * time.Second,
		Hold:       4 * time.Second,
		Exhale:     4 * time.Second,
		Session:    60 * time.Second,
		SafetyStop: 65 * time.Second,
	}
}

// Cycle returns the length of one inhale-hold-exhale cycle.
func (s Schedule) Cycle() time.Duration { return s.Inhale + s.Hold + s.Exhale }

// Validate checks that every duration is positive.
func (s Schedule) Validate() error {
	if s.Inhale <= 0 || s.Hold <= 0 || s.Exhale <= 0 {
		return fmt.Errorf("%w: phases must be positive", ErrInvalidSchedule)
	}
	if s.Session <= 0 || s.SafetyStop <= 0 {
		return fmt.Errorf("%w: session and safety stop must be positive", ErrInvalidSchedule)
	}
	return nil
}

// State is what the exercise shows at one instant.
type State struct {
	Elapsed   time.Duration `json:"-"`
	Second    int           `json:"second"`
	Phase     Phase         `json:"phase"`
	Cycle     int           `json:"cycle"`
	Remaining int           `json:"remaining"`
	Text      string        `json:"text"`
}

// Done reports whether the session is over.
func (st State) Done() bool { return st.Phase == PhaseDone }

// StateAt returns the state after elapsed time. Remaining counts whole
// seconds left in the current phase.
func (s Schedule) StateAt(elapsed time.Duration) State {
	if elapsed < 0 {
		elapsed = 0
	}
	st := State{Elapsed: elapsed, Second: int(elapsed / time.Second)}
	if elapsed >= s.Session {
		st.Phase, st.Text = PhaseDone, "Well done. Session complete."
		return st
	}

	cycle := s.Cycle()
	st.Cycle = int(elapsed / cycle)
	pos := elapsed % cycle

	var end time.Duration
	switch {
	case pos < s.Inhale:
		st.Phase, end = PhaseInhale, s.Inhale
	case pos < s.Inhale+s.Hold:
		st.Phase, end = PhaseHold, s.Inhale+s.Hold
	default:
		st.Phase, end = PhaseExhale, cycle
	}
	left := end - pos
	st.Remaining = int((left + time.Second - 1) / time.Second)
	st.Text = fmt.Sprintf("%s %d seconds", phaseVerb[st.Phase], int(s.phaseLength(st.Phase)/time.Second))
	return st
}

// Plan returns the state at every step from zero until the session ends,
// including the final done state.
func (s Schedule) Plan(step time.Duration) []State {
	if step <= 0 {
		step = time.Second
	}
	n := int(s.Session/step) + 1
	out := make([]State, 0, n)
	for t := time.Duration(0); ; t += step {
		st := s.StateAt(t)
		out = append(out, st)
		if st.Done() {
			return out
		}
	}
}

var phaseVerb = map[Phase]string{
	PhaseInhale: "Inhale",
	PhaseHold:   "Hold",
	PhaseExhale: "Exhale",
}

func (s Schedule) phaseLength(p Phase) time.Duration {
	switch p {
	case PhaseInhale:
		return s.Inhale
	case PhaseHold:
		return s.Hold
	default:
		return s.Exhale
	}
}
