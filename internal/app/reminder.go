package service

import (
	"sync"
	"time"
)

// ReminderText is the message delivered when the reminder fires.
const ReminderText = "Time for a quick MindScan check-in."

// DefaultReminderDelay is how long after arming the demo reminder fires.
const DefaultReminderDelay = 10 * time.Second

// Reminder is a one-shot cancellable timer. Arming an armed reminder
// restarts it.
type Reminder struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   uint64
	fire  func()
}

// NewReminder creates a disarmed reminder calling fire after delay.
func NewReminder(delay time.Duration, fire func()) *Reminder {
	if delay <= 0 {
		delay = DefaultReminderDelay
	}
	return &Reminder{delay: delay, fire: fire}
}

// Arm starts or restarts the timer.
func (r *Reminder) Arm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.seq++
	seq := r.seq
	r.timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		if seq != r.seq {
			r.mu.Unlock()
			return
		}
		r.timer = nil
		r.mu.Unlock()
		if r.fire != nil {
			r.fire()
		}
	})
}

// Cancel stops a pending timer. It reports whether one was pending.
func (r *Reminder) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.stopLocked()
}

// Armed reports whether the timer is pending.
func (r *Reminder) Armed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

func (r *Reminder) stopLocked() bool {
	if r.timer == nil {
		return false
	}
	stopped := r.timer.Stop()
	r.timer = nil
	return stopped
}
