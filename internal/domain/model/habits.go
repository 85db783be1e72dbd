package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Sentinel errors for habit records.
var (
	ErrUnknownHabit = errors.New("unknown habit")
	ErrInvalidDate  = errors.New("invalid date")
)

// Habit names one tracked boolean lifestyle action.
type Habit string

const (
	HabitSleep   Habit = "sleep"
	HabitWater   Habit = "water"
	HabitMove    Habit = "move"
	HabitMindful Habit = "mindful"
	HabitScreen  Habit = "screen"
)

// Habits is the fixed tracked set, in display order.
var Habits = []Habit{HabitSleep, HabitWater, HabitMove, HabitMindful, HabitScreen}

var habitTitles = map[Habit]string{
	HabitSleep:   "Slept 7+ hours",
	HabitWater:   "Drank enough water",
	HabitMove:    "Moved for 20+ minutes",
	HabitMindful: "Took a mindful pause",
	HabitScreen:  "Kept screen time low",
}

// Title returns the checklist label.
func (h Habit) Title() string {
	if t, ok := habitTitles[h]; ok {
		return t
	}
	return string(h)
}

// Valid reports whether h belongs to the tracked set.
func (h Habit) Valid() bool {
	_, ok := habitTitles[h]
	return ok
}

// HabitRecord is the checklist state of one calendar day.
type HabitRecord struct {
	Date string         `json:"date"`
	Done map[Habit]bool `json:"done"`
}

// Completed counts the habits marked done.
func (r HabitRecord) Completed() int {
	n := 0
	for _, done := range r.Done {
		if done {
			n++
		}
	}
	return n
}

// Validate checks the date and that every key is a known habit.
func (r HabitRecord) Validate() error {
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	for h := range r.Done {
		if !h.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownHabit, h)
		}
	}
	return nil
}

// HabitLog is the persisted per-day map: at most one record per date.
type HabitLog map[string]map[Habit]bool

// Records returns the log as records sorted by date.
func (l HabitLog) Records() []HabitRecord {
	out := make([]HabitRecord, 0, len(l))
	for date, done := range l {
		out = append(out, HabitRecord{Date: date, Done: done})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ValidateDate checks a YYYY-MM-DD calendar day.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
