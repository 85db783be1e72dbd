// Package demoscans drives a running MindScan service with a simulated
// stretch of daily check-ins and verifies what it derives from them.
package demoscans

import (
	"time"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/logger"
)

// Defaults used when a Config field is left zero.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultDays    = 14
	DefaultWorkers = 4
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Days       int           // Number of consecutive days to simulate, ending today
	Seed       uint64        // Seed for the answer and habit generator
	Workers    int           // Concurrent habit uploads
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON dump of the generated days
	Verbose    bool          // Log every submitted scan

	// Now anchors the simulated range; nil means time.Now.
	Now func() time.Time
	// Logger receives progress; nil means the global logger.
	Logger logger.Logger
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Days <= 0 {
		out.Days = DefaultDays
	}
	if out.Workers <= 0 {
		out.Workers = DefaultWorkers
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	if out.Logger == nil {
		out.Logger = logger.Get()
	}
	return out
}

// Day is one simulated check-in: the questionnaire answers and the habit
// checklist recorded for Date.
type Day struct {
	Date         string               `json:"date"`
	SubmissionID string               `json:"submission_id"`
	Strain       float64              `json:"strain"`
	Answers      model.Answers        `json:"answers"`
	Habits       map[model.Habit]bool `json:"habits"`
}

// Stats holds run statistics.
type Stats struct {
	DaysGenerated  int
	HabitDaysSaved int
	ScansRecorded  int
	ScansDuplicate int
	ScansFailed    int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Report is what a run observed once every request completed.
type Report struct {
	Stats   Stats
	Days    []Day
	XP      int
	Level   int
	Streak  int
	Latest  model.RiskLevel
	Total   int
	Average float64
}
