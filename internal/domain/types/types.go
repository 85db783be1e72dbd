// Package types contains the HTTP wire types shared by the API and its clients.
package types

import (
	"github.com/okian/mindscan/internal/domain/breathing"
	"github.com/okian/mindscan/internal/domain/insight"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/scoring"
)

// QuestionnaireResponse is returned by GET /questionnaire.
type QuestionnaireResponse struct {
	Strategy   string             `json:"strategy"`
	Strategies []string           `json:"strategies"`
	Questions  []scoring.Question `json:"questions"`
	Scale      model.Scale        `json:"scale"`
}

// ScanRequest is the body of POST /scans.
type ScanRequest struct {
	Answers      model.Answers `json:"answers"`
	SubmissionID string        `json:"submission_id,omitempty"`
	// Date back-fills a scan for an earlier day (YYYY-MM-DD).
	Date string `json:"date,omitempty"`
}

// Assessment is a scored entry with everything derived from it.
type Assessment struct {
	Entry    model.HistoryEntry `json:"entry"`
	Result   model.ScoreResult  `json:"result"`
	Insights insight.Insights   `json:"insights"`
	Plan     []string           `json:"plan"`
	Message  string             `json:"message"`
	Avatar   string             `json:"avatar"`
}

// ScanResponse is returned by POST /scans. A duplicate submission carries
// the ID of the entry recorded originally, when known, and no assessment.
type ScanResponse struct {
	Status     string      `json:"status"`
	Duplicate  bool        `json:"duplicate"`
	EntryID    string      `json:"entry_id,omitempty"`
	Assessment *Assessment `json:"assessment,omitempty"`
}

// HistoryResponse is returned by GET /history.
type HistoryResponse struct {
	Entries []model.HistoryEntry `json:"entries"`
}

// HabitsResponse is returned by GET /habits.
type HabitsResponse struct {
	Records []model.HabitRecord `json:"records"`
}

// HabitsRequest is the body of PUT /habits/{date}.
type HabitsRequest struct {
	Done map[model.Habit]bool `json:"done"`
}

// CoachRequest is the body of POST /coach.
type CoachRequest struct {
	Question string `json:"question"`
}

// CoachResponse is returned by POST /coach. Fallback marks a fixed apology
// reply; Stale marks a reply superseded by a newer question.
type CoachResponse struct {
	Answer   string `json:"answer"`
	Stale    bool   `json:"stale"`
	Fallback bool   `json:"fallback"`
}

// TipResponse is returned by GET /tips.
type TipResponse struct {
	Tip string `json:"tip"`
}

// BreathingResponse is returned by GET /breathing. Durations are in seconds.
type BreathingResponse struct {
	InhaleSeconds     int               `json:"inhale_seconds"`
	HoldSeconds       int               `json:"hold_seconds"`
	ExhaleSeconds     int               `json:"exhale_seconds"`
	SessionSeconds    int               `json:"session_seconds"`
	SafetyStopSeconds int               `json:"safety_stop_seconds"`
	Steps             []breathing.State `json:"steps"`
}

// Stats is returned by GET /stats.
type Stats struct {
	Started        bool   `json:"started"`
	Strategy       string `json:"strategy"`
	HistoryLength  int    `json:"history_length"`
	HabitDays      int    `json:"habit_days"`
	ProfileSet     bool   `json:"profile_set"`
	DedupeSize     int64  `json:"dedupe_size"`
	ReminderArmed  bool   `json:"reminder_armed"`
	CoachAvailable bool   `json:"coach_available"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}
