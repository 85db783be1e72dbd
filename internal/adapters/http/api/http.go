// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/mindscan/internal/app"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/scoring"
	"github.com/okian/mindscan/internal/domain/types"
	"github.com/okian/mindscan/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// User-facing messages for validation failures.
const (
	MsgIncomplete        = "Please complete all questions before scanning."
	MsgIncompleteProfile = "Please fill in name, age and gender."
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ScanDependencies
	HistoryDependencies
	ProfileDependencies
	HabitDependencies
	CoachDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	scanHandler    *ScanHandler
	historyHandler *HistoryHandler
	profileHandler *ProfileHandler
	habitHandler   *HabitHandler
	coachHandler   *CoachHandler
}

// Option applies a configuration option to the Server.
type Option func(*responder)

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(r *responder) {
		if l != nil {
			r.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	rs := &responder{log: logger.Nop()}
	for _, opt := range opts {
		opt(rs)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		scanHandler:    &ScanHandler{deps: deps, responder: rs},
		historyHandler: &HistoryHandler{deps: deps, responder: rs},
		profileHandler: &ProfileHandler{deps: deps, responder: rs},
		habitHandler:   &HabitHandler{deps: deps, responder: rs},
		coachHandler:   &CoachHandler{deps: deps, responder: rs},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /questionnaire", MetricsMiddleware(s.scanHandler.HandleQuestionnaire, "questionnaire"))
	mux.HandleFunc("POST /scans", MetricsMiddleware(s.scanHandler.HandlePostScan, "scans"))

	mux.HandleFunc("GET /history", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
	mux.HandleFunc("DELETE /history", MetricsMiddleware(s.historyHandler.HandleClearHistory, "history"))
	mux.HandleFunc("GET /insights", MetricsMiddleware(s.historyHandler.HandleInsights, "insights"))
	mux.HandleFunc("GET /summary", MetricsMiddleware(s.historyHandler.HandleSummary, "summary"))

	mux.HandleFunc("GET /profile", MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile"))
	mux.HandleFunc("PUT /profile", MetricsMiddleware(s.profileHandler.HandlePutProfile, "profile"))
	mux.HandleFunc("GET /settings", MetricsMiddleware(s.profileHandler.HandleGetSettings, "settings"))
	mux.HandleFunc("PUT /settings", MetricsMiddleware(s.profileHandler.HandlePutSettings, "settings"))

	mux.HandleFunc("GET /habits", MetricsMiddleware(s.habitHandler.HandleGetHabits, "habits"))
	mux.HandleFunc("PUT /habits/{date}", MetricsMiddleware(s.habitHandler.HandlePutHabits, "habits"))

	mux.HandleFunc("POST /coach", MetricsMiddleware(s.coachHandler.HandleAsk, "coach"))
	mux.HandleFunc("GET /tips", MetricsMiddleware(s.coachHandler.HandleTip, "tips"))
	mux.HandleFunc("GET /breathing", MetricsMiddleware(s.coachHandler.HandleBreathing, "breathing"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, types.ErrorResponse{Code: code, Message: msg})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewKind(op, ErrBadRequest)
		}
		return WrapKind(op, ErrBadRequest, fmt.Errorf("invalid JSON body: %w", err))
	}
	return nil
}

// responder translates domain errors into HTTP replies.
type responder struct {
	log logger.Logger
}

func (rs *responder) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Code: "incomplete", Message: MsgIncomplete, Fields: verr.Fields()})
	case errors.Is(err, scoring.ErrIncompleteAnswers):
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Code: "incomplete", Message: MsgIncomplete})
	case errors.Is(err, model.ErrIncompleteProfile):
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Code: "incomplete_profile", Message: MsgIncompleteProfile})
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrUnknownHabit),
		errors.Is(err, model.ErrInvalidTheme),
		errors.Is(err, service.ErrFutureDate),
		errors.Is(err, service.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNoHistory):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		rs.log.Error(r.Context(), "request failed",
			logger.String("op", op),
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
	}
}
