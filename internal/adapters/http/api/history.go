package api

import (
	"context"
	"net/http"

	"github.com/okian/mindscan/internal/domain/insight"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/types"
)

// HistoryDependencies defines the interface for history reads.
type HistoryDependencies interface {
	History(ctx context.Context) ([]model.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
	Insights(ctx context.Context) (types.Assessment, error)
	Summary(ctx context.Context) (insight.Summary, error)
}

// HistoryHandler handles history, insight and summary requests.
type HistoryHandler struct {
	deps HistoryDependencies
	*responder
}

// HandleGetHistory handles GET /history requests.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	entries, err := h.deps.History(r.Context())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, types.HistoryResponse{Entries: entries})
}

// HandleClearHistory handles DELETE /history requests.
func (h *HistoryHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.clear_history"
	if err := h.deps.ClearHistory(r.Context()); err != nil {
		h.fail(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleInsights handles GET /insights requests.
func (h *HistoryHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_insights"
	a, err := h.deps.Insights(r.Context())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleSummary handles GET /summary requests.
func (h *HistoryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	s, err := h.deps.Summary(r.Context())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
