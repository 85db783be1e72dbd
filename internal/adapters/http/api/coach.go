package api

import (
	"context"
	"net/http"

	"github.com/okian/mindscan/internal/domain/types"
)

// CoachDependencies defines the interface for coaching and self-help tools.
type CoachDependencies interface {
	AskCoach(ctx context.Context, question string) (types.CoachResponse, error)
	Tip() string
	BreathingSchedule() types.BreathingResponse
}

// CoachHandler handles coaching, tip and breathing requests.
type CoachHandler struct {
	deps CoachDependencies
	*responder
}

// HandleAsk handles POST /coach requests. Coaching failures still answer
// 200 with the fallback reply.
func (h *CoachHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_coach"
	var req types.CoachRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	resp, err := h.deps.AskCoach(r.Context(), req.Question)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleTip handles GET /tips requests.
func (h *CoachHandler) HandleTip(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.TipResponse{Tip: h.deps.Tip()})
}

// HandleBreathing handles GET /breathing requests.
func (h *CoachHandler) HandleBreathing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.BreathingSchedule())
}
