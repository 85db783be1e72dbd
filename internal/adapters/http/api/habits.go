package api

import (
	"context"
	"net/http"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/types"
)

// HabitDependencies defines the interface for the habit checklist.
type HabitDependencies interface {
	Habits(ctx context.Context) ([]model.HabitRecord, error)
	SaveHabits(ctx context.Context, rec model.HabitRecord) ([]model.HabitRecord, error)
}

// HabitHandler handles habit requests.
type HabitHandler struct {
	deps HabitDependencies
	*responder
}

// HandleGetHabits handles GET /habits requests.
func (h *HabitHandler) HandleGetHabits(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_habits"
	recs, err := h.deps.Habits(r.Context())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if recs == nil {
		recs = []model.HabitRecord{}
	}
	writeJSON(w, http.StatusOK, types.HabitsResponse{Records: recs})
}

// HandlePutHabits handles PUT /habits/{date} requests.
func (h *HabitHandler) HandlePutHabits(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_habits"
	var req types.HabitsRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	recs, err := h.deps.SaveHabits(r.Context(), model.HabitRecord{Date: r.PathValue("date"), Done: req.Done})
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.HabitsResponse{Records: recs})
}
