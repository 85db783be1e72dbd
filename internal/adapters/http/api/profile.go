package api

import (
	"context"
	"net/http"

	"github.com/okian/mindscan/internal/domain/model"
)

// ProfileDependencies defines the interface for profile and settings.
type ProfileDependencies interface {
	Profile(ctx context.Context) (model.Profile, error)
	SaveProfile(ctx context.Context, p model.Profile) (model.Profile, error)
	Settings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, st model.Settings) (model.Settings, error)
}

// ProfileHandler handles profile and settings requests.
type ProfileHandler struct {
	deps ProfileDependencies
	*responder
}

// HandleGetProfile handles GET /profile requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_profile"
	p, err := h.deps.Profile(r.Context())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandlePutProfile handles PUT /profile requests.
func (h *ProfileHandler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_profile"
	var p model.Profile
	if err := decodeJSON(w, r, op, &p); err != nil {
		h.fail(w, r, op, err)
		return
	}
	saved, err := h.deps.SaveProfile(r.Context(), p)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleGetSettings handles GET /settings requests.
func (h *ProfileHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_settings"
	st, err := h.deps.Settings(r.Context())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HandlePutSettings handles PUT /settings requests.
func (h *ProfileHandler) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_settings"
	var st model.Settings
	if err := decodeJSON(w, r, op, &st); err != nil {
		h.fail(w, r, op, err)
		return
	}
	saved, err := h.deps.SaveSettings(r.Context(), st)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
