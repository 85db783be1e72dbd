package api

import (
	"context"
	"net/http"

	"github.com/okian/mindscan/internal/domain/types"
)

// ScanDependencies defines the interface for questionnaire and scan operations.
type ScanDependencies interface {
	Questionnaire() (types.QuestionnaireResponse, error)
	Submit(ctx context.Context, req types.ScanRequest) (types.ScanResponse, error)
}

// ScanHandler handles questionnaire and scan requests.
type ScanHandler struct {
	deps ScanDependencies
	*responder
}

// HandleQuestionnaire handles GET /questionnaire requests.
func (h *ScanHandler) HandleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_questionnaire"
	q, err := h.deps.Questionnaire()
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// HandlePostScan handles POST /scans requests. A new scan answers 201, an
// acknowledged duplicate 200.
func (h *ScanHandler) HandlePostScan(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_scan"
	var req types.ScanRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	resp, err := h.deps.Submit(r.Context(), req)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if resp.Duplicate {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
