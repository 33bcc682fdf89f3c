package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

type submitRequest struct {
	PlaceName string `json:"place_name" validate:"required,max=200"`
	PlaceType string `json:"place_type" validate:"max=100"`
	Address   string `json:"address" validate:"required,max=500"`
	Mode      string `json:"mode" validate:"omitempty,oneof=none lifetime_gift periodic_free"`
}

type submitResponse struct {
	SubmissionID string `json:"submission_id"`
}

// handleSubmit runs the submission pipeline for the calling owner. The
// body selects the gate mode; an absent mode performs no quota
// accounting. Quota exhaustion maps to 409 with the next eligible time
// for periodic mode, an unresolvable address to 422.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	caller := callerKey(r)
	if caller == "" {
		http.Error(w, "missing caller key", http.StatusUnauthorized)
		return
	}
	var req submitRequest
	if err := h.decodeValid(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	mode := domain.GateNone
	if req.Mode != "" {
		mode = domain.GateMode(req.Mode)
	}
	id, err := h.svc.Submissions.Submit(r.Context(), port.SubmitRequest{
		OwnerKey:  caller,
		PlaceName: req.PlaceName,
		PlaceType: req.PlaceType,
		Address:   req.Address,
		Mode:      mode,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{SubmissionID: id})
}

type reviewRequest struct {
	Approve bool `json:"approve"`
}

// handleReviewSubmission transitions a pending submission to approved or
// rejected. Admin only.
func (h *Handler) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	caller := callerKey(r)
	id := chi.URLParam(r, "id")
	var req reviewRequest
	if err := h.decodeValid(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.Moderation.ReviewSubmission(r.Context(), caller, id, req.Approve); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
