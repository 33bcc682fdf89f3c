package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type hideRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

// handleHide flags an ad hidden with an audit note. Admin only; a hidden
// ad disappears from every ranked listing until unhidden.
func (h *Handler) handleHide(w http.ResponseWriter, r *http.Request) {
	var req hideRequest
	if err := h.decodeValid(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.Moderation.Hide(r.Context(), callerKey(r), chi.URLParam(r, "id"), req.Note); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUnhide clears the moderation flag, restoring the ad to exactly
// the rank its tier and rotation would give it.
func (h *Handler) handleUnhide(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Moderation.Unhide(r.Context(), callerKey(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleModerationRemove deletes an ad through the admin path.
func (h *Handler) handleModerationRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Moderation.Remove(r.Context(), callerKey(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleQuotaMarker returns a consumed quota marker with its audit
// payload. Admin only.
func (h *Handler) handleQuotaMarker(w http.ResponseWriter, r *http.Request) {
	marker, err := h.svc.Moderation.Marker(r.Context(), callerKey(r), chi.URLParam(r, "scopeKey"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, marker)
}
