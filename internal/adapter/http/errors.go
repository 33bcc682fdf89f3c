package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"minar-ads/internal/core/domain"
)

// callerHeader carries the caller identity. Authentication itself sits in
// front of this service; the engine only needs the resolved key.
const callerHeader = "X-Caller-Key"

func callerKey(r *http.Request) string {
	return r.Header.Get(callerHeader)
}

type errorResponse struct {
	Error          string     `json:"error"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP status codes:
// quota exhaustion 409, unresolvable address 422, missing admin rights
// 403, unknown records 404, store outages 503 and everything else 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		quotaErr     *domain.QuotaExceededError
		geocodeErr   *domain.GeocodeError
		transientErr *domain.TransientStoreError
	)
	switch {
	case errors.As(err, &quotaErr):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:          quotaErr.Reason,
			NextEligibleAt: quotaErr.NextEligibleAt,
		})
	case errors.As(err, &geocodeErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: geocodeErr.Error()})
	case errors.Is(err, domain.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "permission denied"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.As(err, &transientErr):
		h.logger.Error("store unavailable", slog.Any("error", err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "temporarily unavailable"})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeValid decodes the request body into dst and runs validation.
func (h *Handler) decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}
