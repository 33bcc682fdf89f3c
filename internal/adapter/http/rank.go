package httpadapter

import (
	"net/http"
	"strconv"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// handleRank returns the ordered ad listing for one display surface. It
// accepts `surface` (required), optional `category` scoping and an
// optional explicit `bucket` for reproducible orderings; without a bucket
// the current hour is used.
func (h *Handler) handleRank(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	surface, ok := domain.ParseSurface(q.Get("surface"))
	if !ok {
		http.Error(w, "unknown or missing surface", http.StatusBadRequest)
		return
	}
	req := port.RankRequest{Surface: surface, Category: q.Get("category")}
	if b := q.Get("bucket"); b != "" {
		bucket, err := strconv.ParseUint(b, 10, 64)
		if err != nil {
			http.Error(w, "invalid bucket", http.StatusBadRequest)
			return
		}
		req.Bucket = &bucket
	}
	ads, err := h.svc.Ranking.Rank(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}
