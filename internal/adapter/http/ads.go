package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

type createAdRequest struct {
	Tier      string   `json:"tier" validate:"required,oneof=free weekly monthly prime"`
	Title     string   `json:"title" validate:"required,max=200"`
	Body      string   `json:"body" validate:"max=2000"`
	Category  string   `json:"category" validate:"max=100"`
	MediaURLs []string `json:"media_urls" validate:"dive,url"`
	Surfaces  []string `json:"surfaces" validate:"required,min=1,dive,oneof=map_pins results_list search_results banner"`
}

// handleCreateAd creates an ad owned by the caller. Expiry is derived
// from the tier, never taken from the request.
func (h *Handler) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	caller := callerKey(r)
	if caller == "" {
		http.Error(w, "missing caller key", http.StatusUnauthorized)
		return
	}
	var req createAdRequest
	if err := h.decodeValid(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	surfaces := make([]domain.Surface, 0, len(req.Surfaces))
	for _, s := range req.Surfaces {
		surface, ok := domain.ParseSurface(s)
		if !ok {
			http.Error(w, "unknown surface", http.StatusBadRequest)
			return
		}
		surfaces = append(surfaces, surface)
	}
	ad, err := h.svc.Ads.Create(r.Context(), port.CreateAdRequest{
		OwnerKey:  caller,
		Tier:      domain.Tier(req.Tier),
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		MediaURLs: req.MediaURLs,
		Surfaces:  surfaces,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ad)
}

// handleGetAd returns a single ad by id.
func (h *Handler) handleGetAd(w http.ResponseWriter, r *http.Request) {
	ad, err := h.svc.Ads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

// handleListAds returns the caller's ads.
func (h *Handler) handleListAds(w http.ResponseWriter, r *http.Request) {
	caller := callerKey(r)
	if caller == "" {
		http.Error(w, "missing caller key", http.StatusUnauthorized)
		return
	}
	ads, err := h.svc.Ads.ListByOwner(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

type updateAdRequest struct {
	Title     *string  `json:"title" validate:"omitempty,max=200"`
	Body      *string  `json:"body" validate:"omitempty,max=2000"`
	Category  *string  `json:"category" validate:"omitempty,max=100"`
	MediaURLs []string `json:"media_urls" validate:"omitempty,dive,url"`
}

// handleUpdateAd applies owner content edits. Non-owners get 403.
func (h *Handler) handleUpdateAd(w http.ResponseWriter, r *http.Request) {
	caller := callerKey(r)
	var req updateAdRequest
	if err := h.decodeValid(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ad, err := h.svc.Ads.UpdateContent(r.Context(), caller, chi.URLParam(r, "id"), port.UpdateAdRequest{
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		MediaURLs: req.MediaURLs,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

// handleDeleteAd removes the caller's own ad.
func (h *Handler) handleDeleteAd(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ads.Delete(r.Context(), callerKey(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type upgradeRequest struct {
	Tier string `json:"tier" validate:"required,oneof=weekly monthly prime"`
}

type upgradeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// handleUpgrade purchases a paid tier for the ad. A verified purchase
// returns 200; a cancelled one 409, pending 202 and unverified 402 — in
// all three nothing was changed.
func (h *Handler) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	caller := callerKey(r)
	var req upgradeRequest
	if err := h.decodeValid(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	result, err := h.svc.Ads.Upgrade(r.Context(), caller, chi.URLParam(r, "id"), domain.Tier(req.Tier))
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := upgradeResponse{Status: string(result.Status), TransactionID: result.TransactionID}
	switch result.Status {
	case port.PurchaseVerified:
		writeJSON(w, http.StatusOK, resp)
	case port.PurchasePending:
		writeJSON(w, http.StatusAccepted, resp)
	case port.PurchaseCancelled:
		writeJSON(w, http.StatusConflict, resp)
	default:
		writeJSON(w, http.StatusPaymentRequired, resp)
	}
}
