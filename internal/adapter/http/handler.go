package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"log/slog"

	"minar-ads/internal/core/port"
)

// Services bundles the use cases the HTTP layer exposes.
type Services struct {
	Submissions port.SubmissionUseCase
	Ads         port.AdUseCase
	Ranking     port.RankingUseCase
	Moderation  port.ModerationUseCase
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: it validates and decodes requests, invokes the use cases and maps
// domain errors onto status codes. Routes are registered on a chi.Router.
type Handler struct {
	svc      Services
	validate *validator.Validate
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	h := &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", callerHeader},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/submissions", h.handleSubmit)
		r.Post("/submissions/{id}/review", h.handleReviewSubmission)

		r.Post("/ads", h.handleCreateAd)
		r.Get("/ads/rank", h.handleRank)
		r.Get("/ads", h.handleListAds)
		r.Get("/ads/{id}", h.handleGetAd)
		r.Patch("/ads/{id}", h.handleUpdateAd)
		r.Delete("/ads/{id}", h.handleDeleteAd)
		r.Post("/ads/{id}/upgrade", h.handleUpgrade)

		r.Post("/ads/{id}/hide", h.handleHide)
		r.Post("/ads/{id}/unhide", h.handleUnhide)
		r.Delete("/moderation/ads/{id}", h.handleModerationRemove)
		r.Get("/quota/markers/{scopeKey}", h.handleQuotaMarker)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
