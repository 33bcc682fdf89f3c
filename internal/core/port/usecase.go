package port

import (
	"context"

	"minar-ads/internal/core/domain"
)

// SubmitRequest is the input to the submission pipeline.
type SubmitRequest struct {
	OwnerKey  string
	PlaceName string
	PlaceType string
	Address   string
	Mode      domain.GateMode
}

// SubmissionUseCase orchestrates geocoding, quota gating and persistence
// of a directory submission.
type SubmissionUseCase interface {
	// Submit runs the pipeline and returns the new submission's id. It
	// fails with *domain.GeocodeError, *domain.QuotaExceededError or
	// *domain.TransientStoreError.
	Submit(ctx context.Context, req SubmitRequest) (string, error)
}

// CreateAdRequest is the input to ad creation. ExpiresAt is derived from
// the tier's duration, never supplied by the caller.
type CreateAdRequest struct {
	OwnerKey  string
	Tier      domain.Tier
	Title     string
	Body      string
	Category  string
	MediaURLs []string
	Surfaces  []domain.Surface
}

// UpdateAdRequest carries the owner-editable content fields. Nil fields
// are left untouched.
type UpdateAdRequest struct {
	Title     *string
	Body      *string
	Category  *string
	MediaURLs []string
}

// AdUseCase manages the ad records themselves: creation, owner edits,
// deletion and paid tier upgrades.
type AdUseCase interface {
	Create(ctx context.Context, req CreateAdRequest) (domain.Ad, error)
	Get(ctx context.Context, id string) (domain.Ad, error)
	ListByOwner(ctx context.Context, ownerKey string) ([]domain.Ad, error)
	UpdateContent(ctx context.Context, callerKey, id string, req UpdateAdRequest) (domain.Ad, error)
	Delete(ctx context.Context, callerKey, id string) error
	// Upgrade purchases the tier's product and, on a verified
	// transaction, re-tiers the ad and extends its expiry. Any other
	// purchase outcome leaves the ad unchanged.
	Upgrade(ctx context.Context, callerKey, id string, tier domain.Tier) (PurchaseResult, error)
}

// RankRequest selects and orders ads for one display surface. Bucket is
// the rotation time bucket; when nil the current hour is used.
type RankRequest struct {
	Surface  domain.Surface
	Category string
	Bucket   *uint64
}

// RankingUseCase produces the ordered, rotated listing per surface.
type RankingUseCase interface {
	Rank(ctx context.Context, req RankRequest) ([]domain.Ad, error)
}

// ModerationUseCase is the admin-only override surface. Every method
// fails with domain.ErrPermissionDenied when the caller is not an admin.
type ModerationUseCase interface {
	Hide(ctx context.Context, callerKey, adID, note string) error
	Unhide(ctx context.Context, callerKey, adID string) error
	Remove(ctx context.Context, callerKey, adID string) error
	ReviewSubmission(ctx context.Context, callerKey, submissionID string, approve bool) error
	// Marker returns a consumed quota marker with its audit payload.
	Marker(ctx context.Context, callerKey, scopeKey string) (domain.QuotaMarker, error)
}
