package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// AdService manages ad records: creation, owner-only content edits,
// deletion and paid tier upgrades through the payment collaborator.
type AdService struct {
	store    port.DocumentStore
	payments port.PaymentProvider
	clock    port.Clock
	logger   *slog.Logger
}

// NewAdService wires the ad management collaborators.
func NewAdService(store port.DocumentStore, payments port.PaymentProvider, clock port.Clock, logger *slog.Logger) *AdService {
	return &AdService{store: store, payments: payments, clock: clock, logger: logger}
}

// Create persists a new ad. Expiry is derived from the tier's duration.
func (s *AdService) Create(ctx context.Context, req port.CreateAdRequest) (domain.Ad, error) {
	if !req.Tier.Valid() {
		return domain.Ad{}, fmt.Errorf("unknown tier %q", req.Tier)
	}
	now := s.clock.Now()
	ad := domain.Ad{
		ID:        uuid.NewString(),
		OwnerKey:  req.OwnerKey,
		Tier:      req.Tier,
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		MediaURLs: req.MediaURLs,
		Surfaces:  req.Surfaces,
		CreatedAt: now,
		ExpiresAt: now.Add(req.Tier.Duration()),
	}
	if err := s.store.Create(ctx, port.CollectionAds, ad.ID, ad); err != nil {
		return domain.Ad{}, err
	}
	s.logger.Info("ad created",
		slog.String("ad_id", ad.ID),
		slog.String("tier", string(ad.Tier)))
	return ad, nil
}

// Get returns an ad by id.
func (s *AdService) Get(ctx context.Context, id string) (domain.Ad, error) {
	var ad domain.Ad
	if err := s.store.Get(ctx, port.CollectionAds, id, &ad); err != nil {
		return domain.Ad{}, err
	}
	return ad, nil
}

// ListByOwner returns the owner's ads, oldest first.
func (s *AdService) ListByOwner(ctx context.Context, ownerKey string) ([]domain.Ad, error) {
	docs, err := s.store.Query(ctx, port.CollectionAds, port.Query{
		Filters: []port.Filter{{Field: "owner_key", Op: port.OpEq, Value: ownerKey}},
		OrderBy: "created_at",
	})
	if err != nil {
		return nil, err
	}
	ads := make([]domain.Ad, 0, len(docs))
	for _, d := range docs {
		var ad domain.Ad
		if err := json.Unmarshal(d.Data, &ad); err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

// UpdateContent applies owner edits to content fields. Only the owner may
// edit; moderation fields are out of reach of this path.
func (s *AdService) UpdateContent(ctx context.Context, callerKey, id string, req port.UpdateAdRequest) (domain.Ad, error) {
	ad, err := s.Get(ctx, id)
	if err != nil {
		return domain.Ad{}, err
	}
	if ad.OwnerKey != callerKey {
		return domain.Ad{}, domain.ErrPermissionDenied
	}
	fields := make(map[string]any)
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.MediaURLs != nil {
		fields["media_urls"] = req.MediaURLs
	}
	if len(fields) == 0 {
		return ad, nil
	}
	if err := s.store.Update(ctx, port.CollectionAds, id, fields); err != nil {
		return domain.Ad{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes the ad. Only the owner may delete through this path;
// admins delete through moderation.
func (s *AdService) Delete(ctx context.Context, callerKey, id string) error {
	ad, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if ad.OwnerKey != callerKey {
		return domain.ErrPermissionDenied
	}
	return s.store.Delete(ctx, port.CollectionAds, id)
}

// Upgrade purchases the target tier and, on a verified transaction,
// re-tiers the ad and extends its expiry by the tier's duration. The
// extension runs from the current expiry when the ad is still active,
// otherwise from now. Cancelled, pending and unverified purchases change
// nothing.
func (s *AdService) Upgrade(ctx context.Context, callerKey, id string, tier domain.Tier) (port.PurchaseResult, error) {
	if !tier.Valid() || tier.ProductID() == "" {
		return port.PurchaseResult{}, fmt.Errorf("tier %q is not purchasable", tier)
	}
	ad, err := s.Get(ctx, id)
	if err != nil {
		return port.PurchaseResult{}, err
	}
	if ad.OwnerKey != callerKey {
		return port.PurchaseResult{}, domain.ErrPermissionDenied
	}

	result, err := s.payments.Purchase(ctx, tier.ProductID())
	if err != nil {
		return port.PurchaseResult{}, err
	}
	if result.Status != port.PurchaseVerified {
		return result, nil
	}

	now := s.clock.Now()
	base := ad.ExpiresAt
	if base.Before(now) {
		base = now
	}
	err = s.store.Update(ctx, port.CollectionAds, id, map[string]any{
		"tier":       tier,
		"expires_at": base.Add(tier.Duration()),
	})
	if err != nil {
		return port.PurchaseResult{}, err
	}
	s.logger.Info("ad upgraded",
		slog.String("ad_id", id),
		slog.String("tier", string(tier)),
		slog.String("transaction_id", result.TransactionID))
	return result, nil
}
