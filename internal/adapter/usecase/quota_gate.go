package usecase

import (
	"context"
	"errors"
	"time"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// QuotaGate enforces at-most-once consumption of promotional quota
// scopes. Lifetime scopes are consumed by creating a marker document
// whose identity is the scope key; the store's create-fails-if-exists
// guarantee makes that exactly-once across all concurrent callers with no
// lock service.
//
// Callers should treat lifetime consumption as at-least-once under
// cancellation: once the create request has been issued, abandoning the
// call may leave the scope consumed even though no success was observed.
type QuotaGate struct {
	store  port.DocumentStore
	clock  port.Clock
	period time.Duration
}

// NewQuotaGate builds a gate with the given periodic window (for the
// recurring free slot).
func NewQuotaGate(store port.DocumentStore, clock port.Clock, period time.Duration) *QuotaGate {
	return &QuotaGate{store: store, clock: clock, period: period}
}

// ConsumeLifetime burns the scope forever. The first call for a scope key
// succeeds and writes exactly one marker; every later call fails with
// *domain.QuotaExceededError and writes nothing.
func (g *QuotaGate) ConsumeLifetime(ctx context.Context, scopeKey, ownerKey string, payload map[string]string) error {
	marker := domain.QuotaMarker{
		ScopeKey:  scopeKey,
		OwnerKey:  ownerKey,
		CreatedAt: g.clock.Now(),
		Payload:   payload,
	}
	err := g.store.Create(ctx, port.CollectionQuotaMarkers, scopeKey, marker)
	if errors.Is(err, port.ErrAlreadyExists) {
		return &domain.QuotaExceededError{
			Scope:  scopeKey,
			Reason: "gift already used for this place",
		}
	}
	return err
}

// PeriodicEligibility reads the owner record and reports whether the
// recurring free slot is open, and if not, when it opens. An owner with
// no record is always eligible.
func (g *QuotaGate) PeriodicEligibility(ctx context.Context, ownerKey string) (bool, time.Time, error) {
	var owner domain.Owner
	err := g.store.Get(ctx, port.CollectionOwners, ownerKey, &owner)
	if errors.Is(err, domain.ErrNotFound) {
		return true, g.clock.Now(), nil
	}
	if err != nil {
		return false, time.Time{}, err
	}
	if owner.LastFreeAt.IsZero() {
		return true, g.clock.Now(), nil
	}
	next := owner.LastFreeAt.Add(g.period)
	if g.clock.Now().Before(next) {
		return false, next, nil
	}
	return true, next, nil
}

// ConsumePeriodic checks eligibility and marks the owner record. The
// check and the mark are separate store calls, so two truly concurrent
// requests from the same owner can both pass; the design assumes a
// single active writer per owner identity at any instant.
func (g *QuotaGate) ConsumePeriodic(ctx context.Context, ownerKey string) error {
	ok, next, err := g.PeriodicEligibility(ctx, ownerKey)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.QuotaExceededError{
			Scope:          ownerKey,
			Reason:         "free slot already used this period",
			NextEligibleAt: &next,
		}
	}
	return g.store.Set(ctx, port.CollectionOwners, ownerKey, g.PeriodicMarkFields(ownerKey))
}

// PeriodicMarkFields returns the owner-record fields that record a
// consumed periodic slot, for pairing with other writes in a batch.
func (g *QuotaGate) PeriodicMarkFields(ownerKey string) map[string]any {
	return map[string]any{
		"key":          ownerKey,
		"last_free_at": g.clock.Now(),
	}
}
