package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minar-ads/internal/adapter/memstore"
	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

func newAdFixture(payments *fakePayments) (*AdService, *memstore.Store, *fakeClock) {
	store := memstore.New()
	clock := newFakeClock()
	if payments == nil {
		payments = &fakePayments{result: port.PurchaseResult{Status: port.PurchaseVerified, TransactionID: "tx-1"}}
	}
	svc := NewAdService(store, payments, clock, testLogger())
	return svc, store, clock
}

func TestCreateAdDerivesExpiry(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newAdFixture(nil)

	ad, err := svc.Create(ctx, port.CreateAdRequest{
		OwnerKey: "owner-1",
		Tier:     domain.TierMonthly,
		Title:    "Grand opening",
		Surfaces: []domain.Surface{domain.SurfaceBanner},
	})
	require.NoError(t, err)
	assert.True(t, ad.CreatedAt.Equal(clock.Now()))
	assert.True(t, ad.ExpiresAt.Equal(clock.Now().Add(domain.TierMonthly.Duration())))
	assert.Equal(t, domain.AdActive, ad.StateAt(clock.Now()))
}

func TestCreateAdRejectsUnknownTier(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAdFixture(nil)
	_, err := svc.Create(ctx, port.CreateAdRequest{OwnerKey: "o", Tier: "platinum", Title: "x"})
	require.Error(t, err)
}

func TestUpdateContentOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAdFixture(nil)
	ad, err := svc.Create(ctx, port.CreateAdRequest{
		OwnerKey: "owner-1",
		Tier:     domain.TierFree,
		Title:    "Before",
		Surfaces: []domain.Surface{domain.SurfaceResultsList},
	})
	require.NoError(t, err)

	title := "After"
	_, err = svc.UpdateContent(ctx, "someone-else", ad.ID, port.UpdateAdRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	updated, err := svc.UpdateContent(ctx, "owner-1", ad.ID, port.UpdateAdRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	// Moderation fields are unreachable through content edits.
	assert.False(t, updated.Hidden)
}

func TestDeleteOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newAdFixture(nil)
	ad, err := svc.Create(ctx, port.CreateAdRequest{
		OwnerKey: "owner-1",
		Tier:     domain.TierFree,
		Title:    "Mine",
		Surfaces: []domain.Surface{domain.SurfaceResultsList},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "someone-else", ad.ID), domain.ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, "owner-1", ad.ID))
	assert.ErrorIs(t, store.Get(ctx, port.CollectionAds, ad.ID, &domain.Ad{}), domain.ErrNotFound)
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newAdFixture(nil)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, port.CreateAdRequest{
			OwnerKey: "owner-1",
			Tier:     domain.TierFree,
			Title:    "Ad",
			Surfaces: []domain.Surface{domain.SurfaceResultsList},
		})
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}
	_, err := svc.Create(ctx, port.CreateAdRequest{
		OwnerKey: "owner-2",
		Tier:     domain.TierFree,
		Title:    "Other",
		Surfaces: []domain.Surface{domain.SurfaceResultsList},
	})
	require.NoError(t, err)

	ads, err := svc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, ads, 3)
	for i := 1; i < len(ads); i++ {
		assert.False(t, ads[i].CreatedAt.Before(ads[i-1].CreatedAt), "owner listing is oldest first")
	}
}

func TestUpgradeVerifiedExtendsAndRetiers(t *testing.T) {
	ctx := context.Background()
	payments := &fakePayments{result: port.PurchaseResult{Status: port.PurchaseVerified, TransactionID: "tx-42"}}
	svc, _, _ := newAdFixture(payments)

	ad, err := svc.Create(ctx, port.CreateAdRequest{
		OwnerKey: "owner-1",
		Tier:     domain.TierWeekly,
		Title:    "Upgradable",
		Surfaces: []domain.Surface{domain.SurfaceResultsList},
	})
	require.NoError(t, err)

	result, err := svc.Upgrade(ctx, "owner-1", ad.ID, domain.TierPrime)
	require.NoError(t, err)
	assert.Equal(t, port.PurchaseVerified, result.Status)
	assert.Equal(t, []string{domain.TierPrime.ProductID()}, payments.products)

	got, err := svc.Get(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPrime, got.Tier)
	// Still-active ads extend from their current expiry.
	assert.True(t, got.ExpiresAt.Equal(ad.ExpiresAt.Add(domain.TierPrime.Duration())))
}

func TestUpgradeExpiredAdExtendsFromNow(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newAdFixture(nil)
	ad, err := svc.Create(ctx, port.CreateAdRequest{
		OwnerKey: "owner-1",
		Tier:     domain.TierWeekly,
		Title:    "Lapsed",
		Surfaces: []domain.Surface{domain.SurfaceResultsList},
	})
	require.NoError(t, err)

	clock.Advance(domain.TierWeekly.Duration() + 24*time.Hour)
	_, err = svc.Upgrade(ctx, "owner-1", ad.ID, domain.TierMonthly)
	require.NoError(t, err)

	got, err := svc.Get(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.Equal(clock.Now().Add(domain.TierMonthly.Duration())))
	assert.Equal(t, domain.AdActive, got.StateAt(clock.Now()))
}

func TestUpgradeNonVerifiedLeavesAdAlone(t *testing.T) {
	ctx := context.Background()
	for _, status := range []port.PurchaseStatus{port.PurchaseCancelled, port.PurchasePending, port.PurchaseUnverified} {
		payments := &fakePayments{result: port.PurchaseResult{Status: status}}
		svc, _, _ := newAdFixture(payments)
		ad, err := svc.Create(ctx, port.CreateAdRequest{
			OwnerKey: "owner-1",
			Tier:     domain.TierWeekly,
			Title:    "Unchanged",
			Surfaces: []domain.Surface{domain.SurfaceResultsList},
		})
		require.NoError(t, err)

		result, err := svc.Upgrade(ctx, "owner-1", ad.ID, domain.TierPrime)
		require.NoError(t, err)
		assert.Equal(t, status, result.Status)

		got, err := svc.Get(ctx, ad.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TierWeekly, got.Tier, "status %s must not re-tier", status)
		assert.True(t, got.ExpiresAt.Equal(ad.ExpiresAt), "status %s must not extend expiry", status)
	}
}

func TestUpgradeRejectsFreeTierAndStrangers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAdFixture(nil)
	ad, err := svc.Create(ctx, port.CreateAdRequest{
		OwnerKey: "owner-1",
		Tier:     domain.TierWeekly,
		Title:    "Guarded",
		Surfaces: []domain.Surface{domain.SurfaceResultsList},
	})
	require.NoError(t, err)

	_, err = svc.Upgrade(ctx, "owner-1", ad.ID, domain.TierFree)
	require.Error(t, err)

	_, err = svc.Upgrade(ctx, "someone-else", ad.ID, domain.TierPrime)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
