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

func newModerationFixture() (*ModerationService, *memstore.Store, *fakeClock) {
	store := memstore.New()
	clock := newFakeClock()
	svc := NewModerationService(store, &fakeAdmins{keys: []string{"admin"}}, clock, testLogger())
	return svc, store, clock
}

func TestModerationRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newModerationFixture()
	ad := makeAd("ad-1", domain.TierWeekly, clock.Now())
	require.NoError(t, store.Create(ctx, port.CollectionAds, ad.ID, ad))

	assert.ErrorIs(t, svc.Hide(ctx, "mallory", "ad-1", "nope"), domain.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Unhide(ctx, "mallory", "ad-1"), domain.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Remove(ctx, "mallory", "ad-1"), domain.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ReviewSubmission(ctx, "mallory", "sub-1", true), domain.ErrPermissionDenied)
	_, err := svc.Marker(ctx, "mallory", "scope-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// The ad is untouched.
	var got domain.Ad
	require.NoError(t, store.Get(ctx, port.CollectionAds, "ad-1", &got))
	assert.False(t, got.Hidden)
}

func TestHideRecordsAudit(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newModerationFixture()
	ad := makeAd("ad-1", domain.TierMonthly, clock.Now())
	require.NoError(t, store.Create(ctx, port.CollectionAds, ad.ID, ad))

	require.NoError(t, svc.Hide(ctx, "admin", "ad-1", "duplicate listing"))

	var got domain.Ad
	require.NoError(t, store.Get(ctx, port.CollectionAds, "ad-1", &got))
	assert.True(t, got.Hidden)
	assert.Equal(t, "duplicate listing", got.AdminNote)
	assert.Equal(t, "admin", got.HiddenBy)
	require.NotNil(t, got.HiddenAt)
	assert.True(t, got.HiddenAt.Equal(clock.Now()))
	// Tier and lifecycle are untouched by moderation.
	assert.Equal(t, domain.TierMonthly, got.Tier)
	assert.True(t, got.ExpiresAt.Equal(ad.ExpiresAt))
}

func TestUnhideClearsAudit(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newModerationFixture()
	ad := makeAd("ad-1", domain.TierWeekly, clock.Now())
	require.NoError(t, store.Create(ctx, port.CollectionAds, ad.ID, ad))

	require.NoError(t, svc.Hide(ctx, "admin", "ad-1", "note"))
	require.NoError(t, svc.Unhide(ctx, "admin", "ad-1"))

	var got domain.Ad
	require.NoError(t, store.Get(ctx, port.CollectionAds, "ad-1", &got))
	assert.False(t, got.Hidden)
	assert.Empty(t, got.AdminNote)
	assert.Empty(t, got.HiddenBy)
	assert.Nil(t, got.HiddenAt)
}

func TestRemoveDeletesAd(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newModerationFixture()
	ad := makeAd("ad-1", domain.TierFree, clock.Now())
	require.NoError(t, store.Create(ctx, port.CollectionAds, ad.ID, ad))

	require.NoError(t, svc.Remove(ctx, "admin", "ad-1"))
	err := store.Get(ctx, port.CollectionAds, "ad-1", &domain.Ad{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, "admin", "ad-1"), domain.ErrNotFound)
}

func TestReviewSubmission(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newModerationFixture()
	sub := domain.Submission{
		ID:        "sub-1",
		OwnerKey:  "owner-1",
		PlaceName: "Corner House",
		Status:    domain.SubmissionPending,
		CreatedAt: clock.Now(),
	}
	require.NoError(t, store.Create(ctx, port.CollectionSubmissions, sub.ID, sub))

	require.NoError(t, svc.ReviewSubmission(ctx, "admin", "sub-1", true))
	var got domain.Submission
	require.NoError(t, store.Get(ctx, port.CollectionSubmissions, "sub-1", &got))
	assert.Equal(t, domain.SubmissionApproved, got.Status)

	require.NoError(t, svc.ReviewSubmission(ctx, "admin", "sub-1", false))
	require.NoError(t, store.Get(ctx, port.CollectionSubmissions, "sub-1", &got))
	assert.Equal(t, domain.SubmissionRejected, got.Status)
}

func TestMarkerAudit(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newModerationFixture()
	marker := domain.QuotaMarker{
		ScopeKey:  "scope-1",
		OwnerKey:  "owner-1",
		CreatedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Payload:   map[string]string{"submission_id": "sub-9"},
	}
	require.NoError(t, store.Create(ctx, port.CollectionQuotaMarkers, marker.ScopeKey, marker))

	got, err := svc.Marker(ctx, "admin", "scope-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", got.OwnerKey)
	assert.Equal(t, "sub-9", got.Payload["submission_id"])

	_, err = svc.Marker(ctx, "admin", "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
