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

func newSubmissionFixture(coords map[string]domain.Coordinate) (*SubmissionService, *memstore.Store, *fakeClock) {
	store := memstore.New()
	clock := newFakeClock()
	gate := NewQuotaGate(store, clock, 30*24*time.Hour)
	svc := NewSubmissionService(store, &fakeGeocoder{coords: coords}, gate, clock, testLogger())
	return svc, store, clock
}

func countDocs(t *testing.T, store *memstore.Store, collection string) int {
	t.Helper()
	docs, err := store.Query(context.Background(), collection, port.Query{})
	require.NoError(t, err)
	return len(docs)
}

func TestSubmitLifetimeGiftSamePlaceTwice(t *testing.T) {
	ctx := context.Background()
	// Two spellings of the same address; the geocoder returns coordinates
	// differing past the fourth decimal, as real geocoders do.
	coords := map[string]domain.Coordinate{
		"12 Crescent Road, Leeds":  {Lat: 53.799712, Lng: -1.549311},
		"12  crescent ROAD, Leeds": {Lat: 53.799747, Lng: -1.549338},
	}
	svc, store, _ := newSubmissionFixture(coords)

	id, err := svc.Submit(ctx, port.SubmitRequest{
		OwnerKey:  "owner-1",
		PlaceName: "Crescent Hall",
		Address:   "12 Crescent Road, Leeds",
		Mode:      domain.GateLifetimeGift,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = svc.Submit(ctx, port.SubmitRequest{
		OwnerKey:  "owner-2",
		PlaceName: "Crescent Hall",
		Address:   "12  crescent ROAD, Leeds",
		Mode:      domain.GateLifetimeGift,
	})
	var quotaErr *domain.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Contains(t, quotaErr.Reason, "already used")

	assert.Equal(t, 1, countDocs(t, store, port.CollectionSubmissions))
	assert.Equal(t, 1, countDocs(t, store, port.CollectionQuotaMarkers))
}

func TestSubmitLifetimeGiftLinksMarker(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSubmissionFixture(map[string]domain.Coordinate{
		"1 Mill Lane": {Lat: 51.5010, Lng: -0.1416},
	})

	id, err := svc.Submit(ctx, port.SubmitRequest{
		OwnerKey:  "owner-1",
		PlaceName: "Mill Lane Centre",
		Address:   "1 Mill Lane",
		Mode:      domain.GateLifetimeGift,
	})
	require.NoError(t, err)

	var sub domain.Submission
	require.NoError(t, store.Get(ctx, port.CollectionSubmissions, id, &sub))
	require.NotEmpty(t, sub.LifetimePlaceKey)
	assert.Equal(t, domain.SubmissionPending, sub.Status)

	// The marker's audit payload names the submission it paid for.
	var marker domain.QuotaMarker
	require.NoError(t, store.Get(ctx, port.CollectionQuotaMarkers, sub.LifetimePlaceKey, &marker))
	assert.Equal(t, id, marker.Payload["submission_id"])
	assert.Equal(t, "owner-1", marker.OwnerKey)
}

func TestSubmitGeocodeFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSubmissionFixture(nil)

	_, err := svc.Submit(ctx, port.SubmitRequest{
		OwnerKey:  "owner-1",
		PlaceName: "Nowhere",
		Address:   "unresolvable address",
		Mode:      domain.GateLifetimeGift,
	})
	var geoErr *domain.GeocodeError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, "unresolvable address", geoErr.Address)

	assert.Zero(t, countDocs(t, store, port.CollectionSubmissions))
	assert.Zero(t, countDocs(t, store, port.CollectionQuotaMarkers))
}

func TestSubmitPeriodicPairsMarkWithSubmission(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newSubmissionFixture(map[string]domain.Coordinate{
		"5 High Street": {Lat: 52.2053, Lng: 0.1218},
	})

	id, err := svc.Submit(ctx, port.SubmitRequest{
		OwnerKey:  "owner-1",
		PlaceName: "High Street Rooms",
		Address:   "5 High Street",
		Mode:      domain.GatePeriodicFree,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	var owner domain.Owner
	require.NoError(t, store.Get(ctx, port.CollectionOwners, "owner-1", &owner))
	assert.True(t, owner.LastFreeAt.Equal(clock.Now()))

	// Ten days on, the slot is still closed and no record is written.
	clock.Advance(10 * 24 * time.Hour)
	_, err = svc.Submit(ctx, port.SubmitRequest{
		OwnerKey:  "owner-1",
		PlaceName: "High Street Rooms",
		Address:   "5 High Street",
		Mode:      domain.GatePeriodicFree,
	})
	var quotaErr *domain.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	require.NotNil(t, quotaErr.NextEligibleAt)
	assert.Equal(t, 1, countDocs(t, store, port.CollectionSubmissions))

	// Day 31: eligible again.
	clock.Advance(21 * 24 * time.Hour)
	_, err = svc.Submit(ctx, port.SubmitRequest{
		OwnerKey:  "owner-1",
		PlaceName: "High Street Rooms",
		Address:   "5 High Street",
		Mode:      domain.GatePeriodicFree,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countDocs(t, store, port.CollectionSubmissions))
}

func TestSubmitWithoutGate(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSubmissionFixture(map[string]domain.Coordinate{
		"9 Park Row": {Lat: 53.7997, Lng: -1.5492},
	})

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, port.SubmitRequest{
			OwnerKey:  "owner-1",
			PlaceName: "Park Row",
			Address:   "9 Park Row",
			Mode:      domain.GateNone,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, countDocs(t, store, port.CollectionSubmissions))
	assert.Zero(t, countDocs(t, store, port.CollectionQuotaMarkers))
}
