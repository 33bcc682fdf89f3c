package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// RankingService computes the ordered, rotated ad listing per display
// surface. Ordering is pure and deterministic: identical inputs always
// yield identical output.
type RankingService struct {
	store port.DocumentStore
	clock port.Clock
}

// NewRankingService returns a ranking service over the given store.
func NewRankingService(store port.DocumentStore, clock port.Clock) *RankingService {
	return &RankingService{store: store, clock: clock}
}

// Rank loads the ad set and orders it for the requested surface. When no
// bucket is supplied the current hour is used.
func (r *RankingService) Rank(ctx context.Context, req port.RankRequest) ([]domain.Ad, error) {
	docs, err := r.store.Query(ctx, port.CollectionAds, port.Query{})
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
	bucket := HourBucket(r.clock.Now())
	if req.Bucket != nil {
		bucket = *req.Bucket
	}
	return Order(ads, req.Surface, req.Category, r.clock.Now(), bucket), nil
}

// HourBucket returns the rotation bucket for an instant at hour
// granularity.
func HourBucket(t time.Time) uint64 {
	return uint64(t.UTC().Unix() / 3600)
}

// Order filters to active, visible, surface-matching ads and sorts by
// (tier priority desc, rotation rank asc, createdAt asc, id asc).
//
// The rotation rank is computed only among ads sharing a tier. Members
// are slotted into a ring ordered by a hash of their id, and the ring is
// rotated by the time bucket: over any window of consecutive buckets at
// least as long as the group, every member holds the top slot an equal
// number of times. Recomputing with a new bucket redistributes the order;
// the same bucket always reproduces it.
func Order(ads []domain.Ad, surface domain.Surface, category string, now time.Time, bucket uint64) []domain.Ad {
	eligible := make([]domain.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.StateAt(now) != domain.AdActive || ad.Hidden {
			continue
		}
		if !ad.OnSurface(surface) {
			continue
		}
		if category != "" && ad.Category != "" && ad.Category != category {
			continue
		}
		eligible = append(eligible, ad)
	}

	rotation := rotationRanks(eligible, bucket)

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if pa, pb := a.Tier.Priority(), b.Tier.Priority(); pa != pb {
			return pa > pb
		}
		if ra, rb := rotation[a.ID], rotation[b.ID]; ra != rb {
			return ra < rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return eligible
}

// rotationRanks assigns each ad its rotation rank within its tier group.
func rotationRanks(ads []domain.Ad, bucket uint64) map[string]int {
	groups := make(map[int][]domain.Ad)
	for _, ad := range ads {
		p := ad.Tier.Priority()
		groups[p] = append(groups[p], ad)
	}
	ranks := make(map[string]int, len(ads))
	for _, group := range groups {
		// Ring order is a hash shuffle of the ids so creation order does
		// not dictate slotting.
		sort.Slice(group, func(i, j int) bool {
			hi, hj := xxhash.Sum64String(group[i].ID), xxhash.Sum64String(group[j].ID)
			if hi != hj {
				return hi < hj
			}
			return group[i].ID < group[j].ID
		})
		size := uint64(len(group))
		for i, ad := range group {
			ranks[ad.ID] = int((uint64(i) + bucket) % size)
		}
	}
	return ranks
}
