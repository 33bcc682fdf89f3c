package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// Seed inserts demo ads across all tiers and surfaces for local runs.
func Seed(ctx context.Context, store port.DocumentStore, clock port.Clock) error {
	now := clock.Now()
	tiers := []domain.Tier{domain.TierFree, domain.TierWeekly, domain.TierMonthly, domain.TierPrime}
	surfaces := [][]domain.Surface{
		{domain.SurfaceMapPins, domain.SurfaceResultsList},
		{domain.SurfaceResultsList, domain.SurfaceSearchResults},
		{domain.SurfaceBanner},
		{domain.SurfaceMapPins, domain.SurfaceResultsList, domain.SurfaceSearchResults, domain.SurfaceBanner},
	}
	for i, tier := range tiers {
		for j := 1; j <= 3; j++ {
			ad := domain.Ad{
				ID:        uuid.NewString(),
				OwnerKey:  fmt.Sprintf("demo-owner-%d", j),
				Tier:      tier,
				Title:     fmt.Sprintf("Demo %s ad %d", tier, j),
				Body:      "Seeded listing for local development.",
				Category:  "demo",
				Surfaces:  surfaces[i],
				CreatedAt: now,
				ExpiresAt: now.Add(tier.Duration()),
			}
			if err := store.Create(ctx, port.CollectionAds, ad.ID, ad); err != nil {
				return err
			}
		}
	}
	return nil
}
