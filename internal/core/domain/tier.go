package domain

import (
	"fmt"
	"time"
)

// Tier is the paid promotion level of an ad. Tiers are strictly ordered:
// free < weekly < monthly < prime. A higher tier always outranks a lower
// one, regardless of how many ads sit in either group.
type Tier string

const (
	TierFree    Tier = "free"
	TierWeekly  Tier = "weekly"
	TierMonthly Tier = "monthly"
	TierPrime   Tier = "prime"
)

// tierMeta attaches ordering and billing metadata to each tier so the
// rest of the code never switches over tier names.
type tierMeta struct {
	priority  int
	duration  time.Duration
	productID string
}

var tiers = map[Tier]tierMeta{
	TierFree:    {priority: 0, duration: 7 * 24 * time.Hour, productID: ""},
	TierWeekly:  {priority: 1, duration: 7 * 24 * time.Hour, productID: "ad.tier.weekly"},
	TierMonthly: {priority: 2, duration: 30 * 24 * time.Hour, productID: "ad.tier.monthly"},
	TierPrime:   {priority: 3, duration: 30 * 24 * time.Hour, productID: "ad.tier.prime"},
}

// ParseTier validates a raw tier string.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := tiers[t]; !ok {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}

// Valid reports whether the tier is one of the known levels.
func (t Tier) Valid() bool {
	_, ok := tiers[t]
	return ok
}

// Priority returns the ranking priority of the tier. Higher values rank
// above lower ones.
func (t Tier) Priority() int {
	return tiers[t].priority
}

// Duration returns how long a placement at this tier runs from activation.
func (t Tier) Duration() time.Duration {
	return tiers[t].duration
}

// ProductID returns the purchase product identifier for paid tiers. The
// free tier has no product and returns an empty string.
func (t Tier) ProductID() string {
	return tiers[t].productID
}
