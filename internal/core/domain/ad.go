package domain

import (
	"slices"
	"time"
)

// AdState is the lifecycle state of an ad, derived from its timestamps on
// every read and never persisted.
type AdState string

const (
	// AdScheduled means the ad's activation time lies in the future.
	AdScheduled AdState = "scheduled"
	// AdActive means the ad is currently eligible for placement.
	AdActive AdState = "active"
	// AdExpired means the ad's paid window has passed. Expired ads are
	// retained for audit but never placed.
	AdExpired AdState = "expired"
)

// Ad is a promotional listing. It is owned by exactly one creator; content
// fields are mutated only by the owner, while Hidden/AdminNote are mutated
// only through the moderation path.
type Ad struct {
	ID        string    `json:"id"`
	OwnerKey  string    `json:"owner_key"`
	Tier      Tier      `json:"tier"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Category  string    `json:"category,omitempty"`
	MediaURLs []string  `json:"media_urls,omitempty"`
	Surfaces  []Surface `json:"surfaces"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	Hidden    bool       `json:"hidden"`
	AdminNote string     `json:"admin_note,omitempty"`
	HiddenBy  string     `json:"hidden_by,omitempty"`
	HiddenAt  *time.Time `json:"hidden_at,omitempty"`
}

// StateAt derives the lifecycle state of the ad at the given instant.
// The activation boundary is inclusive, the expiry boundary exclusive:
// createdAt <= now < expiresAt is Active.
func (a Ad) StateAt(now time.Time) AdState {
	if now.Before(a.CreatedAt) {
		return AdScheduled
	}
	if !now.Before(a.ExpiresAt) {
		return AdExpired
	}
	return AdActive
}

// OnSurface reports whether the ad may appear on the given surface.
func (a Ad) OnSurface(s Surface) bool {
	return slices.Contains(a.Surfaces, s)
}
