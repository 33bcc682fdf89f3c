package domain

import "time"

// GateMode selects which quota, if any, a submission consumes.
type GateMode string

const (
	// GateNone performs no quota accounting.
	GateNone GateMode = "none"
	// GateLifetimeGift burns a once-ever quota keyed by the place. The
	// quota is consumed before the submission is persisted.
	GateLifetimeGift GateMode = "lifetime_gift"
	// GatePeriodicFree consumes the owner's recurring free slot. The mark
	// is committed together with the submission.
	GatePeriodicFree GateMode = "periodic_free"
)

// QuotaMarker records a permanently consumed scope. Its ScopeKey doubles
// as the record's primary key, so the store's create-fails-if-exists
// guarantee makes consumption exactly-once. Markers are never updated or
// deleted by normal operation.
type QuotaMarker struct {
	ScopeKey  string            `json:"scope_key"`
	OwnerKey  string            `json:"owner_key"`
	CreatedAt time.Time         `json:"created_at"`
	Payload   map[string]string `json:"payload,omitempty"`
}

// Owner is the per-identity record touched by periodic gating. LastFreeAt
// is zero when the owner has never used the free slot.
type Owner struct {
	Key        string    `json:"key"`
	LastFreeAt time.Time `json:"last_free_at"`
}
