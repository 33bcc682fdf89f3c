package port

import (
	"context"
	"time"

	"minar-ads/internal/core/domain"
)

// Geocoder resolves a postal address to a coordinate. A failed resolution
// is reported as *domain.GeocodeError.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Coordinate, error)
}

// PurchaseStatus is the outcome of a purchase attempt as reported by the
// payment collaborator.
type PurchaseStatus string

const (
	PurchaseVerified   PurchaseStatus = "verified"
	PurchaseCancelled  PurchaseStatus = "cancelled"
	PurchasePending    PurchaseStatus = "pending"
	PurchaseUnverified PurchaseStatus = "unverified"
)

// PurchaseResult carries the status and, when verified, the transaction
// identifier of a completed purchase.
type PurchaseResult struct {
	Status        PurchaseStatus
	TransactionID string
}

// PaymentProvider executes tier purchases. The purchase UI flow itself is
// outside the engine; this port only verifies outcomes.
type PaymentProvider interface {
	Purchase(ctx context.Context, productID string) (PurchaseResult, error)
}

// AdminDirectory answers whether a caller holds admin rights. Consulted
// by every moderation operation.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, callerKey string) bool
}

// Clock supplies the current instant. Lifecycle derivation and rotation
// bucketing go through it so tests can run without real delays.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
