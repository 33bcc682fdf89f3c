package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a referenced ad, submission or marker does
// not exist.
var ErrNotFound = errors.New("not found")

// ErrPermissionDenied is returned when a caller attempts a moderation or
// owner-only operation without the required identity.
var ErrPermissionDenied = errors.New("permission denied")

// QuotaExceededError reports that a quota scope has already been
// consumed. It is an expected, user-facing outcome and is never retried
// automatically: retrying an already-consumed scope cannot succeed.
type QuotaExceededError struct {
	Scope  string
	Reason string
	// NextEligibleAt is set for periodic quotas and tells the caller when
	// the next attempt can succeed. Nil for lifetime quotas.
	NextEligibleAt *time.Time
}

func (e *QuotaExceededError) Error() string {
	if e.NextEligibleAt != nil {
		return fmt.Sprintf("quota exceeded for %s: %s (next eligible %s)", e.Scope, e.Reason, e.NextEligibleAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("quota exceeded for %s: %s", e.Scope, e.Reason)
}

// GeocodeError reports that an address could not be resolved to a
// coordinate. The caller should request a corrected address.
type GeocodeError struct {
	Address string
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("address could not be resolved: %q", e.Address)
}

// TransientStoreError wraps a store or network failure that is safe for
// the caller to retry. The gate never retries internally.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }
