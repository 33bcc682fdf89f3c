package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeGeocoder resolves only the addresses it was scripted with.
type fakeGeocoder struct {
	coords map[string]domain.Coordinate
}

func (g *fakeGeocoder) Resolve(_ context.Context, address string) (domain.Coordinate, error) {
	if c, ok := g.coords[address]; ok {
		return c, nil
	}
	return domain.Coordinate{}, &domain.GeocodeError{Address: address}
}

// fakePayments returns a scripted purchase result and records the
// products it was asked for.
type fakePayments struct {
	result   port.PurchaseResult
	err      error
	products []string
}

func (p *fakePayments) Purchase(_ context.Context, productID string) (port.PurchaseResult, error) {
	p.products = append(p.products, productID)
	return p.result, p.err
}

// fakeAdmins treats the listed keys as admins.
type fakeAdmins struct {
	keys []string
}

func (a *fakeAdmins) IsAdmin(_ context.Context, callerKey string) bool {
	for _, k := range a.keys {
		if k == callerKey {
			return true
		}
	}
	return false
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
