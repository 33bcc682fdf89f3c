package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// SubmissionService runs the submission pipeline: resolve the address,
// normalize it, derive the place key, consume the requested quota and
// persist the record.
type SubmissionService struct {
	store    port.DocumentStore
	geocoder port.Geocoder
	gate     *QuotaGate
	clock    port.Clock
	logger   *slog.Logger
}

// NewSubmissionService wires the pipeline's collaborators.
func NewSubmissionService(store port.DocumentStore, geocoder port.Geocoder, gate *QuotaGate, clock port.Clock, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{store: store, geocoder: geocoder, gate: gate, clock: clock, logger: logger}
}

// Submit runs the pipeline and returns the new submission id.
//
// In lifetime-gift mode the quota is burned before the submission write:
// a gate failure writes nothing, while a persistence failure after a
// successful consumption leaves the scope burned with no record. The
// marker's payload carries the attempted submission id so the case can be
// reconciled.
//
// In periodic-free mode the eligibility check happens first and the mark
// is committed in the same batch as the submission, so neither is ever
// persisted without the other.
func (s *SubmissionService) Submit(ctx context.Context, req port.SubmitRequest) (string, error) {
	coord, err := s.geocoder.Resolve(ctx, req.Address)
	if err != nil {
		return "", err
	}

	normalized := domain.NormalizeAddress(req.Address)
	placeKey := domain.PlaceKey(normalized, coord.Lat, coord.Lng)

	sub := domain.Submission{
		ID:                uuid.NewString(),
		OwnerKey:          req.OwnerKey,
		PlaceName:         req.PlaceName,
		PlaceType:         req.PlaceType,
		Address:           req.Address,
		NormalizedAddress: normalized,
		Lat:               domain.RoundCoord(coord.Lat),
		Lng:               domain.RoundCoord(coord.Lng),
		Status:            domain.SubmissionPending,
		CreatedAt:         s.clock.Now(),
	}

	switch req.Mode {
	case domain.GateLifetimeGift:
		sub.LifetimePlaceKey = placeKey
		payload := map[string]string{
			"submission_id": sub.ID,
			"place_name":    req.PlaceName,
			"owner_key":     req.OwnerKey,
		}
		if err = s.gate.ConsumeLifetime(ctx, placeKey, req.OwnerKey, payload); err != nil {
			return "", err
		}
		if err = s.store.Create(ctx, port.CollectionSubmissions, sub.ID, sub); err != nil {
			// The gift is consumed with no matching submission; the
			// marker payload names the submission id for reconciliation.
			s.logger.Warn("lifetime gift consumed without submission",
				slog.String("place_key", placeKey),
				slog.String("submission_id", sub.ID),
				slog.Any("error", err))
			return "", err
		}
	case domain.GatePeriodicFree:
		ok, next, err := s.gate.PeriodicEligibility(ctx, req.OwnerKey)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", &domain.QuotaExceededError{
				Scope:          req.OwnerKey,
				Reason:         "free slot already used this period",
				NextEligibleAt: &next,
			}
		}
		writes := []port.Write{
			{Kind: port.WriteCreate, Collection: port.CollectionSubmissions, ID: sub.ID, Doc: sub},
			{Kind: port.WriteSet, Collection: port.CollectionOwners, ID: req.OwnerKey, Fields: s.gate.PeriodicMarkFields(req.OwnerKey)},
		}
		if err = s.store.BatchCommit(ctx, writes); err != nil {
			return "", err
		}
	default:
		if err = s.store.Create(ctx, port.CollectionSubmissions, sub.ID, sub); err != nil {
			return "", err
		}
	}

	s.logger.Info("submission accepted",
		slog.String("submission_id", sub.ID),
		slog.String("mode", string(req.Mode)))
	return sub.ID, nil
}
