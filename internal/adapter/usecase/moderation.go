package usecase

import (
	"context"
	"log/slog"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// ModerationService is the admin-controlled visibility override. It never
// touches tier or lifecycle: unhiding restores exactly the rank the ad
// would otherwise have. Hidden/AdminNote writes are last-writer-wins.
type ModerationService struct {
	store  port.DocumentStore
	admins port.AdminDirectory
	clock  port.Clock
	logger *slog.Logger
}

// NewModerationService wires the moderation collaborators.
func NewModerationService(store port.DocumentStore, admins port.AdminDirectory, clock port.Clock, logger *slog.Logger) *ModerationService {
	return &ModerationService{store: store, admins: admins, clock: clock, logger: logger}
}

func (m *ModerationService) requireAdmin(ctx context.Context, callerKey string) error {
	if !m.admins.IsAdmin(ctx, callerKey) {
		return domain.ErrPermissionDenied
	}
	return nil
}

// Hide flags the ad as hidden with audit metadata.
func (m *ModerationService) Hide(ctx context.Context, callerKey, adID, note string) error {
	if err := m.requireAdmin(ctx, callerKey); err != nil {
		return err
	}
	now := m.clock.Now()
	err := m.store.Update(ctx, port.CollectionAds, adID, map[string]any{
		"hidden":     true,
		"admin_note": note,
		"hidden_by":  callerKey,
		"hidden_at":  now,
	})
	if err != nil {
		return err
	}
	m.logger.Info("ad hidden", slog.String("ad_id", adID), slog.String("admin", callerKey))
	return nil
}

// Unhide clears the moderation flag and its audit fields.
func (m *ModerationService) Unhide(ctx context.Context, callerKey, adID string) error {
	if err := m.requireAdmin(ctx, callerKey); err != nil {
		return err
	}
	err := m.store.Update(ctx, port.CollectionAds, adID, map[string]any{
		"hidden":     false,
		"admin_note": "",
		"hidden_by":  "",
		"hidden_at":  nil,
	})
	if err != nil {
		return err
	}
	m.logger.Info("ad unhidden", slog.String("ad_id", adID), slog.String("admin", callerKey))
	return nil
}

// Remove deletes the ad record entirely.
func (m *ModerationService) Remove(ctx context.Context, callerKey, adID string) error {
	if err := m.requireAdmin(ctx, callerKey); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, port.CollectionAds, adID); err != nil {
		return err
	}
	m.logger.Info("ad removed", slog.String("ad_id", adID), slog.String("admin", callerKey))
	return nil
}

// ReviewSubmission transitions a pending submission to approved or
// rejected.
func (m *ModerationService) ReviewSubmission(ctx context.Context, callerKey, submissionID string, approve bool) error {
	if err := m.requireAdmin(ctx, callerKey); err != nil {
		return err
	}
	status := domain.SubmissionRejected
	if approve {
		status = domain.SubmissionApproved
	}
	return m.store.Update(ctx, port.CollectionSubmissions, submissionID, map[string]any{
		"status": status,
	})
}

// Marker returns a consumed quota marker with its audit payload.
func (m *ModerationService) Marker(ctx context.Context, callerKey, scopeKey string) (domain.QuotaMarker, error) {
	if err := m.requireAdmin(ctx, callerKey); err != nil {
		return domain.QuotaMarker{}, err
	}
	var marker domain.QuotaMarker
	if err := m.store.Get(ctx, port.CollectionQuotaMarkers, scopeKey, &marker); err != nil {
		return domain.QuotaMarker{}, err
	}
	return marker, nil
}
