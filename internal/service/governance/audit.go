// Package governance implements the audit trail and its retention.
package governance

import (
	"context"
	"log/slog"
	"time"

	"pingsocial/internal/domain"
)

// AuditService provides audit log operations.
type AuditService struct {
	repo   domain.AuditRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo domain.AuditRepository, logger *slog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger, now: time.Now}
}

// List returns a filtered, paginated list of the viewer's own audit entries.
// Any actor filter on the request is replaced with the viewer.
func (s *AuditService) List(ctx context.Context, viewerID string, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if err := domain.RequireIDs("viewer_id", viewerID); err != nil {
		return nil, 0, err
	}
	filter.ActorID = &viewerID
	return s.repo.List(ctx, filter)
}

// Purge deletes entries older than retention and returns how many were removed.
func (s *AuditService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, domain.ErrValidation("audit retention must be positive")
	}
	cutoff := s.now().Add(-retention)
	n, err := s.repo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("audit log purged", "removed", n, "cutoff", cutoff.UTC().Format(time.RFC3339))
	return n, nil
}
