package governance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionScheduler purges old audit entries on a cron schedule.
type RetentionScheduler struct {
	cron      *cron.Cron
	svc       *AuditService
	schedule  string
	retention time.Duration
	logger    *slog.Logger
}

// NewRetentionScheduler creates a scheduler for the given cron spec.
func NewRetentionScheduler(svc *AuditService, schedule string, retention time.Duration, logger *slog.Logger) *RetentionScheduler {
	return &RetentionScheduler{
		cron:      cron.New(),
		svc:       svc,
		schedule:  schedule,
		retention: retention,
		logger:    logger,
	}
}

// Start registers the purge job and starts the cron scheduler.
// The job runs with ctx, so cancelling it aborts an in-flight purge.
func (s *RetentionScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() { s.runOnce(ctx) })
	if err != nil {
		return fmt.Errorf("invalid audit purge schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("audit retention scheduler started", "schedule", s.schedule, "retention", s.retention.String())
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (s *RetentionScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("audit retention scheduler stopped")
}

func (s *RetentionScheduler) runOnce(ctx context.Context) {
	if _, err := s.svc.Purge(ctx, s.retention); err != nil {
		s.logger.Warn("scheduled audit purge failed", "error", err)
	}
}
