// Package auditutil records service mutations in the audit trail.
package auditutil

import (
	"context"

	"pingsocial/internal/domain"
)

// LogOK records a mutation that changed state.
func LogOK(ctx context.Context, audit domain.AuditRepository, actor, action, target string) {
	logMutation(ctx, audit, actor, action, target, domain.AuditStatusOK)
}

// LogNoop records a request that was accepted but changed nothing.
func LogNoop(ctx context.Context, audit domain.AuditRepository, actor, action, target string) {
	logMutation(ctx, audit, actor, action, target, domain.AuditStatusNoop)
}

// Audit failures never fail the operation that triggered them.
func logMutation(ctx context.Context, audit domain.AuditRepository, actor, action, target, status string) {
	if audit == nil {
		return
	}
	_ = audit.Insert(ctx, &domain.AuditEntry{
		ActorID:  actor,
		Action:   action,
		TargetID: target,
		Status:   status,
	})
}
