package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pingsocial/internal/domain"
)

// AuditRepo implements domain.AuditRepository using SQLite.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	if e.ID == "" {
		e.ID = domain.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	var detail sql.NullString
	if e.Detail != nil {
		detail = sql.NullString{String: *e.Detail, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, action, target_id, status, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ActorID, e.Action, e.TargetID, e.Status, detail, formatTime(e.CreatedAt))
	return mapDBError(err)
}

func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ActorID != nil {
		conds = append(conds, "actor_id = ?")
		args = append(args, *filter.ActorID)
	}
	if filter.Action != nil {
		conds = append(conds, "action = ?")
		args = append(args, *filter.Action)
	}
	if filter.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	queryArgs := append(append([]any{}, args...), filter.Page.Limit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor_id, action, target_id, status, detail, created_at FROM audit_log`+where+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close() //nolint:errcheck

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var (
			e         domain.AuditEntry
			detail    sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TargetID, &e.Status, &detail, &createdAt); err != nil {
			return nil, 0, err
		}
		if detail.Valid {
			d := detail.String
			e.Detail = &d
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// PurgeOlderThan deletes entries created strictly before the cutoff.
func (r *AuditRepo) PurgeOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_log WHERE created_at < ?`, formatTime(before))
	if err != nil {
		return 0, mapDBError(err)
	}
	return res.RowsAffected()
}
