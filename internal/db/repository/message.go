package repository

import (
	"context"
	"database/sql"
	"time"

	"pingsocial/internal/domain"
)

const conversationWhere = ` WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)`

// MessageRepo implements domain.MessageRepository using SQLite.
type MessageRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db, now: time.Now}
}

func (r *MessageRepo) Insert(ctx context.Context, m *domain.ChatMessage) error {
	if m.ID == "" {
		m.ID = domain.NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now()
	}
	m.CreatedAt = m.CreatedAt.UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, sender_id, recipient_id, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.SenderID, m.RecipientID, m.Text, formatTime(m.CreatedAt))
	return mapDBError(err)
}

// ListConversation pages through both directions of the a/b conversation,
// oldest first. Ids are time-ordered and break timestamp ties.
func (r *MessageRepo) ListConversation(ctx context.Context, userA, userB string, page domain.PageRequest) ([]domain.ChatMessage, int64, error) {
	args := []any{userA, userB, userB, userA}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_messages`+conversationWhere, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sender_id, recipient_id, text, created_at FROM chat_messages`+conversationWhere+
			` ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`,
		append(args, page.Limit(), page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close() //nolint:errcheck

	msgs := []domain.ChatMessage{}
	for rows.Next() {
		var (
			m         domain.ChatMessage
			createdAt string
		)
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Text, &createdAt); err != nil {
			return nil, 0, err
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, m)
	}
	return msgs, total, rows.Err()
}

func (r *MessageRepo) DeleteConversation(ctx context.Context, userA, userB string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages`+conversationWhere, userA, userB, userB, userA)
	if err != nil {
		return 0, mapDBError(err)
	}
	return res.RowsAffected()
}
