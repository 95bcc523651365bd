package repository

import (
	"context"
	"database/sql"
	"time"

	"pingsocial/internal/domain"
)

// tribeSelect projects tribes with their derived member count.
const tribeSelect = `
	SELECT t.id, t.name, t.description, t.created_at,
	       (SELECT COUNT(*) FROM tribe_members m WHERE m.tribe_id = t.id) AS member_count
	FROM tribes t`

// TribeRepo implements domain.TribeRepository using SQLite.
// Membership lives in the single tribe_members relation, so a user's tribes
// and a tribe's members are two reads of the same rows.
type TribeRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewTribeRepo creates a new TribeRepo.
func NewTribeRepo(db *sql.DB) *TribeRepo {
	return &TribeRepo{db: db, now: time.Now}
}

func (r *TribeRepo) Create(ctx context.Context, t *domain.Tribe) (*domain.Tribe, error) {
	created := &domain.Tribe{
		ID:          domain.NewID(),
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   r.now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tribes (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		created.ID, created.Name, created.Description, formatTime(created.CreatedAt))
	if err != nil {
		return nil, mapDBError(err)
	}
	return created, nil
}

func (r *TribeRepo) GetByID(ctx context.Context, id string) (*domain.Tribe, error) {
	t, err := scanTribe(r.db.QueryRowContext(ctx, tribeSelect+` WHERE t.id = ?`, id))
	if err != nil {
		return nil, mapDBError(err)
	}
	return t, nil
}

func (r *TribeRepo) GetByName(ctx context.Context, name string) (*domain.Tribe, error) {
	t, err := scanTribe(r.db.QueryRowContext(ctx, tribeSelect+` WHERE t.name = ?`, name))
	if err != nil {
		return nil, mapDBError(err)
	}
	return t, nil
}

func (r *TribeRepo) ListAll(ctx context.Context) ([]domain.Tribe, error) {
	return r.listTribes(ctx, tribeSelect+` ORDER BY t.name, t.id`)
}

func (r *TribeRepo) AddMember(ctx context.Context, userID, tribeID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tribe_members (user_id, tribe_id, joined_at) VALUES (?, ?, ?)`,
		userID, tribeID, formatTime(r.now()))
	return mapDBError(err)
}

func (r *TribeRepo) RemoveMember(ctx context.Context, userID, tribeID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tribe_members WHERE user_id = ? AND tribe_id = ?`, userID, tribeID)
	if err != nil {
		return false, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *TribeRepo) IsMember(ctx context.Context, userID, tribeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tribe_members WHERE user_id = ? AND tribe_id = ?)`,
		userID, tribeID).Scan(&exists)
	return exists, err
}

func (r *TribeRepo) ListForUser(ctx context.Context, userID string) ([]domain.Tribe, error) {
	return r.listTribes(ctx, tribeSelect+`
		JOIN tribe_members um ON um.tribe_id = t.id
		WHERE um.user_id = ?
		ORDER BY t.name, t.id`, userID)
}

func (r *TribeRepo) ListMembers(ctx context.Context, tribeID string) ([]domain.TribeMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.display_name, m.joined_at
		FROM tribe_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.tribe_id = ?
		ORDER BY m.joined_at, u.id`, tribeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	members := []domain.TribeMember{}
	for rows.Next() {
		var (
			m        domain.TribeMember
			joinedAt string
		)
		if err := rows.Scan(&m.UserID, &m.Email, &m.DisplayName, &joinedAt); err != nil {
			return nil, err
		}
		if m.JoinedAt, err = parseTime(joinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *TribeRepo) TribeIDsForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tribe_id FROM tribe_members WHERE user_id = ? ORDER BY tribe_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *TribeRepo) listTribes(ctx context.Context, query string, args ...any) ([]domain.Tribe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	tribes := []domain.Tribe{}
	for rows.Next() {
		t, err := scanTribe(rows)
		if err != nil {
			return nil, err
		}
		tribes = append(tribes, *t)
	}
	return tribes, rows.Err()
}

func scanTribe(s rowScanner) (*domain.Tribe, error) {
	var (
		t         domain.Tribe
		createdAt string
	)
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &createdAt, &t.MemberCount); err != nil {
		return nil, err
	}
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}
