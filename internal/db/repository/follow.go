package repository

import (
	"context"
	"database/sql"

	"pingsocial/internal/domain"
)

// FollowRepo implements domain.FollowRepository using SQLite.
// The (follower_id, followed_id) primary key and the self-edge CHECK are the
// authoritative guards; Insert never does its own existence check.
type FollowRepo struct {
	db *sql.DB
}

// NewFollowRepo creates a new FollowRepo.
func NewFollowRepo(db *sql.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

func (r *FollowRepo) Insert(ctx context.Context, edge *domain.FollowEdge) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followed_id, created_at) VALUES (?, ?, ?)`,
		edge.FollowerID, edge.FollowedID, formatTime(edge.CreatedAt))
	return mapDBError(err)
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followedID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followed_id = ?`, followerID, followedID)
	if err != nil {
		return false, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FollowRepo) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?)`,
		followerID, followedID).Scan(&exists)
	return exists, err
}

// ListFollowers returns the users following userID, oldest edge first.
func (r *FollowRepo) ListFollowers(ctx context.Context, userID string) ([]domain.FollowListEntry, error) {
	return r.listEdges(ctx, `
		SELECT u.id, u.email, u.display_name, f.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = ?
		ORDER BY f.created_at, u.id`, userID)
}

// ListFollowing returns the users userID follows, oldest edge first.
func (r *FollowRepo) ListFollowing(ctx context.Context, userID string) ([]domain.FollowListEntry, error) {
	return r.listEdges(ctx, `
		SELECT u.id, u.email, u.display_name, f.created_at
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at, u.id`, userID)
}

func (r *FollowRepo) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE followed_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *FollowRepo) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *FollowRepo) listEdges(ctx context.Context, query, userID string) ([]domain.FollowListEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	entries := []domain.FollowListEntry{}
	for rows.Next() {
		var (
			e         domain.FollowListEntry
			createdAt string
		)
		if err := rows.Scan(&e.UserID, &e.Email, &e.DisplayName, &createdAt); err != nil {
			return nil, err
		}
		if e.FollowedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
