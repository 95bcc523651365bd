package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pingsocial/internal/domain"
)

const postSelect = `
	SELECT p.id, p.author_id, u.display_name, p.content, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// postOrder is newest first; ids are time-ordered so they break timestamp ties
// deterministically.
const postOrder = ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`

// PostRepo implements domain.PostRepository using SQLite.
type PostRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostRepo creates a new PostRepo.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db, now: time.Now}
}

// Create inserts the post and its tribe tags in one transaction. Requested
// tribes the author does not belong to (or that do not exist) are dropped by
// the membership join, so the check and the write see the same snapshot.
func (r *PostRepo) Create(ctx context.Context, p *domain.Post, requestedTribeIDs []string) (*domain.Post, error) {
	created := &domain.Post{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
	if created.ID == "" {
		created.ID = domain.NewID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = r.now()
	}
	created.CreatedAt = created.CreatedAt.UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, content, created_at) VALUES (?, ?, ?, ?)`,
		created.ID, created.AuthorID, created.Content, formatTime(created.CreatedAt)); err != nil {
		return nil, mapDBError(err)
	}

	created.TribeIDs = []string{}
	if len(requestedTribeIDs) > 0 {
		requested, err := jsonIDs(requestedTribeIDs)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO post_tribes (post_id, tribe_id)
			SELECT ?, m.tribe_id FROM tribe_members m
			WHERE m.user_id = ? AND m.tribe_id IN (SELECT value FROM json_each(?))`,
			created.ID, created.AuthorID, requested); err != nil {
			return nil, mapDBError(err)
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT tribe_id FROM post_tribes WHERE post_id = ? ORDER BY tribe_id`, created.ID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close() //nolint:errcheck,gosec
				return nil, err
			}
			created.TribeIDs = append(created.TribeIDs, id)
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	var name string
	if err := r.db.QueryRowContext(ctx,
		`SELECT display_name FROM users WHERE id = ?`, created.AuthorID).Scan(&name); err == nil {
		created.AuthorDisplayName = name
	}
	return created, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id))
	if err != nil {
		return nil, mapDBError(err)
	}
	posts := []domain.Post{*p}
	if err := r.attachTribes(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (r *PostRepo) ListAll(ctx context.Context, page domain.PageRequest) ([]domain.Post, int64, error) {
	return r.listPage(ctx, "", nil, page)
}

func (r *PostRepo) ListByAuthors(ctx context.Context, authorIDs []string, page domain.PageRequest) ([]domain.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, 0, nil
	}
	authors, err := jsonIDs(authorIDs)
	if err != nil {
		return nil, 0, err
	}
	return r.listPage(ctx, ` WHERE p.author_id IN (SELECT value FROM json_each(?))`, []any{authors}, page)
}

// ListFollowedBy returns posts written by users followerID follows. The
// audience is resolved inside the query, so its size never reaches the
// statement's parameter list.
func (r *PostRepo) ListFollowedBy(ctx context.Context, followerID string, page domain.PageRequest) ([]domain.Post, int64, error) {
	return r.listPage(ctx,
		` WHERE p.author_id IN (SELECT f.followed_id FROM follows f WHERE f.follower_id = ?)`,
		[]any{followerID}, page)
}

// ListByTribes returns posts tagged with any of tribeIDs. A post tagged with
// several of them appears once.
func (r *PostRepo) ListByTribes(ctx context.Context, tribeIDs []string, page domain.PageRequest) ([]domain.Post, int64, error) {
	if len(tribeIDs) == 0 {
		return []domain.Post{}, 0, nil
	}
	tribes, err := jsonIDs(tribeIDs)
	if err != nil {
		return nil, 0, err
	}
	return r.listPage(ctx,
		` WHERE p.id IN (SELECT pt.post_id FROM post_tribes pt WHERE pt.tribe_id IN (SELECT value FROM json_each(?)))`,
		[]any{tribes}, page)
}

func (r *PostRepo) listPage(ctx context.Context, where string, args []any, page domain.PageRequest) ([]domain.Post, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	queryArgs := append(append([]any{}, args...), page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, postSelect+where+postOrder, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close() //nolint:errcheck

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachTribes(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// attachTribes loads the tribe tags for a page of posts in one query.
func (r *PostRepo) attachTribes(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].TribeIDs = []string{}
	}

	// Bounded by the page size, so one placeholder per id is fine.
	in, args := inClause(ids)
	rows, err := r.db.QueryContext(ctx,
		`SELECT post_id, tribe_id FROM post_tribes WHERE post_id IN (`+in+`) ORDER BY post_id, tribe_id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var postID, tribeID string
		if err := rows.Scan(&postID, &tribeID); err != nil {
			return err
		}
		if i, ok := index[postID]; ok {
			posts[i].TribeIDs = append(posts[i].TribeIDs, tribeID)
		}
	}
	return rows.Err()
}

func scanPost(s rowScanner) (*domain.Post, error) {
	var (
		p         domain.Post
		createdAt string
	)
	if err := s.Scan(&p.ID, &p.AuthorID, &p.AuthorDisplayName, &p.Content, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}
