package domain

import (
	"strings"
	"time"
)

// MaxPostContentLength bounds post content in runes.
const MaxPostContentLength = 5000

// Post is an authored content unit, optionally tagged with tribes.
// Posts are immutable once created.
type Post struct {
	ID                string
	AuthorID          string
	AuthorDisplayName string
	Content           string
	TribeIDs          []string
	CreatedAt         time.Time
}

// CreatePostRequest holds parameters for publishing a post.
type CreatePostRequest struct {
	AuthorID string
	Content  string
	TribeIDs []string
}

// Validate checks that the request is well-formed and de-duplicates tribe IDs.
// Tribe membership is not checked here; unknown or foreign tribes are dropped later.
func (r *CreatePostRequest) Validate() error {
	if err := RequireIDs("author_id", r.AuthorID); err != nil {
		return err
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrValidation("content is required")
	}
	if len([]rune(r.Content)) > MaxPostContentLength {
		return ErrValidation("content exceeds %d characters", MaxPostContentLength)
	}

	seen := make(map[string]struct{}, len(r.TribeIDs))
	ids := make([]string, 0, len(r.TribeIDs))
	for _, id := range r.TribeIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	r.TribeIDs = ids
	return nil
}

// FeedPage is one page of a composed feed.
type FeedPage struct {
	Filter        string
	Posts         []Post
	Total         int64
	NextPageToken string
}

// EmptyFeedPage returns a page with no posts for the given filter.
func EmptyFeedPage(filter PostFilter) *FeedPage {
	return &FeedPage{Filter: filter.String(), Posts: []Post{}}
}
