// Package feed composes per-viewer post feeds and publishes posts.
package feed

import (
	"context"
	"log/slog"
	"slices"

	"pingsocial/internal/domain"
	"pingsocial/internal/service/auditutil"
)

// FeedService selects and orders posts for a viewer under a filter mode.
// Every call re-reads the graph; nothing is cached between requests.
type FeedService struct {
	posts   domain.PostRepository
	users   domain.UserRepository
	follows domain.FollowRepository
	tribes  domain.TribeRepository
	audit   domain.AuditRepository
	logger  *slog.Logger
}

// NewFeedService creates a new FeedService.
func NewFeedService(
	posts domain.PostRepository,
	users domain.UserRepository,
	follows domain.FollowRepository,
	tribes domain.TribeRepository,
	audit domain.AuditRepository,
	logger *slog.Logger,
) *FeedService {
	return &FeedService{
		posts:   posts,
		users:   users,
		follows: follows,
		tribes:  tribes,
		audit:   audit,
		logger:  logger,
	}
}

// Feed returns one page of the viewer's feed. A nil filter means ALL.
func (s *FeedService) Feed(ctx context.Context, viewerID string, filter domain.PostFilter, page domain.PageRequest) (*domain.FeedPage, error) {
	if err := domain.RequireIDs("viewer_id", viewerID); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = domain.AllPosts{}
	}
	if err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}

	q := &feedQuery{ctx: ctx, svc: s, viewerID: viewerID, page: page}
	if err := filter.Accept(q); err != nil {
		return nil, err
	}
	if q.posts == nil {
		return domain.EmptyFeedPage(filter), nil
	}

	return &domain.FeedPage{
		Filter:        filter.String(),
		Posts:         q.posts,
		Total:         q.total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), q.total),
	}, nil
}

// CreatePost publishes a post. Requested tribes that do not exist or that the
// author is not a member of are dropped without error.
func (s *FeedService) CreatePost(ctx context.Context, req domain.CreatePostRequest) (*domain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	p, err := s.posts.Create(ctx, &domain.Post{AuthorID: req.AuthorID, Content: req.Content}, req.TribeIDs)
	if err != nil {
		return nil, err
	}

	if dropped := droppedTribes(req.TribeIDs, p.TribeIDs); len(dropped) > 0 {
		s.logger.Warn("post tribes dropped",
			"post", p.ID,
			"author", p.AuthorID,
			"count", len(dropped),
			"dropped", dropped[:min(len(dropped), maxLoggedDrops)],
		)
	}

	auditutil.LogOK(ctx, s.audit, p.AuthorID, domain.ActionCreatePost, p.ID)
	return p, nil
}

// GetPost returns a single post by id.
func (s *FeedService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	if err := domain.RequireIDs("post_id", postID); err != nil {
		return nil, err
	}
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrNotFound("post %s not found", postID)
		}
		return nil, err
	}
	return p, nil
}

func (s *FeedService) requireUser(ctx context.Context, id string) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

// feedQuery runs one filter mode. A nil posts slice after Accept means the
// mode resolved to an empty audience and no store query was made.
type feedQuery struct {
	ctx      context.Context
	svc      *FeedService
	viewerID string
	page     domain.PageRequest

	posts []domain.Post
	total int64
}

func (q *feedQuery) VisitAll() error {
	var err error
	q.posts, q.total, err = q.svc.posts.ListAll(q.ctx, q.page)
	return err
}

func (q *feedQuery) VisitMyPosts() error {
	var err error
	q.posts, q.total, err = q.svc.posts.ListByAuthors(q.ctx, []string{q.viewerID}, q.page)
	return err
}

func (q *feedQuery) VisitTribePosts() error {
	tribeIDs, err := q.svc.tribes.TribeIDsForUser(q.ctx, q.viewerID)
	if err != nil {
		return err
	}
	if len(tribeIDs) == 0 {
		return nil
	}
	q.posts, q.total, err = q.svc.posts.ListByTribes(q.ctx, tribeIDs, q.page)
	return err
}

// VisitFriendsPosts leaves the follow set in the store; only its size is
// read here to short-circuit viewers who follow nobody.
func (q *feedQuery) VisitFriendsPosts() error {
	following, err := q.svc.follows.CountFollowing(q.ctx, q.viewerID)
	if err != nil {
		return err
	}
	if following == 0 {
		return nil
	}
	q.posts, q.total, err = q.svc.posts.ListFollowedBy(q.ctx, q.viewerID, q.page)
	return err
}

var _ domain.PostFilterVisitor = (*feedQuery)(nil)

// maxLoggedDrops caps how many dropped tribe ids one warning carries.
const maxLoggedDrops = 20

func droppedTribes(requested, kept []string) []string {
	var dropped []string
	for _, id := range requested {
		if !slices.Contains(kept, id) {
			dropped = append(dropped, id)
		}
	}
	return dropped
}
