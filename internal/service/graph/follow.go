// Package graph implements the follow graph and tribe membership services.
package graph

import (
	"context"
	"log/slog"
	"time"

	"pingsocial/internal/domain"
	"pingsocial/internal/service/auditutil"
)

// FollowService maintains the directed follow edge set.
//
// Existence checks here are optimistic. Two concurrent Follow calls for the
// same pair both pass the pre-check; the repository's primary key rejects the
// loser with a *domain.ConflictError, which is returned unchanged.
type FollowService struct {
	follows domain.FollowRepository
	users   domain.UserRepository
	audit   domain.AuditRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewFollowService creates a new FollowService.
func NewFollowService(follows domain.FollowRepository, users domain.UserRepository, audit domain.AuditRepository, logger *slog.Logger) *FollowService {
	return &FollowService{
		follows: follows,
		users:   users,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
	}
}

// Follow creates the edge followerID -> followedID.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID string) (*domain.FollowEdge, error) {
	if err := domain.RequireIDs("follower_id", followerID, "followed_id", followedID); err != nil {
		return nil, err
	}
	if err := requireUsers(ctx, s.users, followerID, followedID); err != nil {
		return nil, err
	}
	if followerID == followedID {
		return nil, domain.ErrSelfReference("user %s cannot follow themselves", followerID)
	}

	exists, err := s.follows.Exists(ctx, followerID, followedID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict("user %s already follows user %s", followerID, followedID)
	}

	edge := &domain.FollowEdge{FollowerID: followerID, FollowedID: followedID, CreatedAt: s.now()}
	if err := s.follows.Insert(ctx, edge); err != nil {
		if domain.KindOf(err) == domain.KindAlreadyExists {
			return nil, domain.ErrConflict("user %s already follows user %s", followerID, followedID)
		}
		return nil, err
	}

	auditutil.LogOK(ctx, s.audit, followerID, domain.ActionFollowUser, followedID)
	s.logger.Debug("follow edge created", "follower", followerID, "followed", followedID)
	return edge, nil
}

// Unfollow removes the edge followerID -> followedID. Unlike Leave on tribes
// this is strict: a missing edge is an *domain.EdgeNotFoundError.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if err := domain.RequireIDs("follower_id", followerID, "followed_id", followedID); err != nil {
		return err
	}
	if err := requireUsers(ctx, s.users, followerID, followedID); err != nil {
		return err
	}

	removed, err := s.follows.Delete(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	// Zero affected rows covers both "never followed" and a concurrent unfollow.
	if !removed {
		return &domain.EdgeNotFoundError{FollowerID: followerID, FollowedID: followedID}
	}

	auditutil.LogOK(ctx, s.audit, followerID, domain.ActionUnfollowUser, followedID)
	s.logger.Debug("follow edge removed", "follower", followerID, "followed", followedID)
	return nil
}

// IsFollowing reports whether the edge followerID -> followedID exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	if err := domain.RequireIDs("follower_id", followerID, "followed_id", followedID); err != nil {
		return false, err
	}
	if followerID == followedID {
		return false, domain.ErrSelfReference("cannot check whether user %s follows themselves", followerID)
	}
	return s.follows.Exists(ctx, followerID, followedID)
}

// ListFollowers returns the users following userID in edge creation order.
func (s *FollowService) ListFollowers(ctx context.Context, userID string) ([]domain.FollowListEntry, error) {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return nil, err
	}
	return s.follows.ListFollowers(ctx, userID)
}

// ListFollowing returns the users userID follows in edge creation order.
func (s *FollowService) ListFollowing(ctx context.Context, userID string) ([]domain.FollowListEntry, error) {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return nil, err
	}
	return s.follows.ListFollowing(ctx, userID)
}

// FollowingIDs projects ListFollowing to user ids.
func (s *FollowService) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	entries, err := s.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	return ids, nil
}

// CountFollowers returns the number of users following userID.
func (s *FollowService) CountFollowers(ctx context.Context, userID string) (int64, error) {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return 0, err
	}
	return s.follows.CountFollowers(ctx, userID)
}

// CountFollowing returns the number of users userID follows.
func (s *FollowService) CountFollowing(ctx context.Context, userID string) (int64, error) {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return 0, err
	}
	return s.follows.CountFollowing(ctx, userID)
}
