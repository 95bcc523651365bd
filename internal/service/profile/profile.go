// Package profile implements user registration, profile summaries and
// follow suggestions.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"pingsocial/internal/domain"
	"pingsocial/internal/service/auditutil"
)

const (
	earthRadiusKm = 6371.0

	// suggestionParallelism bounds concurrent per-candidate lookups.
	suggestionParallelism = 8
)

// Service composes profile views from the identity store and both graphs.
type Service struct {
	users   domain.UserRepository
	follows domain.FollowRepository
	tribes  domain.TribeRepository
	audit   domain.AuditRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new profile Service.
func NewService(users domain.UserRepository, follows domain.FollowRepository, tribes domain.TribeRepository, audit domain.AuditRepository, logger *slog.Logger) *Service {
	return &Service{
		users:   users,
		follows: follows,
		tribes:  tribes,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
	}
}

// Register creates a user in the identity store.
func (s *Service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, req)
	if err != nil {
		if domain.KindOf(err) == domain.KindAlreadyExists {
			return nil, domain.ErrConflict("user with email %q already exists", req.Email)
		}
		return nil, err
	}
	auditutil.LogOK(ctx, s.audit, u.ID, domain.ActionRegisterUser, u.ID)
	s.logger.Info("user registered", "user", u.ID)
	return u, nil
}

// SaveLocation stores the user's coordinates.
func (s *Service) SaveLocation(ctx context.Context, userID string, loc domain.UpdateLocationRequest) error {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return err
	}
	if err := loc.Validate(); err != nil {
		return err
	}
	if err := s.users.UpdateLocation(ctx, userID, loc); err != nil {
		return err
	}
	auditutil.LogOK(ctx, s.audit, userID, domain.ActionSaveLocation, userID)
	return nil
}

// Location returns userID's coordinates with the distance from the viewer.
// It is NotFound when either user has no stored location.
func (s *Service) Location(ctx context.Context, viewerID, userID string) (*domain.Location, error) {
	if err := domain.RequireIDs("viewer_id", viewerID, "user_id", userID); err != nil {
		return nil, err
	}
	viewer, err := s.getUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	target := viewer
	if userID != viewerID {
		if target, err = s.getUser(ctx, userID); err != nil {
			return nil, err
		}
	}
	if !target.HasLocation() || !viewer.HasLocation() {
		return nil, domain.ErrNotFound("location for user %s not available", userID)
	}
	return &domain.Location{
		UserID:     target.ID,
		Latitude:   *target.Latitude,
		Longitude:  *target.Longitude,
		DistanceKm: distanceKm(viewer, target),
	}, nil
}

// Profile returns the summary for userID. Counts and tribe names are loaded
// concurrently.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return nil, err
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.Profile{
		UserID:         u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		AvatarInitials: domain.AvatarInitials(u.DisplayName),
		DaysActive:     int(s.now().Sub(u.CreatedAt).Hours() / 24),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.follows.CountFollowers(gctx, userID)
		p.Followers = n
		return err
	})
	g.Go(func() error {
		n, err := s.follows.CountFollowing(gctx, userID)
		p.Following = n
		return err
	})
	g.Go(func() error {
		names, err := s.tribeNames(gctx, userID)
		p.TribeNames = names
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose profile: %w", err)
	}
	return p, nil
}

// Suggestions returns every active user other than the viewer, annotated
// with follower counts, tribes, follow state and distance from the viewer.
func (s *Service) Suggestions(ctx context.Context, viewerID string) ([]domain.Suggestion, error) {
	if err := domain.RequireIDs("viewer_id", viewerID); err != nil {
		return nil, err
	}
	viewer, err := s.getUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	active, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]domain.User, 0, len(active))
	for _, u := range active {
		if u.ID != viewerID {
			candidates = append(candidates, u)
		}
	}

	out := make([]domain.Suggestion, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(suggestionParallelism)
	for i := range candidates {
		c := candidates[i]
		g.Go(func() error {
			followers, err := s.follows.CountFollowers(gctx, c.ID)
			if err != nil {
				return err
			}
			names, err := s.tribeNames(gctx, c.ID)
			if err != nil {
				return err
			}
			following, err := s.follows.Exists(gctx, viewerID, c.ID)
			if err != nil {
				return err
			}
			out[i] = domain.Suggestion{
				UserID:         c.ID,
				Email:          c.Email,
				DisplayName:    c.DisplayName,
				AvatarInitials: domain.AvatarInitials(c.DisplayName),
				Followers:      followers,
				TribeNames:     names,
				IsFollowing:    following,
				DistanceKm:     distanceKm(viewer, &c),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose suggestions: %w", err)
	}
	return out, nil
}

func (s *Service) getUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrNotFound("user %s not found", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) tribeNames(ctx context.Context, userID string) ([]string, error) {
	tribes, err := s.tribes.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(tribes))
	for i, t := range tribes {
		names[i] = t.Name
	}
	return names, nil
}

// distanceKm is the great-circle distance between two users, or 0 when
// either location is unknown.
func distanceKm(a, b *domain.User) float64 {
	if !a.HasLocation() || !b.HasLocation() {
		return 0
	}
	return haversine(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
