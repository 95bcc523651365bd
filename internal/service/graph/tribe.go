package graph

import (
	"context"
	"log/slog"

	"pingsocial/internal/domain"
	"pingsocial/internal/service/auditutil"
)

// TribeService manages tribes and the user/tribe membership relation.
type TribeService struct {
	tribes domain.TribeRepository
	users  domain.UserRepository
	audit  domain.AuditRepository
	logger *slog.Logger
}

// NewTribeService creates a new TribeService.
func NewTribeService(tribes domain.TribeRepository, users domain.UserRepository, audit domain.AuditRepository, logger *slog.Logger) *TribeService {
	return &TribeService{tribes: tribes, users: users, audit: audit, logger: logger}
}

// Join adds userID to tribeID. A repeated join is a *domain.ConflictError.
func (s *TribeService) Join(ctx context.Context, userID, tribeID string) error {
	if err := s.requireUserAndTribe(ctx, userID, tribeID); err != nil {
		return err
	}

	member, err := s.tribes.IsMember(ctx, userID, tribeID)
	if err != nil {
		return err
	}
	if member {
		return domain.ErrConflict("user %s is already a member of tribe %s", userID, tribeID)
	}

	if err := s.tribes.AddMember(ctx, userID, tribeID); err != nil {
		if domain.KindOf(err) == domain.KindAlreadyExists {
			return domain.ErrConflict("user %s is already a member of tribe %s", userID, tribeID)
		}
		return err
	}

	auditutil.LogOK(ctx, s.audit, userID, domain.ActionJoinTribe, tribeID)
	return nil
}

// Leave removes userID from tribeID. Leaving a tribe the user is not in
// succeeds without change.
func (s *TribeService) Leave(ctx context.Context, userID, tribeID string) error {
	if err := s.requireUserAndTribe(ctx, userID, tribeID); err != nil {
		return err
	}

	removed, err := s.tribes.RemoveMember(ctx, userID, tribeID)
	if err != nil {
		return err
	}

	if !removed {
		auditutil.LogNoop(ctx, s.audit, userID, domain.ActionLeaveTribe, tribeID)
		return nil
	}
	auditutil.LogOK(ctx, s.audit, userID, domain.ActionLeaveTribe, tribeID)
	return nil
}

// ListUserTribes returns the tribes userID belongs to.
func (s *TribeService) ListUserTribes(ctx context.Context, userID string) ([]domain.Tribe, error) {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return nil, err
	}
	if err := requireUsers(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.tribes.ListForUser(ctx, userID)
}

// ListTribeMembers returns the members of tribeID.
func (s *TribeService) ListTribeMembers(ctx context.Context, tribeID string) ([]domain.TribeMember, error) {
	if err := domain.RequireIDs("tribe_id", tribeID); err != nil {
		return nil, err
	}
	if _, err := s.getTribe(ctx, tribeID); err != nil {
		return nil, err
	}
	return s.tribes.ListMembers(ctx, tribeID)
}

// ListAll returns the whole tribe catalogue.
func (s *TribeService) ListAll(ctx context.Context) ([]domain.Tribe, error) {
	tribes, err := s.tribes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(tribes) == 0 {
		return nil, &domain.NoTribesConfiguredError{}
	}
	return tribes, nil
}

// UserHasAnyTribe reports whether userID belongs to at least one tribe.
func (s *TribeService) UserHasAnyTribe(ctx context.Context, userID string) (bool, error) {
	ids, err := s.TribeIDsForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// TribeIDsForUser returns the sorted ids of the tribes userID belongs to.
func (s *TribeService) TribeIDsForUser(ctx context.Context, userID string) ([]string, error) {
	if err := domain.RequireIDs("user_id", userID); err != nil {
		return nil, err
	}
	if err := requireUsers(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.tribes.TribeIDsForUser(ctx, userID)
}

// EnsureTribes creates every seed whose name is not yet in the catalogue and
// returns the number created. Safe to run on every start.
func (s *TribeService) EnsureTribes(ctx context.Context, seeds []domain.TribeSeed) (int, error) {
	created := 0
	for i := range seeds {
		seed := seeds[i]
		if err := seed.Validate(); err != nil {
			return created, err
		}

		_, err := s.tribes.GetByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if domain.KindOf(err) != domain.KindNotFound {
			return created, err
		}

		t, err := s.tribes.Create(ctx, &domain.Tribe{Name: seed.Name, Description: seed.Description})
		if err != nil {
			// Another instance seeded the same name first.
			if domain.KindOf(err) == domain.KindAlreadyExists {
				continue
			}
			return created, err
		}
		created++
		s.logger.Info("tribe created", "tribe", t.Name, "id", t.ID)
	}
	return created, nil
}

func (s *TribeService) requireUserAndTribe(ctx context.Context, userID, tribeID string) error {
	if err := domain.RequireIDs("user_id", userID, "tribe_id", tribeID); err != nil {
		return err
	}
	if err := requireUsers(ctx, s.users, userID); err != nil {
		return err
	}
	_, err := s.getTribe(ctx, tribeID)
	return err
}

func (s *TribeService) getTribe(ctx context.Context, tribeID string) (*domain.Tribe, error) {
	t, err := s.tribes.GetByID(ctx, tribeID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrNotFound("tribe %s not found", tribeID)
		}
		return nil, err
	}
	return t, nil
}
