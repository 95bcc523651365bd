package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingsocial/internal/domain"
	"pingsocial/internal/testutil"
)

func tribeLookup(ids ...string) func(context.Context, string) (*domain.Tribe, error) {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return func(_ context.Context, id string) (*domain.Tribe, error) {
		if !known[id] {
			return nil, &domain.NotFoundError{Message: "resource not found"}
		}
		return &domain.Tribe{ID: id, Name: "Tribe " + id}, nil
	}
}

func newTribeService(tribes *mockTribeRepo, audit *mockAuditRepo, userIDs ...string) *TribeService {
	users := &mockUserRepo{ExistsFn: testutil.UsersExist(userIDs...)}
	return NewTribeService(tribes, users, audit, discardLogger())
}

func TestTribeService_Join(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		var added [2]string
		tribes := &mockTribeRepo{
			GetByIDFn:  tribeLookup("red"),
			IsMemberFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
			AddMemberFn: func(_ context.Context, userID, tribeID string) error {
				added = [2]string{userID, tribeID}
				return nil
			},
		}
		audit := &mockAuditRepo{}
		svc := newTribeService(tribes, audit, "u1")

		require.NoError(t, svc.Join(context.Background(), "u1", "red"))
		assert.Equal(t, [2]string{"u1", "red"}, added)
		assert.True(t, audit.HasAction(domain.ActionJoinTribe))
	})

	t.Run("already_member", func(t *testing.T) {
		tribes := &mockTribeRepo{
			GetByIDFn:  tribeLookup("red"),
			IsMemberFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		}
		svc := newTribeService(tribes, &mockAuditRepo{}, "u1")

		err := svc.Join(context.Background(), "u1", "red")
		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, domain.KindAlreadyExists, domain.KindOf(err))
	})

	t.Run("unknown_tribe", func(t *testing.T) {
		tribes := &mockTribeRepo{GetByIDFn: tribeLookup()}
		svc := newTribeService(tribes, &mockAuditRepo{}, "u1")

		err := svc.Join(context.Background(), "u1", "green")
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Message, "tribe green")
	})

	t.Run("unknown_user", func(t *testing.T) {
		svc := newTribeService(&mockTribeRepo{}, &mockAuditRepo{})

		err := svc.Join(context.Background(), "ghost", "red")
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("missing_ids", func(t *testing.T) {
		svc := newTribeService(&mockTribeRepo{}, &mockAuditRepo{})

		err := svc.Join(context.Background(), "u1", "")
		assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	})
}

func TestTribeService_Leave(t *testing.T) {
	t.Run("member_leaves", func(t *testing.T) {
		tribes := &mockTribeRepo{
			GetByIDFn:      tribeLookup("red"),
			RemoveMemberFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		}
		audit := &mockAuditRepo{}
		svc := newTribeService(tribes, audit, "u1")

		require.NoError(t, svc.Leave(context.Background(), "u1", "red"))
		require.NotNil(t, audit.LastEntry())
		assert.Equal(t, domain.AuditStatusOK, audit.LastEntry().Status)
	})

	t.Run("non_member_is_noop", func(t *testing.T) {
		tribes := &mockTribeRepo{
			GetByIDFn:      tribeLookup("red"),
			RemoveMemberFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		}
		audit := &mockAuditRepo{}
		svc := newTribeService(tribes, audit, "u1")

		require.NoError(t, svc.Leave(context.Background(), "u1", "red"))
		require.NoError(t, svc.Leave(context.Background(), "u1", "red"))
		assert.Equal(t, domain.AuditStatusNoop, audit.LastEntry().Status)
	})

	t.Run("unknown_tribe", func(t *testing.T) {
		tribes := &mockTribeRepo{GetByIDFn: tribeLookup()}
		svc := newTribeService(tribes, &mockAuditRepo{}, "u1")

		err := svc.Leave(context.Background(), "u1", "red")
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestTribeService_ListAll(t *testing.T) {
	t.Run("empty_catalogue", func(t *testing.T) {
		tribes := &mockTribeRepo{
			ListAllFn: func(_ context.Context) ([]domain.Tribe, error) { return []domain.Tribe{}, nil },
		}
		svc := newTribeService(tribes, &mockAuditRepo{})

		_, err := svc.ListAll(context.Background())
		assert.Equal(t, domain.KindNoTribesConfigured, domain.KindOf(err))
	})

	t.Run("returns_catalogue", func(t *testing.T) {
		tribes := &mockTribeRepo{
			ListAllFn: func(_ context.Context) ([]domain.Tribe, error) {
				return []domain.Tribe{{ID: "red", Name: "Tribe Red", MemberCount: 3}}, nil
			},
		}
		svc := newTribeService(tribes, &mockAuditRepo{})

		all, err := svc.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, int64(3), all[0].MemberCount)
	})
}

func TestTribeService_UserHasAnyTribe(t *testing.T) {
	tribes := &mockTribeRepo{
		TribeIDsForUserFn: func(_ context.Context, userID string) ([]string, error) {
			if userID == "u1" {
				return []string{"red"}, nil
			}
			return []string{}, nil
		},
	}
	svc := newTribeService(tribes, &mockAuditRepo{}, "u1", "u2")

	ok, err := svc.UserHasAnyTribe(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.UserHasAnyTribe(context.Background(), "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.UserHasAnyTribe(context.Background(), "ghost")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestTribeService_EnsureTribes(t *testing.T) {
	existing := map[string]bool{"Tribe Red": true}
	var created []string
	tribes := &mockTribeRepo{
		GetByNameFn: func(_ context.Context, name string) (*domain.Tribe, error) {
			if existing[name] {
				return &domain.Tribe{ID: "red", Name: name}, nil
			}
			return nil, &domain.NotFoundError{Message: "resource not found"}
		},
		CreateFn: func(_ context.Context, tr *domain.Tribe) (*domain.Tribe, error) {
			created = append(created, tr.Name)
			existing[tr.Name] = true
			return &domain.Tribe{ID: domain.NewID(), Name: tr.Name, Description: tr.Description}, nil
		},
	}
	svc := newTribeService(tribes, &mockAuditRepo{})

	n, err := svc.EnsureTribes(context.Background(), domain.DefaultTribeSeeds())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Tribe Blue"}, created)

	n, err = svc.EnsureTribes(context.Background(), domain.DefaultTribeSeeds())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = svc.EnsureTribes(context.Background(), []domain.TribeSeed{{Name: " "}})
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
}
