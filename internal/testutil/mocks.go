// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"
	"sync"
	"time"

	"pingsocial/internal/domain"
)

// === Audit Repository Mock ===

// MockAuditRepo implements domain.AuditRepository for testing.
type MockAuditRepo struct {
	InsertFn         func(ctx context.Context, e *domain.AuditEntry) error
	ListFn           func(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error)
	PurgeOlderThanFn func(ctx context.Context, before time.Time) (int64, error)

	mu      sync.Mutex
	Entries []*domain.AuditEntry // collected entries for assertions
}

// Insert implements the interface method for testing.
func (m *MockAuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	if m.InsertFn != nil {
		if err := m.InsertFn(ctx, e); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, e)
	return nil
}

// List implements the interface method for testing.
func (m *MockAuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	panic("unexpected call to MockAuditRepo.List")
}

// PurgeOlderThan implements the interface method for testing.
func (m *MockAuditRepo) PurgeOlderThan(ctx context.Context, before time.Time) (int64, error) {
	if m.PurgeOlderThanFn != nil {
		return m.PurgeOlderThanFn(ctx, before)
	}
	panic("unexpected call to MockAuditRepo.PurgeOlderThan")
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockAuditRepo) LastEntry() *domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

// HasAction returns true if any collected entry has the given action.
func (m *MockAuditRepo) HasAction(action string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

var _ domain.AuditRepository = (*MockAuditRepo)(nil)

// === User Repository Mock ===

// MockUserRepo implements domain.UserRepository for testing.
type MockUserRepo struct {
	CreateFn         func(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	GetByIDFn        func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	ExistsFn         func(ctx context.Context, id string) (bool, error)
	ListActiveFn     func(ctx context.Context) ([]domain.User, error)
	UpdateLocationFn func(ctx context.Context, id string, loc domain.UpdateLocationRequest) error
}

// Create implements the interface method for testing.
func (m *MockUserRepo) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, req)
	}
	panic("unexpected call to MockUserRepo.Create")
}

// GetByID implements the interface method for testing.
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockUserRepo.GetByID")
}

// GetByEmail implements the interface method for testing.
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	panic("unexpected call to MockUserRepo.GetByEmail")
}

// Exists implements the interface method for testing.
func (m *MockUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	panic("unexpected call to MockUserRepo.Exists")
}

// ListActive implements the interface method for testing.
func (m *MockUserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	panic("unexpected call to MockUserRepo.ListActive")
}

// UpdateLocation implements the interface method for testing.
func (m *MockUserRepo) UpdateLocation(ctx context.Context, id string, loc domain.UpdateLocationRequest) error {
	if m.UpdateLocationFn != nil {
		return m.UpdateLocationFn(ctx, id, loc)
	}
	panic("unexpected call to MockUserRepo.UpdateLocation")
}

var _ domain.UserRepository = (*MockUserRepo)(nil)

// UsersExist returns an ExistsFn that reports true for exactly the given ids.
func UsersExist(ids ...string) func(context.Context, string) (bool, error) {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return func(_ context.Context, id string) (bool, error) {
		return known[id], nil
	}
}

// === Follow Repository Mock ===

// MockFollowRepo implements domain.FollowRepository for testing.
type MockFollowRepo struct {
	InsertFn         func(ctx context.Context, edge *domain.FollowEdge) error
	DeleteFn         func(ctx context.Context, followerID, followedID string) (bool, error)
	ExistsFn         func(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowersFn  func(ctx context.Context, userID string) ([]domain.FollowListEntry, error)
	ListFollowingFn  func(ctx context.Context, userID string) ([]domain.FollowListEntry, error)
	CountFollowersFn func(ctx context.Context, userID string) (int64, error)
	CountFollowingFn func(ctx context.Context, userID string) (int64, error)
}

// Insert implements the interface method for testing.
func (m *MockFollowRepo) Insert(ctx context.Context, edge *domain.FollowEdge) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, edge)
	}
	panic("unexpected call to MockFollowRepo.Insert")
}

// Delete implements the interface method for testing.
func (m *MockFollowRepo) Delete(ctx context.Context, followerID, followedID string) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, followerID, followedID)
	}
	panic("unexpected call to MockFollowRepo.Delete")
}

// Exists implements the interface method for testing.
func (m *MockFollowRepo) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, followerID, followedID)
	}
	panic("unexpected call to MockFollowRepo.Exists")
}

// ListFollowers implements the interface method for testing.
func (m *MockFollowRepo) ListFollowers(ctx context.Context, userID string) ([]domain.FollowListEntry, error) {
	if m.ListFollowersFn != nil {
		return m.ListFollowersFn(ctx, userID)
	}
	panic("unexpected call to MockFollowRepo.ListFollowers")
}

// ListFollowing implements the interface method for testing.
func (m *MockFollowRepo) ListFollowing(ctx context.Context, userID string) ([]domain.FollowListEntry, error) {
	if m.ListFollowingFn != nil {
		return m.ListFollowingFn(ctx, userID)
	}
	panic("unexpected call to MockFollowRepo.ListFollowing")
}

// CountFollowers implements the interface method for testing.
func (m *MockFollowRepo) CountFollowers(ctx context.Context, userID string) (int64, error) {
	if m.CountFollowersFn != nil {
		return m.CountFollowersFn(ctx, userID)
	}
	panic("unexpected call to MockFollowRepo.CountFollowers")
}

// CountFollowing implements the interface method for testing.
func (m *MockFollowRepo) CountFollowing(ctx context.Context, userID string) (int64, error) {
	if m.CountFollowingFn != nil {
		return m.CountFollowingFn(ctx, userID)
	}
	panic("unexpected call to MockFollowRepo.CountFollowing")
}

var _ domain.FollowRepository = (*MockFollowRepo)(nil)

// === Tribe Repository Mock ===

// MockTribeRepo implements domain.TribeRepository for testing.
type MockTribeRepo struct {
	CreateFn          func(ctx context.Context, t *domain.Tribe) (*domain.Tribe, error)
	GetByIDFn         func(ctx context.Context, id string) (*domain.Tribe, error)
	GetByNameFn       func(ctx context.Context, name string) (*domain.Tribe, error)
	ListAllFn         func(ctx context.Context) ([]domain.Tribe, error)
	AddMemberFn       func(ctx context.Context, userID, tribeID string) error
	RemoveMemberFn    func(ctx context.Context, userID, tribeID string) (bool, error)
	IsMemberFn        func(ctx context.Context, userID, tribeID string) (bool, error)
	ListForUserFn     func(ctx context.Context, userID string) ([]domain.Tribe, error)
	ListMembersFn     func(ctx context.Context, tribeID string) ([]domain.TribeMember, error)
	TribeIDsForUserFn func(ctx context.Context, userID string) ([]string, error)
}

// Create implements the interface method for testing.
func (m *MockTribeRepo) Create(ctx context.Context, t *domain.Tribe) (*domain.Tribe, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	panic("unexpected call to MockTribeRepo.Create")
}

// GetByID implements the interface method for testing.
func (m *MockTribeRepo) GetByID(ctx context.Context, id string) (*domain.Tribe, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockTribeRepo.GetByID")
}

// GetByName implements the interface method for testing.
func (m *MockTribeRepo) GetByName(ctx context.Context, name string) (*domain.Tribe, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	panic("unexpected call to MockTribeRepo.GetByName")
}

// ListAll implements the interface method for testing.
func (m *MockTribeRepo) ListAll(ctx context.Context) ([]domain.Tribe, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	panic("unexpected call to MockTribeRepo.ListAll")
}

// AddMember implements the interface method for testing.
func (m *MockTribeRepo) AddMember(ctx context.Context, userID, tribeID string) error {
	if m.AddMemberFn != nil {
		return m.AddMemberFn(ctx, userID, tribeID)
	}
	panic("unexpected call to MockTribeRepo.AddMember")
}

// RemoveMember implements the interface method for testing.
func (m *MockTribeRepo) RemoveMember(ctx context.Context, userID, tribeID string) (bool, error) {
	if m.RemoveMemberFn != nil {
		return m.RemoveMemberFn(ctx, userID, tribeID)
	}
	panic("unexpected call to MockTribeRepo.RemoveMember")
}

// IsMember implements the interface method for testing.
func (m *MockTribeRepo) IsMember(ctx context.Context, userID, tribeID string) (bool, error) {
	if m.IsMemberFn != nil {
		return m.IsMemberFn(ctx, userID, tribeID)
	}
	panic("unexpected call to MockTribeRepo.IsMember")
}

// ListForUser implements the interface method for testing.
func (m *MockTribeRepo) ListForUser(ctx context.Context, userID string) ([]domain.Tribe, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}
	panic("unexpected call to MockTribeRepo.ListForUser")
}

// ListMembers implements the interface method for testing.
func (m *MockTribeRepo) ListMembers(ctx context.Context, tribeID string) ([]domain.TribeMember, error) {
	if m.ListMembersFn != nil {
		return m.ListMembersFn(ctx, tribeID)
	}
	panic("unexpected call to MockTribeRepo.ListMembers")
}

// TribeIDsForUser implements the interface method for testing.
func (m *MockTribeRepo) TribeIDsForUser(ctx context.Context, userID string) ([]string, error) {
	if m.TribeIDsForUserFn != nil {
		return m.TribeIDsForUserFn(ctx, userID)
	}
	panic("unexpected call to MockTribeRepo.TribeIDsForUser")
}

var _ domain.TribeRepository = (*MockTribeRepo)(nil)

// === Post Repository Mock ===

// MockPostRepo implements domain.PostRepository for testing.
type MockPostRepo struct {
	CreateFn        func(ctx context.Context, p *domain.Post, requestedTribeIDs []string) (*domain.Post, error)
	GetByIDFn       func(ctx context.Context, id string) (*domain.Post, error)
	ListAllFn       func(ctx context.Context, page domain.PageRequest) ([]domain.Post, int64, error)
	ListByAuthorsFn  func(ctx context.Context, authorIDs []string, page domain.PageRequest) ([]domain.Post, int64, error)
	ListFollowedByFn func(ctx context.Context, followerID string, page domain.PageRequest) ([]domain.Post, int64, error)
	ListByTribesFn   func(ctx context.Context, tribeIDs []string, page domain.PageRequest) ([]domain.Post, int64, error)
}

// Create implements the interface method for testing.
func (m *MockPostRepo) Create(ctx context.Context, p *domain.Post, requestedTribeIDs []string) (*domain.Post, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p, requestedTribeIDs)
	}
	panic("unexpected call to MockPostRepo.Create")
}

// GetByID implements the interface method for testing.
func (m *MockPostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic("unexpected call to MockPostRepo.GetByID")
}

// ListAll implements the interface method for testing.
func (m *MockPostRepo) ListAll(ctx context.Context, page domain.PageRequest) ([]domain.Post, int64, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, page)
	}
	panic("unexpected call to MockPostRepo.ListAll")
}

// ListByAuthors implements the interface method for testing.
func (m *MockPostRepo) ListByAuthors(ctx context.Context, authorIDs []string, page domain.PageRequest) ([]domain.Post, int64, error) {
	if m.ListByAuthorsFn != nil {
		return m.ListByAuthorsFn(ctx, authorIDs, page)
	}
	panic("unexpected call to MockPostRepo.ListByAuthors")
}

// ListFollowedBy implements the interface method for testing.
func (m *MockPostRepo) ListFollowedBy(ctx context.Context, followerID string, page domain.PageRequest) ([]domain.Post, int64, error) {
	if m.ListFollowedByFn != nil {
		return m.ListFollowedByFn(ctx, followerID, page)
	}
	panic("unexpected call to MockPostRepo.ListFollowedBy")
}

// ListByTribes implements the interface method for testing.
func (m *MockPostRepo) ListByTribes(ctx context.Context, tribeIDs []string, page domain.PageRequest) ([]domain.Post, int64, error) {
	if m.ListByTribesFn != nil {
		return m.ListByTribesFn(ctx, tribeIDs, page)
	}
	panic("unexpected call to MockPostRepo.ListByTribes")
}

var _ domain.PostRepository = (*MockPostRepo)(nil)

// === Message Repository Mock ===

// MockMessageRepo implements domain.MessageRepository for testing.
type MockMessageRepo struct {
	InsertFn             func(ctx context.Context, m *domain.ChatMessage) error
	ListConversationFn   func(ctx context.Context, userA, userB string, page domain.PageRequest) ([]domain.ChatMessage, int64, error)
	DeleteConversationFn func(ctx context.Context, userA, userB string) (int64, error)
}

// Insert implements the interface method for testing.
func (m *MockMessageRepo) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, msg)
	}
	panic("unexpected call to MockMessageRepo.Insert")
}

// ListConversation implements the interface method for testing.
func (m *MockMessageRepo) ListConversation(ctx context.Context, userA, userB string, page domain.PageRequest) ([]domain.ChatMessage, int64, error) {
	if m.ListConversationFn != nil {
		return m.ListConversationFn(ctx, userA, userB, page)
	}
	panic("unexpected call to MockMessageRepo.ListConversation")
}

// DeleteConversation implements the interface method for testing.
func (m *MockMessageRepo) DeleteConversation(ctx context.Context, userA, userB string) (int64, error) {
	if m.DeleteConversationFn != nil {
		return m.DeleteConversationFn(ctx, userA, userB)
	}
	panic("unexpected call to MockMessageRepo.DeleteConversation")
}

var _ domain.MessageRepository = (*MockMessageRepo)(nil)
