package domain

import (
	"context"
	"time"
)

// UserRepository is the identity store as seen by the core.
type UserRepository interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListActive(ctx context.Context) ([]User, error)
	UpdateLocation(ctx context.Context, id string, loc UpdateLocationRequest) error
}

// FollowRepository stores the directed follow edge set.
//
// Insert relies on the store's primary key as the authoritative uniqueness
// guard: a duplicate pair surfaces as *ConflictError and a self edge as
// *SelfReferenceError even when a concurrent caller won the race.
type FollowRepository interface {
	Insert(ctx context.Context, edge *FollowEdge) error
	// Delete removes the edge and reports whether a row was removed.
	Delete(ctx context.Context, followerID, followedID string) (bool, error)
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowers(ctx context.Context, userID string) ([]FollowListEntry, error)
	ListFollowing(ctx context.Context, userID string) ([]FollowListEntry, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

// TribeRepository stores tribes and the user/tribe membership relation.
// Membership is a single keyed relation; both directions read the same rows.
type TribeRepository interface {
	Create(ctx context.Context, t *Tribe) (*Tribe, error)
	GetByID(ctx context.Context, id string) (*Tribe, error)
	GetByName(ctx context.Context, name string) (*Tribe, error)
	ListAll(ctx context.Context) ([]Tribe, error)
	AddMember(ctx context.Context, userID, tribeID string) error
	// RemoveMember removes the membership and reports whether a row was removed.
	RemoveMember(ctx context.Context, userID, tribeID string) (bool, error)
	IsMember(ctx context.Context, userID, tribeID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]Tribe, error)
	ListMembers(ctx context.Context, tribeID string) ([]TribeMember, error)
	TribeIDsForUser(ctx context.Context, userID string) ([]string, error)
}

// PostRepository stores posts and their tribe tags.
type PostRepository interface {
	// Create persists the post in one transaction, keeping only those requested
	// tribe IDs that exist and that the author belongs to at commit time.
	// The returned post carries the surviving tribe IDs.
	Create(ctx context.Context, p *Post, requestedTribeIDs []string) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	ListAll(ctx context.Context, page PageRequest) ([]Post, int64, error)
	ListByAuthors(ctx context.Context, authorIDs []string, page PageRequest) ([]Post, int64, error)
	// ListFollowedBy returns posts whose author followerID follows.
	ListFollowedBy(ctx context.Context, followerID string, page PageRequest) ([]Post, int64, error)
	ListByTribes(ctx context.Context, tribeIDs []string, page PageRequest) ([]Post, int64, error)
}

// MessageRepository stores direct messages. A conversation is every message
// between two users in either direction.
type MessageRepository interface {
	Insert(ctx context.Context, m *ChatMessage) error
	// ListConversation returns the conversation oldest first.
	ListConversation(ctx context.Context, userA, userB string, page PageRequest) ([]ChatMessage, int64, error)
	// DeleteConversation removes the conversation and reports how many rows went.
	DeleteConversation(ctx context.Context, userA, userB string) (int64, error)
}

// AuditRepository provides operations for audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
	PurgeOlderThan(ctx context.Context, before time.Time) (int64, error)
}
