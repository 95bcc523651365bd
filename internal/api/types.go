package api

import "time"

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// FollowEntry is a user on the far side of a follow edge.
type FollowEntry struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	FollowedAt  time.Time `json:"followed_at"`
}

// FollowEdge is a created follow relation.
type FollowEdge struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FollowStatus answers an is-following query.
type FollowStatus struct {
	FollowerID  string `json:"follower_id"`
	FollowedID  string `json:"followed_id"`
	IsFollowing bool   `json:"is_following"`
}

type Tribe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type TribeMember struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}

type Post struct {
	ID                string    `json:"id"`
	AuthorID          string    `json:"author_id"`
	AuthorDisplayName string    `json:"author_display_name"`
	Content           string    `json:"content"`
	TribeIDs          []string  `json:"tribe_ids"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaginatedPosts is one page of a feed.
type PaginatedPosts struct {
	Filter        string `json:"filter"`
	Data          []Post `json:"data"`
	Total         int64  `json:"total"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

type Profile struct {
	UserID         string   `json:"user_id"`
	Email          string   `json:"email"`
	DisplayName    string   `json:"display_name"`
	AvatarInitials string   `json:"avatar_initials"`
	Followers      int64    `json:"followers"`
	Following      int64    `json:"following"`
	DaysActive     int      `json:"days_active"`
	TribeNames     []string `json:"tribe_names"`
}

type Suggestion struct {
	UserID         string   `json:"user_id"`
	Email          string   `json:"email"`
	DisplayName    string   `json:"display_name"`
	AvatarInitials string   `json:"avatar_initials"`
	Followers      int64    `json:"followers"`
	TribeNames     []string `json:"tribe_names"`
	IsFollowing    bool     `json:"is_following"`
	DistanceKm     float64  `json:"distance_km"`
}

type Location struct {
	UserID     string  `json:"user_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

type ChatMessage struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaginatedMessages is one page of a conversation, oldest first.
type PaginatedMessages struct {
	Data          []ChatMessage `json:"data"`
	Total         int64         `json:"total"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

type AuditEntry struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	TargetID  string    `json:"target_id"`
	Status    string    `json:"status"`
	Detail    *string   `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PaginatedAuditLogs is one page of audit entries.
type PaginatedAuditLogs struct {
	Data          []AuditEntry `json:"data"`
	NextPageToken string       `json:"next_page_token,omitempty"`
}

// CreatePostRequest is the body of POST /v1/posts.
type CreatePostRequest struct {
	Content  string   `json:"content"`
	TribeIDs []string `json:"tribe_ids"`
}

// UpdateLocationRequest is the body of PUT /v1/me/location.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// SendMessageRequest is the body of POST /v1/users/{userID}/messages.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// listResponse wraps an unpaginated collection.
type listResponse[T any] struct {
	Data []T `json:"data"`
}
