package domain

import "time"

// FollowEdge is the directed relation "follower follows followed".
// Edges are immutable; re-following means delete then insert.
type FollowEdge struct {
	FollowerID string
	FollowedID string
	CreatedAt  time.Time
}

// FollowListEntry is the projection of the user on the far side of an edge.
type FollowListEntry struct {
	UserID      string
	Email       string
	DisplayName string
	FollowedAt  time.Time
}
