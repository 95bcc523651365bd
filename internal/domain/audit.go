package domain

import "time"

// Audit actions recorded for graph and post mutations.
const (
	ActionRegisterUser = "REGISTER_USER"
	ActionFollowUser   = "FOLLOW_USER"
	ActionUnfollowUser = "UNFOLLOW_USER"
	ActionJoinTribe    = "JOIN_TRIBE"
	ActionLeaveTribe   = "LEAVE_TRIBE"
	ActionCreatePost   = "CREATE_POST"
	ActionSaveLocation = "SAVE_LOCATION"

	ActionSendMessage       = "SEND_MESSAGE"
	ActionClearConversation = "CLEAR_CONVERSATION"
)

// Audit statuses.
const (
	AuditStatusOK   = "OK"
	AuditStatusNoop = "NOOP"
)

// AuditEntry represents a single audit log record.
type AuditEntry struct {
	ID        string
	ActorID   string
	Action    string
	TargetID  string
	Status    string
	Detail    *string
	CreatedAt time.Time
}

// AuditFilter holds filter parameters for querying audit logs.
type AuditFilter struct {
	ActorID *string
	Action  *string
	Since   *time.Time
	Page    PageRequest
}
