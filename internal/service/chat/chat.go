// Package chat implements direct messages between two users: sending,
// paged conversation history and clearing a conversation.
package chat

import (
	"context"
	"log/slog"
	"time"

	"pingsocial/internal/domain"
	"pingsocial/internal/service/auditutil"
)

// Service persists direct messages. Delivery to connected clients is not
// its concern; callers read new messages through History.
type Service struct {
	messages domain.MessageRepository
	users    domain.UserRepository
	audit    domain.AuditRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new chat Service.
func NewService(messages domain.MessageRepository, users domain.UserRepository, audit domain.AuditRepository, logger *slog.Logger) *Service {
	return &Service{
		messages: messages,
		users:    users,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Send stores a message from req.SenderID to req.RecipientID, stamped now.
func (s *Service) Send(ctx context.Context, req domain.SendMessageRequest) (*domain.ChatMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireUsers(ctx, req.SenderID, req.RecipientID); err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Text:        req.Text,
		CreatedAt:   s.now(),
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}

	auditutil.LogOK(ctx, s.audit, req.SenderID, domain.ActionSendMessage, req.RecipientID)
	s.logger.Debug("message sent", "sender", req.SenderID, "recipient", req.RecipientID, "message", msg.ID)
	return msg, nil
}

// History returns one page of the conversation between viewerID and otherID,
// oldest first, with the conversation's total size.
func (s *Service) History(ctx context.Context, viewerID, otherID string, page domain.PageRequest) ([]domain.ChatMessage, int64, error) {
	if err := s.checkPair(ctx, viewerID, otherID); err != nil {
		return nil, 0, err
	}
	return s.messages.ListConversation(ctx, viewerID, otherID, page)
}

// Clear deletes the whole conversation between viewerID and otherID in both
// directions. An empty conversation is a NotFoundError.
func (s *Service) Clear(ctx context.Context, viewerID, otherID string) error {
	if err := s.checkPair(ctx, viewerID, otherID); err != nil {
		return err
	}

	n, err := s.messages.DeleteConversation(ctx, viewerID, otherID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("no messages between users %s and %s", viewerID, otherID)
	}

	auditutil.LogOK(ctx, s.audit, viewerID, domain.ActionClearConversation, otherID)
	s.logger.Info("conversation cleared", "user", viewerID, "other", otherID, "deleted", n)
	return nil
}

func (s *Service) checkPair(ctx context.Context, viewerID, otherID string) error {
	if err := domain.RequireIDs("viewer_id", viewerID, "user_id", otherID); err != nil {
		return err
	}
	if viewerID == otherID {
		return domain.ErrSelfReference("user %s has no conversation with themselves", viewerID)
	}
	return s.requireUsers(ctx, viewerID, otherID)
}

func (s *Service) requireUsers(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		ok, err := s.users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound("user %s not found", id)
		}
	}
	return nil
}
