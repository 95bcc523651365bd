package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingsocial/internal/domain"
	"pingsocial/internal/testutil"
)

var errTest = fmt.Errorf("test error")

func knownUsers(ids ...string) *testutil.MockUserRepo {
	return &testutil.MockUserRepo{
		ExistsFn: func(_ context.Context, id string) (bool, error) {
			for _, known := range ids {
				if id == known {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

func newChatService(msgs *testutil.MockMessageRepo, users *testutil.MockUserRepo, audit *testutil.MockAuditRepo) *Service {
	if msgs == nil {
		msgs = &testutil.MockMessageRepo{}
	}
	return NewService(msgs, users, audit, slog.New(slog.DiscardHandler))
}

func TestService_Send(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	var stored *domain.ChatMessage
	msgs := &testutil.MockMessageRepo{
		InsertFn: func(_ context.Context, m *domain.ChatMessage) error {
			m.ID = "m1"
			stored = m
			return nil
		},
	}
	audit := &testutil.MockAuditRepo{}
	svc := newChatService(msgs, knownUsers("u1", "u2"), audit)
	svc.now = func() time.Time { return now }

	msg, err := svc.Send(context.Background(), domain.SendMessageRequest{SenderID: "u1", RecipientID: "u2", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, now, msg.CreatedAt)
	assert.Same(t, stored, msg)

	require.NotNil(t, audit.LastEntry())
	assert.Equal(t, domain.ActionSendMessage, audit.LastEntry().Action)
	assert.Equal(t, "u1", audit.LastEntry().ActorID)
	assert.Equal(t, "u2", audit.LastEntry().TargetID)
}

func TestService_SendRejects(t *testing.T) {
	tests := []struct {
		name string
		req  domain.SendMessageRequest
		want domain.ErrorKind
	}{
		{"missing sender", domain.SendMessageRequest{RecipientID: "u2", Text: "x"}, domain.KindInvalidArgument},
		{"blank text", domain.SendMessageRequest{SenderID: "u1", RecipientID: "u2", Text: "  \n"}, domain.KindInvalidArgument},
		{"text too long", domain.SendMessageRequest{SenderID: "u1", RecipientID: "u2",
			Text: strings.Repeat("a", domain.MaxMessageLength+1)}, domain.KindInvalidArgument},
		{"to self", domain.SendMessageRequest{SenderID: "u1", RecipientID: "u1", Text: "x"}, domain.KindSelfReference},
		{"unknown recipient", domain.SendMessageRequest{SenderID: "u1", RecipientID: "ghost", Text: "x"}, domain.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := &testutil.MockAuditRepo{}
			svc := newChatService(nil, knownUsers("u1", "u2"), audit)

			_, err := svc.Send(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, domain.KindOf(err))
			assert.Empty(t, audit.Entries)
		})
	}
}

func TestService_History(t *testing.T) {
	var gotA, gotB string
	var gotPage domain.PageRequest
	msgs := &testutil.MockMessageRepo{
		ListConversationFn: func(_ context.Context, a, b string, page domain.PageRequest) ([]domain.ChatMessage, int64, error) {
			gotA, gotB, gotPage = a, b, page
			return []domain.ChatMessage{{ID: "m1"}}, 7, nil
		},
	}
	svc := newChatService(msgs, knownUsers("u1", "u2"), nil)

	page := domain.PageRequest{MaxResults: 20}
	got, total, err := svc.History(context.Background(), "u1", "u2", page)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", gotA)
	assert.Equal(t, "u2", gotB)
	assert.Equal(t, page, gotPage)

	_, _, err = svc.History(context.Background(), "u1", "ghost", page)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, _, err = svc.History(context.Background(), "u1", "u1", page)
	assert.Equal(t, domain.KindSelfReference, domain.KindOf(err))

	_, _, err = svc.History(context.Background(), "", "u2", page)
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
}

func TestService_Clear(t *testing.T) {
	t.Run("deletes and audits", func(t *testing.T) {
		audit := &testutil.MockAuditRepo{}
		msgs := &testutil.MockMessageRepo{
			DeleteConversationFn: func(context.Context, string, string) (int64, error) { return 3, nil },
		}
		svc := newChatService(msgs, knownUsers("u1", "u2"), audit)

		require.NoError(t, svc.Clear(context.Background(), "u1", "u2"))
		assert.True(t, audit.HasAction(domain.ActionClearConversation))
	})

	t.Run("empty conversation is not found", func(t *testing.T) {
		audit := &testutil.MockAuditRepo{}
		msgs := &testutil.MockMessageRepo{
			DeleteConversationFn: func(context.Context, string, string) (int64, error) { return 0, nil },
		}
		svc := newChatService(msgs, knownUsers("u1", "u2"), audit)

		err := svc.Clear(context.Background(), "u1", "u2")
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
		assert.Empty(t, audit.Entries)
	})

	t.Run("store error passes through", func(t *testing.T) {
		msgs := &testutil.MockMessageRepo{
			DeleteConversationFn: func(context.Context, string, string) (int64, error) { return 0, errTest },
		}
		svc := newChatService(msgs, knownUsers("u1", "u2"), nil)

		err := svc.Clear(context.Background(), "u1", "u2")
		require.ErrorIs(t, err, errTest)
	})
}
