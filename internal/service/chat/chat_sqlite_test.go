package chat

import (
	"context"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "pingsocial/internal/db"
	"pingsocial/internal/db/repository"
	"pingsocial/internal/domain"
)

func TestChat_ConversationLifecycle(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	users := repository.NewUserRepo(db)
	audit := repository.NewAuditRepo(db)
	svc := NewService(repository.NewMessageRepo(db), users, audit, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	user := func(name string) string {
		u, err := users.Create(ctx, domain.CreateUserRequest{Email: name + "@example.com", DisplayName: name, Active: true})
		require.NoError(t, err)
		return u.ID
	}
	alice, bob := user("alice"), user("bob")

	for i, send := range []domain.SendMessageRequest{
		{SenderID: alice, RecipientID: bob, Text: "hi"},
		{SenderID: bob, RecipientID: alice, Text: "hey"},
		{SenderID: alice, RecipientID: bob, Text: "coffee?"},
	} {
		_, err := svc.Send(ctx, send)
		require.NoError(t, err, "message %d", i)
	}

	history, total, err := svc.History(ctx, bob, alice, domain.PageRequest{MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Text)
	assert.Equal(t, "hey", history[1].Text)

	require.NoError(t, svc.Clear(ctx, bob, alice))

	history, total, err = svc.History(ctx, alice, bob, domain.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, history)

	err = svc.Clear(ctx, alice, bob)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	action := domain.ActionSendMessage
	sent, _, err := audit.List(ctx, domain.AuditFilter{ActorID: &alice, Action: &action})
	require.NoError(t, err)
	assert.Len(t, sent, 2)
}
