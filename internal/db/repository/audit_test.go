package repository

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "pingsocial/internal/db"
	"pingsocial/internal/domain"
)

func setupAuditRepo(t *testing.T) *AuditRepo {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)
	return NewAuditRepo(writeDB)
}

func auditPtrStr(s string) *string { return &s }

func makeAuditEntry(actor, action string, at time.Time) *domain.AuditEntry {
	return &domain.AuditEntry{
		ActorID:   actor,
		Action:    action,
		TargetID:  "target",
		Status:    domain.AuditStatusOK,
		Detail:    auditPtrStr("detail"),
		CreatedAt: at,
	}
}

func TestAuditRepo_InsertAndList(t *testing.T) {
	repo := setupAuditRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Insert(ctx, makeAuditEntry("alice", domain.ActionFollowUser, now.Add(-time.Minute))))
	require.NoError(t, repo.Insert(ctx, makeAuditEntry("bob", domain.ActionJoinTribe, now)))

	entries, total, err := repo.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "bob", entries[0].ActorID)
	require.NotNil(t, entries[0].Detail)
	assert.Equal(t, "detail", *entries[0].Detail)
}

func TestAuditRepo_Filters(t *testing.T) {
	repo := setupAuditRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Insert(ctx, makeAuditEntry("alice", domain.ActionFollowUser, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Insert(ctx, makeAuditEntry("alice", domain.ActionCreatePost, now)))
	require.NoError(t, repo.Insert(ctx, makeAuditEntry("bob", domain.ActionFollowUser, now)))

	entries, total, err := repo.List(ctx, domain.AuditFilter{ActorID: auditPtrStr("alice")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range entries {
		assert.Equal(t, "alice", e.ActorID)
	}

	entries, total, err = repo.List(ctx, domain.AuditFilter{Action: auditPtrStr(domain.ActionFollowUser)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range entries {
		assert.Equal(t, domain.ActionFollowUser, e.Action)
	}

	since := now.Add(-time.Hour)
	_, total, err = repo.List(ctx, domain.AuditFilter{ActorID: auditPtrStr("alice"), Since: &since})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestAuditRepo_Pagination(t *testing.T) {
	repo := setupAuditRepo(t)
	ctx := context.Background()
	now := time.Now()

	for i := range 5 {
		require.NoError(t, repo.Insert(ctx, makeAuditEntry("alice", domain.ActionCreatePost, now.Add(time.Duration(i)*time.Second))))
	}

	entries, total, err := repo.List(ctx, domain.AuditFilter{Page: domain.PageRequest{MaxResults: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, entries, 2)

	entries, _, err = repo.List(ctx, domain.AuditFilter{
		Page: domain.PageRequest{MaxResults: 2, PageToken: domain.EncodePageToken(4)},
	})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAuditRepo_PurgeOlderThan(t *testing.T) {
	repo := setupAuditRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Insert(ctx, makeAuditEntry("alice", domain.ActionFollowUser, now.Add(-48*time.Hour))))
	require.NoError(t, repo.Insert(ctx, makeAuditEntry("alice", domain.ActionFollowUser, now.Add(-25*time.Hour))))
	require.NoError(t, repo.Insert(ctx, makeAuditEntry("alice", domain.ActionFollowUser, now)))

	n, err := repo.PurgeOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, total, err := repo.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
