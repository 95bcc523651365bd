package feed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "pingsocial/internal/db"
	"pingsocial/internal/db/repository"
	"pingsocial/internal/domain"
	"pingsocial/internal/service/graph"
)

type world struct {
	feed    *FeedService
	follows *graph.FollowService
	tribes  *graph.TribeService
	users   *repository.UserRepo
	red     string
	blue    string
}

func setupWorld(t *testing.T) *world {
	t.Helper()
	db, _ := internaldb.OpenTestSQLite(t)
	logger := slog.New(slog.DiscardHandler)
	users := repository.NewUserRepo(db)
	followRepo := repository.NewFollowRepo(db)
	tribeRepo := repository.NewTribeRepo(db)
	audit := repository.NewAuditRepo(db)

	w := &world{
		feed:    NewFeedService(repository.NewPostRepo(db), users, followRepo, tribeRepo, audit, logger),
		follows: graph.NewFollowService(followRepo, users, audit, logger),
		tribes:  graph.NewTribeService(tribeRepo, users, audit, logger),
		users:   users,
	}
	ctx := context.Background()
	_, err := w.tribes.EnsureTribes(ctx, domain.DefaultTribeSeeds())
	require.NoError(t, err)
	red, err := tribeRepo.GetByName(ctx, "Tribe Red")
	require.NoError(t, err)
	blue, err := tribeRepo.GetByName(ctx, "Tribe Blue")
	require.NoError(t, err)
	w.red, w.blue = red.ID, blue.ID
	return w
}

func (w *world) user(t *testing.T, name string) string {
	t.Helper()
	u, err := w.users.Create(context.Background(), domain.CreateUserRequest{
		Email: name + "@example.com", DisplayName: name, Active: true,
	})
	require.NoError(t, err)
	return u.ID
}

func (w *world) post(t *testing.T, author, content string, tribes ...string) *domain.Post {
	t.Helper()
	p, err := w.feed.CreatePost(context.Background(), domain.CreatePostRequest{
		AuthorID: author, Content: content, TribeIDs: tribes,
	})
	require.NoError(t, err)
	return p
}

func TestFeed_FriendsScenario(t *testing.T) {
	w := setupWorld(t)
	ctx := context.Background()
	u1, u2, u3 := w.user(t, "u1"), w.user(t, "u2"), w.user(t, "u3")

	_, err := w.follows.Follow(ctx, u1, u2)
	require.NoError(t, err)
	require.NoError(t, w.tribes.Join(ctx, u2, w.red))
	p := w.post(t, u2, "hello red", w.red)
	assert.Equal(t, []string{w.red}, p.TribeIDs)

	page, err := w.feed.Feed(ctx, u1, domain.FriendsPosts{}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, p.ID, page.Posts[0].ID)
	assert.Equal(t, "u2", page.Posts[0].AuthorDisplayName)

	page, err = w.feed.Feed(ctx, u3, domain.FriendsPosts{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestFeed_TribeWithoutMembershipIsEmpty(t *testing.T) {
	w := setupWorld(t)
	ctx := context.Background()
	u1, u2 := w.user(t, "u1"), w.user(t, "u2")
	require.NoError(t, w.tribes.Join(ctx, u2, w.red))
	w.post(t, u2, "red news", w.red)

	page, err := w.feed.Feed(ctx, u1, domain.TribePosts{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestFeed_CreatePostDropsNonMemberTribe(t *testing.T) {
	w := setupWorld(t)
	ctx := context.Background()
	u1 := w.user(t, "u1")
	require.NoError(t, w.tribes.Join(ctx, u1, w.red))

	p := w.post(t, u1, "mixed", w.red, w.blue, "no-such-tribe")
	assert.Equal(t, []string{w.red}, p.TribeIDs)

	stored, err := w.feed.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.TribeIDs, w.blue)
}

func TestFeed_CreatePostWithThousandsOfUnknownTribes(t *testing.T) {
	w := setupWorld(t)
	ctx := context.Background()
	alice := w.user(t, "alice")
	require.NoError(t, w.tribes.Join(ctx, alice, w.red))

	// More ids than SQLite accepts as bound parameters in one statement.
	requested := make([]string, 0, 40001)
	for i := range 40000 {
		requested = append(requested, fmt.Sprintf("t%d", i))
	}
	requested = append(requested, w.red)

	p := w.post(t, alice, "hi", requested...)
	assert.Equal(t, []string{w.red}, p.TribeIDs)
}

func TestFeed_Completeness(t *testing.T) {
	w := setupWorld(t)
	ctx := context.Background()
	viewer, a, b, c := w.user(t, "viewer"), w.user(t, "a"), w.user(t, "b"), w.user(t, "c")

	require.NoError(t, w.tribes.Join(ctx, viewer, w.red))
	require.NoError(t, w.tribes.Join(ctx, a, w.red))
	require.NoError(t, w.tribes.Join(ctx, b, w.blue))
	_, err := w.follows.Follow(ctx, viewer, b)
	require.NoError(t, err)

	w.post(t, a, "a red", w.red)
	w.post(t, a, "a plain")
	w.post(t, b, "b blue", w.blue)
	w.post(t, c, "c plain")
	w.post(t, viewer, "mine", w.red)

	tribeIDs, err := w.tribes.TribeIDsForUser(ctx, viewer)
	require.NoError(t, err)
	page, err := w.feed.Feed(ctx, viewer, domain.TribePosts{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	for _, p := range page.Posts {
		intersects := slices.ContainsFunc(p.TribeIDs, func(id string) bool { return slices.Contains(tribeIDs, id) })
		assert.True(t, intersects, "post %s", p.Content)
	}

	following, err := w.follows.FollowingIDs(ctx, viewer)
	require.NoError(t, err)
	page, err = w.feed.Feed(ctx, viewer, domain.FriendsPosts{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	for _, p := range page.Posts {
		assert.Contains(t, following, p.AuthorID)
	}

	page, err = w.feed.Feed(ctx, viewer, domain.MyPosts{}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "mine", page.Posts[0].Content)

	page, err = w.feed.Feed(ctx, viewer, domain.AllPosts{}, domain.PageRequest{MaxResults: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Posts, 3)
	assert.Equal(t, "mine", page.Posts[0].Content)
	assert.NotEmpty(t, page.NextPageToken)

	next, err := w.feed.Feed(ctx, viewer, domain.AllPosts{}, domain.PageRequest{MaxResults: 3, PageToken: page.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, next.Posts, 2)
	assert.Empty(t, next.NextPageToken)
	assert.Equal(t, "a red", next.Posts[1].Content)
}
