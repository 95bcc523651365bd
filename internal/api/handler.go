// Package api provides HTTP handlers for the social graph REST API.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pingsocial/internal/domain"
)

// followService defines the follow graph operations used by the API handler.
type followService interface {
	Follow(ctx context.Context, followerID, followedID string) (*domain.FollowEdge, error)
	Unfollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowers(ctx context.Context, userID string) ([]domain.FollowListEntry, error)
	ListFollowing(ctx context.Context, userID string) ([]domain.FollowListEntry, error)
}

// tribeService defines the tribe membership operations used by the API handler.
type tribeService interface {
	Join(ctx context.Context, userID, tribeID string) error
	Leave(ctx context.Context, userID, tribeID string) error
	ListUserTribes(ctx context.Context, userID string) ([]domain.Tribe, error)
	ListTribeMembers(ctx context.Context, tribeID string) ([]domain.TribeMember, error)
	ListAll(ctx context.Context) ([]domain.Tribe, error)
}

// feedService defines the feed and post operations used by the API handler.
type feedService interface {
	Feed(ctx context.Context, viewerID string, filter domain.PostFilter, page domain.PageRequest) (*domain.FeedPage, error)
	CreatePost(ctx context.Context, req domain.CreatePostRequest) (*domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
}

// profileService defines the profile operations used by the API handler.
type profileService interface {
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
	Suggestions(ctx context.Context, viewerID string) ([]domain.Suggestion, error)
	SaveLocation(ctx context.Context, userID string, loc domain.UpdateLocationRequest) error
	Location(ctx context.Context, viewerID, userID string) (*domain.Location, error)
}

// chatService defines the direct message operations used by the API handler.
type chatService interface {
	Send(ctx context.Context, req domain.SendMessageRequest) (*domain.ChatMessage, error)
	History(ctx context.Context, viewerID, otherID string, page domain.PageRequest) ([]domain.ChatMessage, int64, error)
	Clear(ctx context.Context, viewerID, otherID string) error
}

// auditService defines the audit operations used by the API handler.
type auditService interface {
	List(ctx context.Context, viewerID string, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error)
}

// APIHandler serves the /v1 routes.
type APIHandler struct {
	follows  followService
	tribes   tribeService
	feed     feedService
	profiles profileService
	chat     chatService
	audit    auditService
	logger   *slog.Logger
}

// NewHandler creates a new APIHandler with all required service dependencies.
func NewHandler(
	follows followService,
	tribes tribeService,
	feed feedService,
	profiles profileService,
	chat chatService,
	audit auditService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		follows:  follows,
		tribes:   tribes,
		feed:     feed,
		profiles: profiles,
		chat:     chat,
		audit:    audit,
		logger:   logger,
	}
}

// Routes registers every endpoint on r. Callers mount r under /v1 behind
// the auth middleware.
func (h *APIHandler) Routes(r chi.Router) {
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Post("/follow", h.FollowUser)
		r.Delete("/follow", h.UnfollowUser)
		r.Get("/followers", h.ListFollowers)
		r.Get("/following", h.ListFollowing)
		r.Get("/following/{otherID}", h.IsFollowing)
		r.Get("/profile", h.GetUserProfile)
		r.Get("/location", h.GetUserLocation)
		r.Post("/messages", h.SendMessage)
		r.Get("/messages", h.ListMessages)
		r.Delete("/messages", h.ClearMessages)
	})

	r.Get("/tribes", h.ListTribes)
	r.Route("/tribes/{tribeID}/members", func(r chi.Router) {
		r.Get("/", h.ListTribeMembers)
		r.Post("/", h.JoinTribe)
		r.Delete("/", h.LeaveTribe)
	})

	r.Get("/feed", h.GetFeed)
	r.Post("/posts", h.CreatePost)
	r.Get("/posts/{postID}", h.GetPost)

	r.Get("/me", h.GetMyProfile)
	r.Get("/me/tribes", h.ListMyTribes)
	r.Get("/me/location", h.GetMyLocation)
	r.Put("/me/location", h.SaveLocation)
	r.Get("/me/audit", h.ListMyAuditLogs)
	r.Get("/suggestions", h.ListSuggestions)
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
