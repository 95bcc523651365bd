// Package app provides application-level wiring and dependency injection
// for the pingsocial server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"pingsocial/internal/api"
	"pingsocial/internal/config"
	"pingsocial/internal/db/repository"
	"pingsocial/internal/middleware"
	"pingsocial/internal/service/chat"
	"pingsocial/internal/service/feed"
	"pingsocial/internal/service/governance"
	"pingsocial/internal/service/graph"
	"pingsocial/internal/service/profile"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups all service pointers that the API handler and CLI need.
type Services struct {
	Follow  *graph.FollowService
	Tribe   *graph.TribeService
	Feed    *feed.FeedService
	Profile *profile.Service
	Chat    *chat.Service
	Audit   *governance.AuditService
}

// App holds the fully-wired application.
type App struct {
	Services  Services
	Handler   *api.APIHandler
	Validator *middleware.HS256Validator
	Retention *governance.RetentionScheduler

	cfg     *config.Config
	writeDB *sql.DB
	readDB  *sql.DB
	logger  *slog.Logger
}

// New wires all repositories and services from the provided deps and seeds
// the tribe catalogue.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger

	// === Repositories (write-pool) ===
	userRepo := repository.NewUserRepo(deps.WriteDB)
	followRepo := repository.NewFollowRepo(deps.WriteDB)
	tribeRepo := repository.NewTribeRepo(deps.WriteDB)
	postRepo := repository.NewPostRepo(deps.WriteDB)
	messageRepo := repository.NewMessageRepo(deps.WriteDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB)

	// === Repositories (read-pool) ===
	// Used only where the owning service never writes through them.
	readUsers := repository.NewUserRepo(deps.ReadDB)
	readFollows := repository.NewFollowRepo(deps.ReadDB)
	readTribes := repository.NewTribeRepo(deps.ReadDB)

	// === Core services ===
	followSvc := graph.NewFollowService(followRepo, readUsers, auditRepo, logger.With("component", "follow"))
	tribeSvc := graph.NewTribeService(tribeRepo, readUsers, auditRepo, logger.With("component", "tribe"))
	feedSvc := feed.NewFeedService(postRepo, readUsers, readFollows, readTribes, auditRepo, logger.With("component", "feed"))
	profileSvc := profile.NewService(userRepo, readFollows, readTribes, auditRepo, logger.With("component", "profile"))
	chatSvc := chat.NewService(messageRepo, readUsers, auditRepo, logger.With("component", "chat"))
	auditSvc := governance.NewAuditService(auditRepo, logger.With("component", "audit"))

	// === Tribe catalogue ===
	if err := seedTribes(ctx, tribeSvc, cfg.TribesFile, logger); err != nil {
		return nil, err
	}

	// === Auth ===
	validator, err := middleware.NewHS256Validator(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("jwt validator: %w", err)
	}

	handler := api.NewHandler(followSvc, tribeSvc, feedSvc, profileSvc, chatSvc, auditSvc, logger.With("component", "api"))
	retention := governance.NewRetentionScheduler(
		auditSvc, cfg.AuditPurgeSchedule, cfg.AuditRetention, logger.With("component", "audit-retention"),
	)

	return &App{
		Services: Services{
			Follow:  followSvc,
			Tribe:   tribeSvc,
			Feed:    feedSvc,
			Profile: profileSvc,
			Chat:    chatSvc,
			Audit:   auditSvc,
		},
		Handler:   handler,
		Validator: validator,
		Retention: retention,
		cfg:       cfg,
		writeDB:   deps.WriteDB,
		readDB:    deps.ReadDB,
		logger:    logger,
	}, nil
}

// Ready pings both pools.
func (a *App) Ready(ctx context.Context) error {
	return errors.Join(a.writeDB.PingContext(ctx), a.readDB.PingContext(ctx))
}
