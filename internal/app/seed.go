package app

import (
	"context"
	"fmt"
	"log/slog"

	"pingsocial/internal/config"
	"pingsocial/internal/service/graph"
)

// seedTribes creates every catalogued tribe that does not exist yet.
// Idempotent; existing tribes are left untouched.
func seedTribes(ctx context.Context, tribes *graph.TribeService, path string, logger *slog.Logger) error {
	seeds, err := config.LoadTribeSeeds(path)
	if err != nil {
		return fmt.Errorf("load tribe catalogue: %w", err)
	}

	created, err := tribes.EnsureTribes(ctx, seeds)
	if err != nil {
		return fmt.Errorf("seed tribes: %w", err)
	}
	if created > 0 {
		logger.Info("tribes seeded", "created", created, "catalogue", len(seeds))
	}
	return nil
}

// SeedTribes runs the tribe seeding step on its own, for the seed-tribes command.
func (a *App) SeedTribes(ctx context.Context, path string) error {
	return seedTribes(ctx, a.Services.Tribe, path, a.logger)
}
