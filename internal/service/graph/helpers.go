package graph

import (
	"context"

	"pingsocial/internal/domain"
)

// requireUsers returns a NotFoundError for the first id with no user record.
func requireUsers(ctx context.Context, users domain.UserRepository, ids ...string) error {
	for _, id := range ids {
		ok, err := users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound("user %s not found", id)
		}
	}
	return nil
}
