// Package service implements the domain mutation operations and
// aggregated reads behind the API handlers.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// resolveActor turns the external identity from the request context
// into the acting internal User. Every mutation goes through this
// before touching any other collection; a client-supplied internal id
// is never accepted as the acting identity.
func resolveActor(ctx context.Context, users repository.UserRepository, identity string) (*models.User, error) {
	if identity == "" {
		return nil, models.NewAuthenticationError("Not authenticated")
	}
	return users.GetByExternalID(ctx, identity)
}
