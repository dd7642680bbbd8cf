package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/auth"
	"marketplace/internal/core/domain/model/kernel"
)

// TokenRepository defines the persistence contract for refresh tokens.
type TokenRepository interface {
	// Add persists a newly issued refresh token.
	Add(ctx context.Context, token auth.RefreshToken) error

	// Get retrieves a refresh token by its id (the JWT jti claim).
	Get(ctx context.Context, id kernel.UUID) (auth.RefreshToken, error)

	// Delete revokes a refresh token. Used on rotation and logout.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteExpired removes every token whose expiry is at or before the
	// given time, returning how many were removed. Called by the cleanup job.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
