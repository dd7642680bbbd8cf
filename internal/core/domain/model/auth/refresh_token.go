// Package auth holds the persisted refresh token record. Access tokens are
// stateless JWTs; refresh tokens are stored so they can be revoked by
// deletion and purged after expiry.
package auth

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// RefreshToken is one issued refresh credential. The ID doubles as the JWT
// "jti" claim: a refresh request is honored only if a row with that id still
// exists and has not expired.
type RefreshToken struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token is past its expiry at the given time.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
