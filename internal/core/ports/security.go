package ports

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// PasswordHasher abstracts password hashing so command handlers stay free of
// the concrete hashing scheme.
type PasswordHasher interface {
	// Hash derives a storable hash from a plain-text password.
	Hash(plain string) (string, error)

	// Compare reports whether plain matches hash. Returns an error on
	// mismatch or on a malformed hash.
	Compare(hash, plain string) error
}

// TokenClaims is what a verified access token asserts about its bearer.
type TokenClaims struct {
	UserID kernel.UUID
	Role   user.Role
}

// TokenSigner issues and verifies the signed tokens the HTTP layer exchanges
// with clients. Refresh tokens carry a jti so the server side can revoke and
// rotate them individually.
type TokenSigner interface {
	// SignAccess issues a short-lived access token for the user.
	SignAccess(userID kernel.UUID, role user.Role) (token string, expiresAt time.Time, err error)

	// SignRefresh issues a refresh token carrying the given jti. The
	// returned expiry is what the server side persists for revocation.
	SignRefresh(userID kernel.UUID, jti kernel.UUID) (token string, expiresAt time.Time, err error)

	// ParseAccess verifies an access token and extracts its claims.
	// Returns an Unauthorized error for expired or tampered tokens.
	ParseAccess(token string) (TokenClaims, error)

	// ParseRefresh verifies a refresh token and extracts the user id and jti.
	// Returns an Unauthorized error for expired or tampered tokens.
	ParseRefresh(token string) (userID, jti kernel.UUID, err error)
}
