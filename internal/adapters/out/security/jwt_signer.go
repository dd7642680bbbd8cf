package security

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenUseClaim   = "use"
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
	roleClaim       = "role"
)

// JWTSigner issues and verifies HS256-signed tokens. Access tokens are
// stateless; refresh tokens carry a jti that must still exist server-side to
// be honored.
type JWTSigner struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTSigner creates a signer with the given shared secret and lifetimes.
func NewJWTSigner(secret string, accessTTL, refreshTTL time.Duration) (*JWTSigner, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errs.NewValueIsInvalidError("token lifetime")
	}
	return &JWTSigner{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// SignAccess issues a short-lived access token for the user.
func (s *JWTSigner) SignAccess(userID kernel.UUID, role user.Role) (string, time.Time, error) {
	if err := userID.Validate(); err != nil {
		return "", time.Time{}, err
	}
	if err := role.Validate(); err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().UTC().Add(s.accessTTL)
	claims := jwt.MapClaims{
		"sub":         userID.String(),
		roleClaim:     role.String(),
		tokenUseClaim: tokenUseAccess,
		"iat":         jwt.NewNumericDate(time.Now().UTC()),
		"exp":         jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// SignRefresh issues a refresh token carrying the given jti.
func (s *JWTSigner) SignRefresh(userID kernel.UUID, jti kernel.UUID) (string, time.Time, error) {
	if err := userID.Validate(); err != nil {
		return "", time.Time{}, err
	}
	if err := jti.Validate(); err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().UTC().Add(s.refreshTTL)
	claims := jwt.MapClaims{
		"sub":         userID.String(),
		"jti":         jti.String(),
		tokenUseClaim: tokenUseRefresh,
		"iat":         jwt.NewNumericDate(time.Now().UTC()),
		"exp":         jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ParseAccess verifies an access token and extracts its claims.
func (s *JWTSigner) ParseAccess(token string) (ports.TokenClaims, error) {
	claims, err := s.parse(token, tokenUseAccess)
	if err != nil {
		return ports.TokenClaims{}, err
	}

	userID, err := subjectUUID(claims)
	if err != nil {
		return ports.TokenClaims{}, err
	}

	roleValue, _ := claims[roleClaim].(string)
	role := user.Role(roleValue)
	if err := role.Validate(); err != nil {
		return ports.TokenClaims{}, errs.NewUnauthorizedError("invalid token")
	}

	return ports.TokenClaims{UserID: userID, Role: role}, nil
}

// ParseRefresh verifies a refresh token and extracts the user id and jti.
func (s *JWTSigner) ParseRefresh(token string) (kernel.UUID, kernel.UUID, error) {
	claims, err := s.parse(token, tokenUseRefresh)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	userID, err := subjectUUID(claims)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	jtiValue, _ := claims["jti"].(string)
	jti, err := kernel.UUIDFromString(jtiValue)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewUnauthorizedError("invalid token")
	}

	return userID, jti, nil
}

func (s *JWTSigner) parse(token, expectedUse string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, errs.NewUnauthorizedError("invalid token")
	}

	if use, _ := claims[tokenUseClaim].(string); use != expectedUse {
		return nil, errs.NewUnauthorizedError("invalid token")
	}

	return claims, nil
}

func subjectUUID(claims jwt.MapClaims) (kernel.UUID, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return kernel.UUID{}, errs.NewUnauthorizedError("invalid token")
	}
	userID, err := kernel.UUIDFromString(sub)
	if err != nil {
		return kernel.UUID{}, errs.NewUnauthorizedError("invalid token")
	}
	return userID, nil
}
