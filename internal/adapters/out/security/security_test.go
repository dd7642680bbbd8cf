package security_test

import (
	"testing"
	"time"

	"marketplace/internal/adapters/out/security"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher_RoundTrip(t *testing.T) {
	hasher := security.NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
	assert.Error(t, hasher.Compare("not a bcrypt hash", "anything"))
}

func TestBcryptPasswordHasher_SaltsEachHash(t *testing.T) {
	hasher := security.NewBcryptPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func newSigner(t *testing.T) *security.JWTSigner {
	t.Helper()
	signer, err := security.NewJWTSigner("test-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	return signer
}

func TestNewJWTSigner_Validation(t *testing.T) {
	_, err := security.NewJWTSigner("", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = security.NewJWTSigner("secret", 0, time.Hour)
	assert.Error(t, err)

	_, err = security.NewJWTSigner("secret", time.Minute, -time.Hour)
	assert.Error(t, err)
}

func TestJWTSigner_AccessRoundTrip(t *testing.T) {
	signer := newSigner(t)
	userID := kernel.NewUUID()

	token, expiresAt, err := signer.SignAccess(userID, user.RoleCourier)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := signer.ParseAccess(token)
	require.NoError(t, err)
	assert.True(t, claims.UserID.IsEqual(userID))
	assert.Equal(t, user.RoleCourier, claims.Role)
}

func TestJWTSigner_RefreshRoundTrip(t *testing.T) {
	signer := newSigner(t)
	userID := kernel.NewUUID()
	jti := kernel.NewUUID()

	token, expiresAt, err := signer.SignRefresh(userID, jti)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now().Add(30*time.Minute)))

	parsedUser, parsedJTI, err := signer.ParseRefresh(token)
	require.NoError(t, err)
	assert.True(t, parsedUser.IsEqual(userID))
	assert.True(t, parsedJTI.IsEqual(jti))
}

func TestJWTSigner_RejectsWrongTokenUse(t *testing.T) {
	signer := newSigner(t)
	userID := kernel.NewUUID()

	refresh, _, err := signer.SignRefresh(userID, kernel.NewUUID())
	require.NoError(t, err)
	access, _, err := signer.SignAccess(userID, user.RoleCustomer)
	require.NoError(t, err)

	_, err = signer.ParseAccess(refresh)
	assert.ErrorIs(t, err, errs.ErrUnauthorized, "refresh token must not pass as access token")

	_, _, err = signer.ParseRefresh(access)
	assert.ErrorIs(t, err, errs.ErrUnauthorized, "access token must not pass as refresh token")
}

func TestJWTSigner_RejectsTamperedToken(t *testing.T) {
	signer := newSigner(t)

	token, _, err := signer.SignAccess(kernel.NewUUID(), user.RoleCustomer)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = signer.ParseAccess(tampered)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = signer.ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestJWTSigner_RejectsForeignSecret(t *testing.T) {
	signer := newSigner(t)
	foreign, err := security.NewJWTSigner("other-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	token, _, err := foreign.SignAccess(kernel.NewUUID(), user.RoleCustomer)
	require.NoError(t, err)

	_, err = signer.ParseAccess(token)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestJWTSigner_RejectsExpiredToken(t *testing.T) {
	shortLived, err := security.NewJWTSigner("test-secret", time.Millisecond, time.Millisecond)
	require.NoError(t, err)

	token, _, err := shortLived.SignAccess(kernel.NewUUID(), user.RoleCustomer)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = shortLived.ParseAccess(token)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}
