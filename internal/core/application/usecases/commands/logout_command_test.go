package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tokenMocks() (*MockTokenUoWFactory, *MockTokenUoW, *MockTokenRepository) {
	tokenRepo := new(MockTokenRepository)

	uow := new(MockTokenUoW)
	uow.On("TokenRepository").Return(tokenRepo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockTokenUoWFactory)
	factory.On("Create").Return(uow).Maybe()

	return factory, uow, tokenRepo
}

func TestLogoutCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	jti := kernel.NewUUID()

	record := auth.RefreshToken{
		ID:        jti,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().Add(-time.Hour),
	}

	t.Run("revokes the presented refresh token", func(t *testing.T) {
		factory, uow, tokenRepo := tokenMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		tokenRepo.On("Get", mock.Anything, jti).Return(record, nil).Once()
		tokenRepo.On("Delete", mock.Anything, jti).Return(nil).Once()

		cmd, err := commands.NewLogoutCommand("some-refresh-token")
		require.NoError(t, err)

		signer := &stubSigner{parsedUserID: userID, parsedJTI: jti}
		h := commands.NewLogoutCommandHandler(factory, signer)
		require.NoError(t, h.Handle(ctx, cmd))
		tokenRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("already revoked jti is unauthorized", func(t *testing.T) {
		factory, uow, tokenRepo := tokenMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		tokenRepo.On("Get", mock.Anything, jti).
			Return(auth.RefreshToken{}, errs.NewObjectNotFoundError("refresh token", jti)).Once()

		cmd, err := commands.NewLogoutCommand("replayed-token")
		require.NoError(t, err)

		signer := &stubSigner{parsedUserID: userID, parsedJTI: jti}
		h := commands.NewLogoutCommandHandler(factory, signer)
		assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrUnauthorized)
		tokenRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("jti of another user is unauthorized", func(t *testing.T) {
		factory, uow, tokenRepo := tokenMocks()
		uow.On("Begin", ctx).Return(nil).Once()

		foreign := record
		foreign.UserID = kernel.NewUUID()
		tokenRepo.On("Get", mock.Anything, jti).Return(foreign, nil).Once()

		cmd, err := commands.NewLogoutCommand("mismatched-token")
		require.NoError(t, err)

		signer := &stubSigner{parsedUserID: userID, parsedJTI: jti}
		h := commands.NewLogoutCommandHandler(factory, signer)
		assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrUnauthorized)
		tokenRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("tampered token is unauthorized", func(t *testing.T) {
		factory, _, tokenRepo := tokenMocks()

		cmd, err := commands.NewLogoutCommand("garbage")
		require.NoError(t, err)

		signer := &stubSigner{parseErr: errs.NewUnauthorizedError("invalid token")}
		h := commands.NewLogoutCommandHandler(factory, signer)
		assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrUnauthorized)
		tokenRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("empty token fails construction", func(t *testing.T) {
		_, err := commands.NewLogoutCommand("")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
