package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrRefreshTokenCommandIsNotConstructed = errors.New(
	"RefreshTokenCommand must be created via NewRefreshTokenCommand constructor",
)

// RefreshTokenCommand represents a request to trade a refresh token for a
// fresh token pair.
type RefreshTokenCommand struct {
	refreshToken string

	isConstructed bool
}

// NewRefreshTokenCommand creates a command to rotate a refresh token.
func NewRefreshTokenCommand(refreshToken string) (RefreshTokenCommand, error) {
	if refreshToken == "" {
		return RefreshTokenCommand{}, errs.NewValueIsRequiredError("refresh token")
	}

	return RefreshTokenCommand{
		refreshToken:  refreshToken,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshTokenCommand) Validate() error {
	if !c.isConstructed {
		return ErrRefreshTokenCommandIsNotConstructed
	}
	return nil
}

// RefreshTokenCommandHandler rotates refresh tokens. The presented token's
// jti must still exist server-side; rotation deletes it and persists a new
// one, so a replayed token fails even when its signature is still valid.
type RefreshTokenCommandHandler struct {
	uowFactory AuthUoWFactory
	signer     ports.TokenSigner
}

// NewRefreshTokenCommandHandler creates a handler for token rotation.
func NewRefreshTokenCommandHandler(
	uowFactory AuthUoWFactory,
	signer ports.TokenSigner,
) RefreshTokenCommandHandler {
	return RefreshTokenCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
	}
}

// Handle processes the rotation command.
func (h RefreshTokenCommandHandler) Handle(ctx context.Context, cmd RefreshTokenCommand) (TokenPair, error) {
	if err := cmd.Validate(); err != nil {
		return TokenPair{}, err
	}

	userID, jti, err := h.signer.ParseRefresh(cmd.refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return TokenPair{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tokenRepo := uow.TokenRepository()
	record, err := tokenRepo.Get(ctx, jti)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return TokenPair{}, errs.NewUnauthorizedError("refresh token is revoked")
	}
	if err != nil {
		return TokenPair{}, err
	}

	if !record.UserID.IsEqual(userID) || record.IsExpired(time.Now().UTC()) {
		return TokenPair{}, errs.NewUnauthorizedError("refresh token is expired")
	}

	account, err := uow.UserRepository().Get(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return TokenPair{}, errs.NewUnauthorizedError("account no longer exists")
	}
	if err != nil {
		return TokenPair{}, err
	}

	if err = tokenRepo.Delete(ctx, jti); err != nil {
		return TokenPair{}, err
	}

	pair, fresh, err := issueTokenPair(h.signer, account.ID(), account.Role())
	if err != nil {
		return TokenPair{}, err
	}

	if err = tokenRepo.Add(ctx, fresh); err != nil {
		return TokenPair{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TokenPair{}, err
	}

	return pair, nil
}
