package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

// LogoutCommand represents a request to end a session by revoking its
// refresh token.
type LogoutCommand struct {
	refreshToken string

	isConstructed bool
}

// NewLogoutCommand creates a command to revoke a refresh token.
func NewLogoutCommand(refreshToken string) (LogoutCommand, error) {
	if refreshToken == "" {
		return LogoutCommand{}, errs.NewValueIsRequiredError("refresh token")
	}

	return LogoutCommand{
		refreshToken:  refreshToken,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c LogoutCommand) Validate() error {
	if !c.isConstructed {
		return ErrLogoutCommandIsNotConstructed
	}
	return nil
}

// LogoutCommandHandler revokes refresh tokens. Deleting the jti kills the
// session server-side: the access token ages out on its own and the refresh
// token stops rotating immediately.
type LogoutCommandHandler struct {
	uowFactory TokenUoWFactory
	signer     ports.TokenSigner
}

// NewLogoutCommandHandler creates a handler for session revocation.
func NewLogoutCommandHandler(
	uowFactory TokenUoWFactory,
	signer ports.TokenSigner,
) LogoutCommandHandler {
	return LogoutCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
	}
}

// Handle processes the revocation command.
func (h LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	userID, jti, err := h.signer.ParseRefresh(cmd.refreshToken)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tokenRepo := uow.TokenRepository()
	record, err := tokenRepo.Get(ctx, jti)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewUnauthorizedError("refresh token is revoked")
	}
	if err != nil {
		return err
	}

	if !record.UserID.IsEqual(userID) {
		return errs.NewUnauthorizedError("refresh token is revoked")
	}

	if err = tokenRepo.Delete(ctx, jti); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
