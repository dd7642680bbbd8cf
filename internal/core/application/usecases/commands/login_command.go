package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// TokenPair is the result of a successful credential exchange.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// LoginCommand represents a credential exchange request.
type LoginCommand struct {
	email    string
	password string

	isConstructed bool
}

// NewLoginCommand creates a command to exchange credentials for tokens.
func NewLoginCommand(email, password string) (LoginCommand, error) {
	if email == "" {
		return LoginCommand{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return LoginCommand{}, errs.NewValueIsRequiredError("password")
	}

	return LoginCommand{
		email:         email,
		password:      password,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginCommand) Validate() error {
	if !c.isConstructed {
		return ErrLoginCommandIsNotConstructed
	}
	return nil
}

// LoginCommandHandler verifies credentials and issues a token pair. The
// refresh token's jti is persisted so it can be revoked and rotated later.
//
// An unknown email and a wrong password both surface as the same
// Unauthorized failure; the handler does not reveal which one it was.
type LoginCommandHandler struct {
	uowFactory AuthUoWFactory
	hasher     ports.PasswordHasher
	signer     ports.TokenSigner
}

// NewLoginCommandHandler creates a handler for credential exchange.
func NewLoginCommandHandler(
	uowFactory AuthUoWFactory,
	hasher ports.PasswordHasher,
	signer ports.TokenSigner,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		signer:     signer,
	}
}

// Handle processes the login command.
func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (TokenPair, error) {
	if err := cmd.Validate(); err != nil {
		return TokenPair{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TokenPair{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	account, err := uow.UserRepository().GetByEmail(ctx, cmd.email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return TokenPair{}, errs.NewUnauthorizedError("invalid credentials")
	}
	if err != nil {
		return TokenPair{}, err
	}

	if err = h.hasher.Compare(account.PasswordHash(), cmd.password); err != nil {
		return TokenPair{}, errs.NewUnauthorizedError("invalid credentials")
	}

	pair, token, err := issueTokenPair(h.signer, account.ID(), account.Role())
	if err != nil {
		return TokenPair{}, err
	}

	if err = uow.TokenRepository().Add(ctx, token); err != nil {
		return TokenPair{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TokenPair{}, err
	}

	return pair, nil
}

// issueTokenPair signs an access/refresh pair under a fresh jti and builds
// the refresh token record to persist alongside it.
func issueTokenPair(
	signer ports.TokenSigner,
	userID kernel.UUID,
	role user.Role,
) (TokenPair, auth.RefreshToken, error) {
	access, accessExpiresAt, err := signer.SignAccess(userID, role)
	if err != nil {
		return TokenPair{}, auth.RefreshToken{}, err
	}

	jti := kernel.NewUUID()
	refresh, refreshExpiresAt, err := signer.SignRefresh(userID, jti)
	if err != nil {
		return TokenPair{}, auth.RefreshToken{}, err
	}

	pair := TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpiresAt,
	}
	record := auth.RefreshToken{
		ID:        jti,
		UserID:    userID,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return pair, record, nil
}
