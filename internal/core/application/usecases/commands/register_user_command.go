package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

const minPasswordLength = 8

// RegisterUserCommand represents a request to create a new account with a
// zero starting balance.
type RegisterUserCommand struct {
	userID   kernel.UUID
	name     string
	email    string
	password string
	role     user.Role

	isConstructed bool
}

// NewRegisterUserCommand creates a command to register an account.
// Validates presence of name, email and role, and a minimum password length.
func NewRegisterUserCommand(
	userID kernel.UUID,
	name, email, password string,
	role user.Role,
) (RegisterUserCommand, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return RegisterUserCommand{}, err
	}
	if name == "" {
		return RegisterUserCommand{}, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return RegisterUserCommand{}, errs.NewValueIsRequiredError("email")
	}
	if len(password) < minPasswordLength {
		return RegisterUserCommand{}, errs.NewValueIsInvalidError("password")
	}

	return RegisterUserCommand{
		userID:        userID,
		name:          name,
		email:         email,
		password:      password,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	if !c.isConstructed {
		return ErrRegisterUserCommandIsNotConstructed
	}
	return nil
}

// RegisterUserCommandHandler creates accounts. The password is hashed before
// anything touches the store; the plain text never leaves the handler.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

// NewRegisterUserCommandHandler creates a handler for account registration.
func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle processes the registration command and returns the created account.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.password)
	if err != nil {
		return nil, err
	}

	account, err := user.NewUser(cmd.userID, cmd.name, cmd.email, hash, cmd.role)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, account); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}
