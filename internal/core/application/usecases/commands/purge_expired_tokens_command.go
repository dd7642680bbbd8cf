package commands

import (
	"context"
	"errors"
	"time"
)

var ErrPurgeExpiredTokensCommandIsNotConstructed = errors.New(
	"PurgeExpiredTokensCommand must be created via NewPurgeExpiredTokensCommand constructor",
)

// PurgeExpiredTokensCommand represents a maintenance sweep over the refresh
// token store. Issued periodically by the background job scheduler.
type PurgeExpiredTokensCommand struct {
	isConstructed bool
}

// NewPurgeExpiredTokensCommand creates a command to purge expired tokens.
func NewPurgeExpiredTokensCommand() PurgeExpiredTokensCommand {
	return PurgeExpiredTokensCommand{isConstructed: true}
}

// Validate ensures the command was created through the constructor.
func (c PurgeExpiredTokensCommand) Validate() error {
	if !c.isConstructed {
		return ErrPurgeExpiredTokensCommandIsNotConstructed
	}
	return nil
}

// PurgeExpiredTokensCommandHandler deletes refresh tokens past their expiry.
// Expired tokens already fail verification; the sweep only keeps the table
// from growing without bound.
type PurgeExpiredTokensCommandHandler struct {
	uowFactory TokenUoWFactory
}

// NewPurgeExpiredTokensCommandHandler creates a handler for token purges.
func NewPurgeExpiredTokensCommandHandler(uowFactory TokenUoWFactory) PurgeExpiredTokensCommandHandler {
	return PurgeExpiredTokensCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the purge command and reports how many tokens were
// removed.
func (h PurgeExpiredTokensCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredTokensCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.TokenRepository().DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
