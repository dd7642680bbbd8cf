package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand represents a user taking an entry out of their cart.
type RemoveCartItemCommand struct {
	itemID kernel.UUID
	userID kernel.UUID

	isConstructed bool
}

// NewRemoveCartItemCommand creates a command to remove a cart entry.
func NewRemoveCartItemCommand(itemID, userID kernel.UUID) (RemoveCartItemCommand, error) {
	if err := errors.Join(itemID.Validate(), userID.Validate()); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return RemoveCartItemCommand{
		itemID:        itemID,
		userID:        userID,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartItemCommand) Validate() error {
	if !c.isConstructed {
		return ErrRemoveCartItemCommandIsNotConstructed
	}
	return nil
}

// RemoveCartItemCommandHandler removes cart entries, owner-gated like every
// other cart mutation.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartItemCommandHandler creates a handler for cart removals.
func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal command.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	entry, err := cartRepo.Get(ctx, cmd.itemID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewForbiddenError()
	}
	if err != nil {
		return err
	}

	if !entry.IsOwnedBy(cmd.userID) {
		return errs.NewForbiddenError()
	}

	if err = cartRepo.Delete(ctx, cmd.itemID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
