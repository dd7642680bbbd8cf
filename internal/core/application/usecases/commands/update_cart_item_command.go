package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

// UpdateCartItemCommand represents a user changing a cart entry's quantity.
type UpdateCartItemCommand struct {
	itemID   kernel.UUID
	userID   kernel.UUID
	quantity kernel.Quantity

	isConstructed bool
}

// NewUpdateCartItemCommand creates a command to change a cart quantity.
func NewUpdateCartItemCommand(
	itemID, userID kernel.UUID,
	quantity kernel.Quantity,
) (UpdateCartItemCommand, error) {
	if err := errors.Join(itemID.Validate(), userID.Validate(), quantity.Validate()); err != nil {
		return UpdateCartItemCommand{}, err
	}

	return UpdateCartItemCommand{
		itemID:        itemID,
		userID:        userID,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartItemCommand) Validate() error {
	if !c.isConstructed {
		return ErrUpdateCartItemCommandIsNotConstructed
	}
	return nil
}

// UpdateCartItemCommandHandler changes cart quantities. Entries belong to
// exactly one user; anyone else editing them gets Forbidden, as does an id
// that no longer resolves.
type UpdateCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpdateCartItemCommandHandler creates a handler for cart quantity edits.
func NewUpdateCartItemCommandHandler(uowFactory CartUoWFactory) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit command and returns the updated entry.
func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	entry, err := cartRepo.Get(ctx, cmd.itemID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewForbiddenError()
	}
	if err != nil {
		return nil, err
	}

	if !entry.IsOwnedBy(cmd.userID) {
		return nil, errs.NewForbiddenError()
	}

	if err = entry.SetQuantity(cmd.quantity); err != nil {
		return nil, err
	}

	if err = cartRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}
