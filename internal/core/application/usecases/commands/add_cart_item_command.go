package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand represents a user putting a product into their cart.
type AddCartItemCommand struct {
	itemID    kernel.UUID
	userID    kernel.UUID
	productID kernel.UUID
	quantity  kernel.Quantity

	isConstructed bool
}

// NewAddCartItemCommand creates a command to add a cart entry.
func NewAddCartItemCommand(
	itemID, userID, productID kernel.UUID,
	quantity kernel.Quantity,
) (AddCartItemCommand, error) {
	if err := errors.Join(
		itemID.Validate(),
		userID.Validate(),
		productID.Validate(),
		quantity.Validate(),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return AddCartItemCommand{
		itemID:        itemID,
		userID:        userID,
		productID:     productID,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	if !c.isConstructed {
		return ErrAddCartItemCommandIsNotConstructed
	}
	return nil
}

// AddCartItemCommandHandler creates cart entries. The referenced product
// must resolve at add time and its stock must cover the requested quantity;
// the merchant id is denormalized onto the entry so cart listings group by
// merchant without a join. A cart holds one entry per product: adding a
// product already in the cart replaces the entry's quantity.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the addition command and returns the created entry.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Item, error) {
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

	listed, err := uow.ProductRepository().Get(ctx, cmd.productID)
	if err != nil {
		return nil, err
	}

	if !listed.CanFulfill(cmd.quantity) {
		return nil, errs.NewForbiddenError()
	}

	cartRepo := uow.CartRepository()
	entry, err := cartRepo.GetByUserAndProduct(ctx, cmd.userID, cmd.productID)
	switch {
	case err == nil:
		if err = entry.SetQuantity(cmd.quantity); err != nil {
			return nil, err
		}
		if err = cartRepo.Update(ctx, entry); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		entry, err = cart.NewItem(cmd.itemID, cmd.userID, cmd.productID, listed.MerchantID(), cmd.quantity)
		if err != nil {
			return nil, err
		}
		if err = cartRepo.Add(ctx, entry); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}
