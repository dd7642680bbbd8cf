package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

var ErrDeleteProductCommandIsNotConstructed = errors.New(
	"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
)

// DeleteProductCommand represents a merchant retiring one of their listings.
type DeleteProductCommand struct {
	productID kernel.UUID
	actor     user.Actor

	isConstructed bool
}

// NewDeleteProductCommand creates a command to retire a listing.
func NewDeleteProductCommand(productID kernel.UUID, actor user.Actor) (DeleteProductCommand, error) {
	if err := errors.Join(
		productID.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
	); err != nil {
		return DeleteProductCommand{}, err
	}

	return DeleteProductCommand{
		productID:     productID,
		actor:         actor,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteProductCommand) Validate() error {
	if !c.isConstructed {
		return ErrDeleteProductCommandIsNotConstructed
	}
	return nil
}

// DeleteProductCommandHandler soft-deletes catalog listings. Existing orders
// keep referencing the product id; the listing just stops resolving for new
// carts and placements. Couriers are rejected like in the other catalog
// commands.
type DeleteProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

// NewDeleteProductCommandHandler creates a handler for listing removal.
func NewDeleteProductCommandHandler(uowFactory ProductUoWFactory) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal command.
func (h DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.actor.Role.CanManageCatalog() {
		return errs.NewForbiddenError()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	listed, err := productRepo.Get(ctx, cmd.productID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewForbiddenError()
	}
	if err != nil {
		return err
	}

	if !listed.IsOwnedBy(cmd.actor.ID) {
		return errs.NewForbiddenError()
	}

	if err = productRepo.Delete(ctx, cmd.productID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
