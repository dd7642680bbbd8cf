package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand represents a merchant editing one of their listings.
type UpdateProductCommand struct {
	productID   kernel.UUID
	actor       user.Actor
	name        string
	description string
	stock       kernel.Quantity
	price       decimal.Decimal

	isConstructed bool
}

// NewUpdateProductCommand creates a command to edit a listing.
func NewUpdateProductCommand(
	productID kernel.UUID,
	actor user.Actor,
	name, description string,
	stock kernel.Quantity,
	price decimal.Decimal,
) (UpdateProductCommand, error) {
	if err := errors.Join(
		productID.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
	); err != nil {
		return UpdateProductCommand{}, err
	}

	return UpdateProductCommand{
		productID:     productID,
		actor:         actor,
		name:          name,
		description:   description,
		stock:         stock,
		price:         price,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProductCommand) Validate() error {
	if !c.isConstructed {
		return ErrUpdateProductCommandIsNotConstructed
	}
	return nil
}

// UpdateProductCommandHandler edits catalog listings. Couriers cannot manage
// the catalog at all; for everyone else only the owning merchant may edit.
// A wrong owner gets Forbidden, and so does an edit against an id that does
// not resolve to a live product.
type UpdateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

// NewUpdateProductCommandHandler creates a handler for product edits.
func NewUpdateProductCommandHandler(uowFactory ProductUoWFactory) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit command and returns the updated product.
func (h UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.actor.Role.CanManageCatalog() {
		return nil, errs.NewForbiddenError()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	listed, err := productRepo.Get(ctx, cmd.productID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewForbiddenError()
	}
	if err != nil {
		return nil, err
	}

	if !listed.IsOwnedBy(cmd.actor.ID) {
		return nil, errs.NewForbiddenError()
	}

	if err = listed.Update(cmd.name, cmd.description, cmd.stock, cmd.price); err != nil {
		return nil, err
	}

	if err = productRepo.Update(ctx, listed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return listed, nil
}
