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

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents a merchant listing a new product.
// Field validation (name, price, stock) is owned by the product aggregate.
type CreateProductCommand struct {
	productID   kernel.UUID
	actor       user.Actor
	name        string
	description string
	stock       kernel.Quantity
	price       decimal.Decimal

	isConstructed bool
}

// NewCreateProductCommand creates a command to list a product. The actor
// becomes the listing's merchant.
func NewCreateProductCommand(
	productID kernel.UUID,
	actor user.Actor,
	name, description string,
	stock kernel.Quantity,
	price decimal.Decimal,
) (CreateProductCommand, error) {
	if err := errors.Join(
		productID.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
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
func (c CreateProductCommand) Validate() error {
	if !c.isConstructed {
		return ErrCreateProductCommandIsNotConstructed
	}
	return nil
}

// CreateProductCommandHandler persists new catalog listings. Couriers cannot
// sell, so a courier actor is rejected before anything is built.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

// NewCreateProductCommandHandler creates a handler for product creation.
func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the creation command and returns the listed product.
func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.actor.Role.CanManageCatalog() {
		return nil, errs.NewForbiddenError()
	}

	listed, err := product.NewProduct(
		cmd.productID,
		cmd.actor.ID,
		cmd.name,
		cmd.description,
		cmd.stock,
		cmd.price,
	)
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

	if err = uow.ProductRepository().Add(ctx, listed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return listed, nil
}
