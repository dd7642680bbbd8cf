package commands

import (
	"errors"
	"math/big"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderItem is one requested product pick inside a PlaceOrderCommand.
// The quantity is carried as written by the client; its sign is part of the
// placement validation ladder, not of command construction, so a
// non-positive quantity is rejected by the handler after product resolution.
type PlaceOrderItem struct {
	productID kernel.UUID
	quantity  *big.Int
}

// NewPlaceOrderItem creates a product pick for order placement.
// Validates that the product id is constructed and a quantity is present.
func NewPlaceOrderItem(productID kernel.UUID, quantity *big.Int) (PlaceOrderItem, error) {
	if err := productID.Validate(); err != nil {
		return PlaceOrderItem{}, err
	}
	if quantity == nil {
		return PlaceOrderItem{}, errs.NewValueIsRequiredError("quantity")
	}

	return PlaceOrderItem{
		productID: productID,
		quantity:  new(big.Int).Set(quantity),
	}, nil
}

// ProductID returns the referenced product's identifier.
func (i PlaceOrderItem) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns a copy of the requested quantity.
func (i PlaceOrderItem) Quantity() *big.Int {
	return new(big.Int).Set(i.quantity)
}

// PlaceOrderCommand represents a buyer's request to turn a set of product
// picks into a durable order. The order id is supplied by the caller so a
// retried placement reuses the same identity.
//
// Example:
//
//	item, _ := NewPlaceOrderItem(productID, big.NewInt(2))
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), buyerID, []PlaceOrderItem{item})
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
type PlaceOrderCommand struct {
	orderID kernel.UUID
	buyerID kernel.UUID
	items   []PlaceOrderItem

	isConstructed bool
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that both ids are constructed and at least one item is present.
func NewPlaceOrderCommand(orderID, buyerID kernel.UUID, items []PlaceOrderItem) (PlaceOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), buyerID.Validate()); err != nil {
		return PlaceOrderCommand{}, err
	}
	if len(items) == 0 {
		return PlaceOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	return PlaceOrderCommand{
		orderID:       orderID,
		buyerID:       buyerID,
		items:         append([]PlaceOrderItem(nil), items...),
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrPlaceOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the identity the new order will be created under.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the purchasing user's identifier.
func (c PlaceOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Items returns the requested product picks.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	return append([]PlaceOrderItem(nil), c.items...)
}
