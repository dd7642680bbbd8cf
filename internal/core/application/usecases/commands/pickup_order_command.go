package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

var ErrPickupOrderCommandIsNotConstructed = errors.New(
	"PickupOrderCommand must be created via NewPickupOrderCommand constructor",
)

// PickupOrderCommand represents a courier claiming an unassigned order.
type PickupOrderCommand struct {
	orderID kernel.UUID
	actor   user.Actor

	isConstructed bool
}

// NewPickupOrderCommand creates a command to claim an order for delivery.
// Validates the order id and the actor's identity; the role gate itself
// belongs to the order aggregate.
func NewPickupOrderCommand(orderID kernel.UUID, actor user.Actor) (PickupOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.ID.Validate(), actor.Role.Validate()); err != nil {
		return PickupOrderCommand{}, err
	}

	return PickupOrderCommand{
		orderID:       orderID,
		actor:         actor,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrPickupOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order to claim.
func (c PickupOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the claiming courier's identity and role.
func (c PickupOrderCommand) Actor() user.Actor {
	return c.actor
}
