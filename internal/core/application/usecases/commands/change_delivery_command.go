package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
)

var ErrChangeDeliveryCommandIsNotConstructed = errors.New(
	"ChangeDeliveryCommand must be created via NewChangeDeliveryCommand constructor",
)

// ChangeDeliveryCommand represents a courier's request to move an order
// they carry to the next delivery status.
type ChangeDeliveryCommand struct {
	orderID   kernel.UUID
	actor     user.Actor
	requested order.Status

	isConstructed bool
}

// NewChangeDeliveryCommand creates a command to advance a delivery.
// Validates identities and that the requested status names a known state;
// whether the transition is legal from the order's current state is decided
// by the aggregate.
func NewChangeDeliveryCommand(
	orderID kernel.UUID,
	actor user.Actor,
	requested order.Status,
) (ChangeDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.ID.Validate(),
		actor.Role.Validate(),
		requested.Validate(),
	); err != nil {
		return ChangeDeliveryCommand{}, err
	}

	return ChangeDeliveryCommand{
		orderID:       orderID,
		actor:         actor,
		requested:     requested,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeDeliveryCommand) Validate() error {
	if !c.isConstructed {
		return ErrChangeDeliveryCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being advanced.
func (c ChangeDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the calling courier's identity and role.
func (c ChangeDeliveryCommand) Actor() user.Actor {
	return c.actor
}

// Requested returns the status the courier wants to move to.
func (c ChangeDeliveryCommand) Requested() order.Status {
	return c.requested
}
