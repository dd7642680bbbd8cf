package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
)

var ErrConfirmProcessingCommandIsNotConstructed = errors.New(
	"ConfirmProcessingCommand must be created via NewConfirmProcessingCommand constructor",
)

// ConfirmProcessingCommand represents a merchant's request to release an
// order to couriers. Only ownership is asserted here; the aggregate gates
// the transition itself.
type ConfirmProcessingCommand struct {
	orderID kernel.UUID
	actorID kernel.UUID

	isConstructed bool
}

// NewConfirmProcessingCommand creates a command to confirm order processing.
// Validates that both ids are constructed.
func NewConfirmProcessingCommand(orderID, actorID kernel.UUID) (ConfirmProcessingCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return ConfirmProcessingCommand{}, err
	}

	return ConfirmProcessingCommand{
		orderID:       orderID,
		actorID:       actorID,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmProcessingCommand) Validate() error {
	if !c.isConstructed {
		return ErrConfirmProcessingCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order to confirm.
func (c ConfirmProcessingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the calling user's identifier.
func (c ConfirmProcessingCommand) ActorID() kernel.UUID {
	return c.actorID
}
