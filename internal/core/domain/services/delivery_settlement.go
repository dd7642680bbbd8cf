package services

import (
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
)

// DeliverySettlement is a domain service that applies a courier-requested
// delivery transition together with its monetary side effect.
//
// The one settlement in the lifecycle is the merchant credit: when an order
// reaches ArrivedInDestination the merchant's balance grows by exactly the
// order price, exactly once. The aggregate decides whether the transition
// credits; this service carries the credit onto the merchant entity so both
// mutations can be persisted in one transaction by the caller.
type DeliverySettlement struct{}

// NewDeliverySettlement creates a new DeliverySettlement instance.
func NewDeliverySettlement() DeliverySettlement {
	return DeliverySettlement{}
}

// Apply performs the requested transition on the order and, when the
// transition completes the delivery, credits the merchant by the order price.
//
// Returns credited = true when the merchant balance changed; the caller must
// then persist both the order and the merchant atomically. On any transition
// failure neither entity is modified.
func (s DeliverySettlement) Apply(
	o *order.Order,
	actor user.Actor,
	requested order.Status,
	merchant *user.User,
) (credited bool, err error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := merchant.Validate(); err != nil {
		return false, err
	}

	credited, err = o.ChangeDelivery(actor, requested)
	if err != nil {
		return false, err
	}

	if credited {
		if err := merchant.Credit(o.Price()); err != nil {
			return false, err
		}
	}

	return credited, nil
}
