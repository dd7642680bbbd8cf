package commands

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"
)

// PickupOrderCommandHandler assigns a courier to an order waiting for one.
//
// Two couriers racing for the same order both pass the in-memory gate; the
// optimistic version condition on the update lets exactly one of them win.
// The loser retries, re-reads the now-claimed order and fails the gate with
// Forbidden.
type PickupOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewPickupOrderCommandHandler creates a handler for order pickup.
// Requires a DeliveryUoWFactory for transactional persistence.
func NewPickupOrderCommandHandler(uowFactory DeliveryUoWFactory) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup command.
func (h PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return h.pickup(ctx, cmd)
	})
}

func (h PickupOrderCommandHandler) pickup(ctx context.Context, cmd PickupOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewForbiddenError()
	}
	if err != nil {
		return err
	}

	if err = o.Pickup(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
