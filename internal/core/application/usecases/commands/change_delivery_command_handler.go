package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ChangeDeliveryCommandHandler advances an order along the delivery state
// machine and settles the merchant credit when the transition completes the
// delivery.
//
// The status push and the merchant credit commit in one transaction, with
// the push conditioned on the order's optimistic version. A transition that
// already happened therefore cannot be replayed: the retried attempt sees
// the new current status and the aggregate rejects it, so the merchant is
// credited at most once per order.
type ChangeDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	settlement services.DeliverySettlement
}

// NewChangeDeliveryCommandHandler creates a handler for delivery changes.
// Requires a DeliveryUoWFactory for transactional persistence.
func NewChangeDeliveryCommandHandler(uowFactory DeliveryUoWFactory) ChangeDeliveryCommandHandler {
	return ChangeDeliveryCommandHandler{
		uowFactory: uowFactory,
		settlement: services.NewDeliverySettlement(),
	}
}

// Handle processes the delivery change command.
func (h ChangeDeliveryCommandHandler) Handle(ctx context.Context, cmd ChangeDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return h.change(ctx, cmd)
	})
}

func (h ChangeDeliveryCommandHandler) change(ctx context.Context, cmd ChangeDeliveryCommand) error {
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

	userRepo := uow.UserRepository()
	merchant, err := userRepo.Get(ctx, o.MerchantID())
	if err != nil {
		return err
	}

	credited, err := h.settlement.Apply(o, cmd.Actor(), cmd.Requested(), merchant)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if credited {
		if err = userRepo.CreditBalance(ctx, merchant.ID(), o.Price()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
