package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ConfirmProcessingCommandHandler advances an order from ProcessingInMerchant
// to WaitingForCourier on behalf of the owning merchant.
//
// An absent order surfaces as Forbidden, same as a wrong owner or an illegal
// current status; the state machine never reveals which precondition failed.
type ConfirmProcessingCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewConfirmProcessingCommandHandler creates a handler for processing
// confirmation. Requires a DeliveryUoWFactory for transactional persistence.
func NewConfirmProcessingCommandHandler(uowFactory DeliveryUoWFactory) ConfirmProcessingCommandHandler {
	return ConfirmProcessingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation command and returns the advanced order.
// The status push is persisted with an optimistic version condition; a lost
// race restarts the whole operation against fresh state.
func (h ConfirmProcessingCommandHandler) Handle(ctx context.Context, cmd ConfirmProcessingCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var confirmed *order.Order
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		var attemptErr error
		confirmed, attemptErr = h.confirm(ctx, cmd)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	return confirmed, nil
}

func (h ConfirmProcessingCommandHandler) confirm(ctx context.Context, cmd ConfirmProcessingCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewForbiddenError()
	}
	if err != nil {
		return nil, err
	}

	if err = o.ConfirmProcessing(cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
