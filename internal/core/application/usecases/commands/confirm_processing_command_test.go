package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoredOrder(t *testing.T, buyerID, merchantID kernel.UUID, statuses ...order.Status) *order.Order {
	t.Helper()
	require.NotEmpty(t, statuses)

	entries := make([]order.StatusEntry, 0, len(statuses))
	base := time.Now().UTC().Add(-time.Hour)
	for i, s := range statuses {
		entries = append(entries, order.StatusEntry{Type: s, Date: base.Add(time.Duration(i) * time.Minute)})
	}
	history, err := order.RestoreStatusHistory(entries)
	require.NoError(t, err)

	item, err := order.NewLineItem(kernel.NewUUID(), mustQuantity(t, 1))
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), buyerID, merchantID, nil,
		decimal.NewFromInt(500), []order.LineItem{item},
		history, 1, base, base,
	)
	require.NoError(t, err)
	return o
}

func deliveryMocks() (*MockDeliveryUoWFactory, *MockDeliveryUoW, *MockOrderRepository, *MockUserRepository) {
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)

	uow := new(MockDeliveryUoW)
	uow.On("OrderRepository").Return(orderRepo).Maybe()
	uow.On("UserRepository").Return(userRepo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow)

	return factory, uow, orderRepo, userRepo
}

func TestNewConfirmProcessingCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewConfirmProcessingCommand(kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
	})

	t.Run("unconstructed actor id", func(t *testing.T) {
		_, err := commands.NewConfirmProcessingCommand(kernel.NewUUID(), kernel.UUID{})
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.ConfirmProcessingCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrConfirmProcessingCommandIsNotConstructed)
	})
}

func TestConfirmProcessingCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	buyerID := kernel.NewUUID()

	t.Run("owner releases order to couriers", func(t *testing.T) {
		o := restoredOrder(t, buyerID, merchantID, order.ProcessingInMerchant)

		factory, uow, orderRepo, _ := deliveryMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once()

		cmd, err := commands.NewConfirmProcessingCommand(o.ID(), merchantID)
		require.NoError(t, err)

		h := commands.NewConfirmProcessingCommandHandler(factory)
		confirmed, err := h.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.True(t, confirmed.ID().IsEqual(o.ID()))
		assert.Equal(t, order.WaitingForCourier, confirmed.CurrentStatus())
		uow.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		o := restoredOrder(t, buyerID, merchantID, order.ProcessingInMerchant)

		factory, uow, orderRepo, _ := deliveryMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewConfirmProcessingCommand(o.ID(), kernel.NewUUID())
		require.NoError(t, err)

		h := commands.NewConfirmProcessingCommandHandler(factory)
		_, err = h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.ProcessingInMerchant, o.CurrentStatus())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("absent order is forbidden", func(t *testing.T) {
		factory, uow, orderRepo, _ := deliveryMocks()
		uow.On("Begin", ctx).Return(nil).Once()

		orderID := kernel.NewUUID()
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()

		cmd, err := commands.NewConfirmProcessingCommand(orderID, merchantID)
		require.NoError(t, err)

		h := commands.NewConfirmProcessingCommandHandler(factory)
		_, err = h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("lost version race retries against fresh state", func(t *testing.T) {
		stale := restoredOrder(t, buyerID, merchantID, order.ProcessingInMerchant)
		fresh := restoredOrder(t, buyerID, merchantID, order.ProcessingInMerchant)

		factory, uow, orderRepo, _ := deliveryMocks()
		uow.On("Begin", ctx).Return(nil).Times(2)
		uow.On("Commit", ctx).Return(nil).Once()

		orderRepo.On("Get", mock.Anything, stale.ID()).Return(stale, nil).Once()
		orderRepo.On("Update", mock.Anything, stale).
			Return(errs.NewVersionIsInvalidError("order", stale.ID())).Once()
		orderRepo.On("Get", mock.Anything, stale.ID()).Return(fresh, nil).Once()
		orderRepo.On("Update", mock.Anything, fresh).Return(nil).Once()

		cmd, err := commands.NewConfirmProcessingCommand(stale.ID(), merchantID)
		require.NoError(t, err)

		h := commands.NewConfirmProcessingCommandHandler(factory)
		confirmed, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, order.WaitingForCourier, confirmed.CurrentStatus())
		uow.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})
}
