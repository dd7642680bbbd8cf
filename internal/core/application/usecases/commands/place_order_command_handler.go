package commands

import (
	"context"
	"math/big"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PlaceOrderCommandHandler implements order placement: it validates the
// requested picks against live catalog state, computes the exact total, and
// commits order creation, balance debit, stock decrement and cart cleanup as
// one serializable transaction.
//
// Validation runs in a fixed ladder, each rung a hard failure before any
// write: product resolution, single-merchant check, own-product check,
// quantity sign, total computation, balance coverage. Stock coverage is only
// ever decided inside the transaction, because pre-validated stock may be
// gone by commit time.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	placed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInsufficientFund):
//	    // buyer cannot cover the total
//	case err != nil:
//	    // other placement failure
//	default:
//	    fmt.Printf("order %s placed at %s", placed.ID(), placed.Price())
//	}
type PlaceOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires a PlacementUoWFactory for serializable transactional persistence.
func NewPlaceOrderCommandHandler(uowFactory PlacementUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the placement command and returns the created order.
// A serialization abort rolls everything back and the whole placement is
// restarted from scratch, so a retried attempt re-reads every price, stock
// and balance it depends on.
func (h PlaceOrderCommandHandler) Handle(
	ctx context.Context,
	cmd PlaceOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var placed *order.Order
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		var attemptErr error
		placed, attemptErr = h.place(ctx, cmd)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	return placed, nil
}

func (h PlaceOrderCommandHandler) place(
	ctx context.Context,
	cmd PlaceOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.BeginSerializable(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items := cmd.Items()
	products, err := h.resolveProducts(ctx, uow, items)
	if err != nil {
		return nil, err
	}

	merchantID, err := singleMerchant(items, products)
	if err != nil {
		return nil, err
	}

	if merchantID.IsEqual(cmd.BuyerID()) {
		return nil, errs.NewForbiddenError()
	}

	lineItems, total, err := buildLineItems(items, products)
	if err != nil {
		return nil, err
	}

	buyer, err := uow.UserRepository().Get(ctx, cmd.BuyerID())
	if err != nil {
		return nil, err
	}
	if !buyer.CanAfford(total) {
		return nil, errs.NewInsufficientFundError(buyer.Balance().String(), total.String())
	}

	placed, err := order.NewOrder(cmd.OrderID(), cmd.BuyerID(), merchantID, total, lineItems)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.UserRepository().DebitBalance(ctx, cmd.BuyerID(), total); err != nil {
		return nil, err
	}

	productIDs := make([]kernel.UUID, 0, len(lineItems))
	for _, li := range lineItems {
		if err = uow.ProductRepository().DecrementStock(ctx, li.ProductID(), li.Quantity()); err != nil {
			return nil, err
		}
		productIDs = append(productIDs, li.ProductID())
	}

	if err = uow.CartRepository().DeleteByUserAndProducts(ctx, cmd.BuyerID(), productIDs); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

// resolveProducts loads every referenced product and fails with the first
// missing id. Soft-deleted products count as missing.
func (h PlaceOrderCommandHandler) resolveProducts(
	ctx context.Context,
	uow PlacementUoW,
	items []PlaceOrderItem,
) (map[kernel.UUID]*product.Product, error) {
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID())
	}

	found, err := uow.ProductRepository().GetAllByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*product.Product, len(found))
	for _, p := range found {
		byID[p.ID()] = p
	}

	for _, item := range items {
		if _, ok := byID[item.ProductID()]; !ok {
			return nil, errs.NewObjectNotFoundError("product", item.ProductID())
		}
	}

	return byID, nil
}

// singleMerchant verifies every pick belongs to one merchant and returns
// that merchant's id.
func singleMerchant(
	items []PlaceOrderItem,
	products map[kernel.UUID]*product.Product,
) (kernel.UUID, error) {
	merchantID := products[items[0].ProductID()].MerchantID()
	for _, item := range items[1:] {
		other := products[item.ProductID()].MerchantID()
		if !merchantID.IsEqual(other) {
			return kernel.UUID{}, errs.NewMismatchMerchantError(merchantID, other)
		}
	}
	return merchantID, nil
}

// buildLineItems converts picks into order line items and accumulates the
// exact decimal total. Quantities must be strictly positive here; zero and
// negative amounts are rejected undifferentiated.
func buildLineItems(
	items []PlaceOrderItem,
	products map[kernel.UUID]*product.Product,
) ([]order.LineItem, decimal.Decimal, error) {
	lineItems := make([]order.LineItem, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		qty := item.Quantity()
		if qty.Sign() <= 0 {
			return nil, decimal.Zero, errs.NewForbiddenError()
		}

		quantity, err := kernel.NewQuantity(qty)
		if err != nil {
			return nil, decimal.Zero, err
		}

		lineItem, err := order.NewLineItem(item.ProductID(), quantity)
		if err != nil {
			return nil, decimal.Zero, err
		}
		lineItems = append(lineItems, lineItem)

		price := products[item.ProductID()].Price()
		total = total.Add(price.Mul(decimal.NewFromBigInt(new(big.Int).Set(qty), 0)))
	}

	return lineItems, total, nil
}
