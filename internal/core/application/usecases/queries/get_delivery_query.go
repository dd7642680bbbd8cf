package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one delivery-facing order view for a courier.
type GetDeliveryQuery struct {
	orderID kernel.UUID
	actor   user.Actor

	isConstructed bool
}

// NewGetDeliveryQuery creates a query for a single delivery view.
func NewGetDeliveryQuery(orderID kernel.UUID, actor user.Actor) (GetDeliveryQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.ID.Validate(), actor.Role.Validate()); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{orderID: orderID, actor: actor, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetDeliveryQueryIsNotConstructed
	}
	return nil
}

// GetDeliveryQueryHandler reads one order under the courier visibility rule:
// an order is visible when it is still unclaimed or when this courier
// carries it. Absent and invisible orders are both Forbidden.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single delivery reads.
// Requires a GORM database connection for query execution.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query and returns a view without line items.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}
	if !query.actor.Role.CanHandleDeliveries() {
		return OrderView{}, errs.NewForbiddenError()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders
		WHERE id = ?
	`, query.orderID.Bytes()).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderView{}, err
		}
		return OrderView{}, errs.NewForbiddenError()
	}

	view, err := scanOrderView(rows, false)
	if err != nil {
		return OrderView{}, err
	}

	unclaimed := len(view.Status) > 0 &&
		view.Status[len(view.Status)-1].Type == string(order.WaitingForCourier)
	carried := view.CourierID != nil && *view.CourierID == query.actor.ID.String()
	if !unclaimed && !carried {
		return OrderView{}, errs.NewForbiddenError()
	}

	return view, nil
}
