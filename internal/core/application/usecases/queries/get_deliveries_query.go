package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery retrieves the orders visible to a courier: everything
// still waiting for a courier plus everything this courier carries.
type GetDeliveriesQuery struct {
	actor user.Actor

	isConstructed bool
}

// NewGetDeliveriesQuery creates a query for a courier's delivery board.
func NewGetDeliveriesQuery(actor user.Actor) (GetDeliveriesQuery, error) {
	if err := errors.Join(actor.ID.Validate(), actor.Role.Validate()); err != nil {
		return GetDeliveriesQuery{}, err
	}
	return GetDeliveriesQuery{actor: actor, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetDeliveriesQueryIsNotConstructed
	}
	return nil
}

// GetDeliveriesQueryHandler reads the delivery board. Views omit line items;
// couriers see parties, price and status but not what is inside the parcel.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery board reads.
// Requires a GORM database connection for query execution.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Non-courier roles are rejected with Forbidden.
func (h GetDeliveriesQueryHandler) Handle(ctx context.Context, query GetDeliveriesQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.actor.Role.CanHandleDeliveries() {
		return nil, errs.NewForbiddenError()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders
		WHERE current_status = ? OR courier_id = ?
		ORDER BY created_at DESC
	`, string(order.WaitingForCourier), query.actor.ID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
