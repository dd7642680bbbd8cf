package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order on behalf of its buyer.
type GetOrderQuery struct {
	orderID kernel.UUID
	actorID kernel.UUID

	isConstructed bool
}

// NewGetOrderQuery creates a query for a single buyer-scoped order.
func NewGetOrderQuery(orderID, actorID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actorID: actorID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetOrderQueryIsNotConstructed
	}
	return nil
}

// GetOrderQueryHandler reads a single order for its buyer. An order that
// does not exist and an order that belongs to someone else are presented
// identically as Forbidden, so the endpoint does not reveal which ids exist.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the full order view.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
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

	view, err := scanOrderView(rows, true)
	if err != nil {
		return OrderView{}, err
	}

	if view.UserID != query.actorID.String() {
		return OrderView{}, errs.NewForbiddenError()
	}

	return view, nil
}
