package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrGetSaleQueryIsNotConstructed = errors.New(
	"GetSaleQuery must be created via NewGetSaleQuery constructor",
)

// GetSaleQuery retrieves one order on behalf of its merchant.
type GetSaleQuery struct {
	orderID kernel.UUID
	actorID kernel.UUID

	isConstructed bool
}

// NewGetSaleQuery creates a query for a single merchant-scoped order.
func NewGetSaleQuery(orderID, actorID kernel.UUID) (GetSaleQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return GetSaleQuery{}, err
	}
	return GetSaleQuery{orderID: orderID, actorID: actorID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSaleQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetSaleQueryIsNotConstructed
	}
	return nil
}

// GetSaleQueryHandler reads a single order for its merchant, with the same
// absent-or-invisible Forbidden presentation as the buyer-side read.
type GetSaleQueryHandler struct {
	db *gorm.DB
}

// NewGetSaleQueryHandler creates a handler for single sale reads.
// Requires a GORM database connection for query execution.
func NewGetSaleQueryHandler(db *gorm.DB) GetSaleQueryHandler {
	return GetSaleQueryHandler{db: db}
}

// Handle executes the query and returns the full order view.
func (h GetSaleQueryHandler) Handle(ctx context.Context, query GetSaleQuery) (OrderView, error) {
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

	if view.MerchantID != query.actorID.String() {
		return OrderView{}, errs.NewForbiddenError()
	}

	return view, nil
}
