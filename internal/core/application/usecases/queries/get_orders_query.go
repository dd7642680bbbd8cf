package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves every order the given user placed as a buyer.
type GetOrdersQuery struct {
	buyerID kernel.UUID

	isConstructed bool
}

// NewGetOrdersQuery creates a query for a buyer's order history.
func NewGetOrdersQuery(buyerID kernel.UUID) (GetOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	return GetOrdersQuery{buyerID: buyerID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetOrdersQueryIsNotConstructed
	}
	return nil
}

// GetOrdersQueryHandler reads a buyer's orders, newest first.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for buyer order history.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns full order views including line
// items.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, query.buyerID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows, true)
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
