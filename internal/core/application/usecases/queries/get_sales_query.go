package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

var ErrGetSalesQueryIsNotConstructed = errors.New(
	"GetSalesQuery must be created via NewGetSalesQuery constructor",
)

// GetSalesQuery retrieves every order placed against the given merchant.
type GetSalesQuery struct {
	merchantID kernel.UUID

	isConstructed bool
}

// NewGetSalesQuery creates a query for a merchant's incoming orders.
func NewGetSalesQuery(merchantID kernel.UUID) (GetSalesQuery, error) {
	if err := merchantID.Validate(); err != nil {
		return GetSalesQuery{}, err
	}
	return GetSalesQuery{merchantID: merchantID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSalesQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetSalesQueryIsNotConstructed
	}
	return nil
}

// GetSalesQueryHandler reads the orders a merchant has to fulfil, newest
// first.
type GetSalesQueryHandler struct {
	db *gorm.DB
}

// NewGetSalesQueryHandler creates a handler for merchant sales reads.
// Requires a GORM database connection for query execution.
func NewGetSalesQueryHandler(db *gorm.DB) GetSalesQueryHandler {
	return GetSalesQueryHandler{db: db}
}

// Handle executes the query and returns full order views including line
// items.
func (h GetSalesQueryHandler) Handle(ctx context.Context, query GetSalesQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders
		WHERE merchant_id = ?
		ORDER BY created_at DESC
	`, query.merchantID.Bytes()).Rows()
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
