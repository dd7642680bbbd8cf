package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

// GetProductQuery retrieves one live catalog listing.
type GetProductQuery struct {
	productID kernel.UUID

	isConstructed bool
}

// NewGetProductQuery creates a query for a single listing.
func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, err
	}
	return GetProductQuery{productID: productID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProductQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetProductQueryIsNotConstructed
	}
	return nil
}

// GetProductQueryHandler reads one live listing; soft-deleted and unknown
// ids are NotFound.
type GetProductQueryHandler struct {
	db *gorm.DB
}

// NewGetProductQueryHandler creates a handler for single listing reads.
// Requires a GORM database connection for query execution.
func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// Handle executes the query.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductView, error) {
	if err := query.Validate(); err != nil {
		return ProductView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+productViewColumns+`
		FROM products
		WHERE id = ? AND deleted_at IS NULL
	`, query.productID.Bytes()).Rows()
	if err != nil {
		return ProductView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ProductView{}, err
		}
		return ProductView{}, errs.NewObjectNotFoundError("product", query.productID)
	}

	return scanProductView(rows)
}
