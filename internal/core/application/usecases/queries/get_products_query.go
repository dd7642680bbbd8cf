package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetProductsQueryIsNotConstructed = errors.New(
	"GetProductsQuery must be created via NewGetProductsQuery constructor",
)

// ProductView is a catalog listing projected for transport. Stock is
// decimal-string encoded because it is arbitrary precision.
type ProductView struct {
	ID          string    `json:"id"`
	MerchantID  string    `json:"merchant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stock       string    `json:"stock"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const productViewColumns = `
	id,
	merchant_id,
	name,
	description,
	stock,
	price,
	created_at,
	updated_at
`

// GetProductsQuery retrieves the public catalog. Soft-deleted listings are
// excluded.
type GetProductsQuery struct {
	isConstructed bool
}

// NewGetProductsQuery creates a query for the full catalog.
func NewGetProductsQuery() GetProductsQuery {
	return GetProductsQuery{isConstructed: true}
}

// Validate ensures the query was created through the constructor.
func (q GetProductsQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetProductsQueryIsNotConstructed
	}
	return nil
}

// GetProductsQueryHandler reads the live catalog, newest listings first.
type GetProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetProductsQueryHandler creates a handler for catalog reads.
// Requires a GORM database connection for query execution.
func NewGetProductsQueryHandler(db *gorm.DB) GetProductsQueryHandler {
	return GetProductsQueryHandler{db: db}
}

// Handle executes the catalog query.
func (h GetProductsQueryHandler) Handle(ctx context.Context, query GetProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT ` + productViewColumns + `
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ProductView, 0)
	for rows.Next() {
		view, scanErr := scanProductView(rows)
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

func scanProductView(rows interface {
	Scan(dest ...any) error
}) (ProductView, error) {
	var (
		id         uuid.UUID
		merchantID uuid.UUID
		name       string
		desc       string
		stock      decimal.Decimal
		price      decimal.Decimal
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := rows.Scan(
		&id,
		&merchantID,
		&name,
		&desc,
		&stock,
		&price,
		&createdAt,
		&updatedAt,
	); err != nil {
		return ProductView{}, err
	}

	return ProductView{
		ID:          id.String(),
		MerchantID:  merchantID.String(),
		Name:        name,
		Description: desc,
		Stock:       stock.String(),
		Price:       price.String(),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
