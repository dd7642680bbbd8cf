package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// CartItemView is one cart entry joined with its live listing. Entries whose
// product has since been retired still appear, with the listing fields
// empty, so the owner can remove them.
type CartItemView struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	MerchantID  string    `json:"merchant_id"`
	Quantity    string    `json:"quantity"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetCartQuery retrieves the given user's cart.
type GetCartQuery struct {
	userID kernel.UUID

	isConstructed bool
}

// NewGetCartQuery creates a query for a user's cart.
func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{userID: userID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetCartQueryIsNotConstructed
	}
	return nil
}

// GetCartQueryHandler reads a user's cart entries, oldest first, with the
// listing name and current unit price joined in for display.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart reads.
// Requires a GORM database connection for query execution.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the cart query.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) ([]CartItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.product_id,
			c.merchant_id,
			c.quantity,
			p.name,
			p.price,
			c.created_at
		FROM cart_items c
		LEFT JOIN products p ON p.id = c.product_id AND p.deleted_at IS NULL
		WHERE c.user_id = ?
		ORDER BY c.created_at
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]CartItemView, 0)
	for rows.Next() {
		var (
			id         uuid.UUID
			productID  uuid.UUID
			merchantID uuid.UUID
			quantity   decimal.Decimal
			name       *string
			price      decimal.NullDecimal
			createdAt  time.Time
		)

		if err = rows.Scan(&id, &productID, &merchantID, &quantity, &name, &price, &createdAt); err != nil {
			return nil, err
		}

		view := CartItemView{
			ID:         id.String(),
			ProductID:  productID.String(),
			MerchantID: merchantID.String(),
			Quantity:   quantity.String(),
			CreatedAt:  createdAt,
		}
		if name != nil {
			view.ProductName = *name
		}
		if price.Valid {
			view.UnitPrice = price.Decimal.String()
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
