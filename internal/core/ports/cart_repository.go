package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for shopping cart entries.
type CartRepository interface {
	// Add persists a new cart entry.
	Add(ctx context.Context, item *cart.Item) error

	// Update persists a quantity change.
	Update(ctx context.Context, item *cart.Item) error

	// Get retrieves a cart entry by id.
	Get(ctx context.Context, id kernel.UUID) (*cart.Item, error)

	// GetAllByUser retrieves every cart entry of the given user.
	GetAllByUser(ctx context.Context, userID kernel.UUID) ([]*cart.Item, error)

	// GetByUserAndProduct retrieves the user's entry for one product. A cart
	// holds at most one entry per product; additions replace the quantity of
	// an existing entry instead of inserting a second one.
	GetByUserAndProduct(ctx context.Context, userID, productID kernel.UUID) (*cart.Item, error)

	// Delete removes a cart entry.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteByUserAndProducts removes the user's entries for the given
	// products. Placement calls it inside the commit transaction so purchased
	// picks leave the cart together with the order creation.
	DeleteByUserAndProducts(ctx context.Context, userID kernel.UUID, productIDs []kernel.UUID) error
}
