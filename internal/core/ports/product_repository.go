package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for catalog products.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, p *product.Product) error

	// Update persists catalog field changes.
	Update(ctx context.Context, p *product.Product) error

	// Get retrieves a product by id. Soft-deleted products are not found.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetAllByIDs retrieves the products for the given ids, in no particular
	// order. Ids with no live product are simply absent from the result; the
	// caller decides whether that is an error.
	GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)

	// DecrementStock atomically subtracts quantity from the product's stock,
	// but only if the remaining stock would stay non-negative. Returns a
	// Forbidden error when stock is insufficient at write time. Must be
	// called inside the placement transaction so the condition is evaluated
	// against the transactional snapshot, not the pre-validation read.
	DecrementStock(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error

	// Delete soft-deletes the product.
	Delete(ctx context.Context, id kernel.UUID) error
}
