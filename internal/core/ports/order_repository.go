package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. Placement calls it inside the
	// atomic commit transaction, never standalone.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a state machine mutation. The write is conditioned on
	// the version the aggregate was loaded with; if the row has moved on, the
	// update fails with a VersionIsInvalid error and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
