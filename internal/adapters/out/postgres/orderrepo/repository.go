package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	return nil
}

// Update persists a mutated order. The write is conditioned on the stored
// version being strictly older than the aggregate's: versions only grow, so
// a concurrent writer that committed first leaves the row at or past this
// aggregate's version and the update matches nothing. An explicit column
// map is used because the mutation may null the courier.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version < ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"courier_id":     dto.CourierID,
			"current_status": dto.CurrentStatus,
			"status_history": dto.StatusHistory,
			"version":        dto.Version,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}
