package cartrepo

import (
	"context"
	"errors"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Add saves a new cart entry.
func (r *GormCartRepository) Add(ctx context.Context, item *cart.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	return nil
}

// Update persists a quantity change.
func (r *GormCartRepository) Update(ctx context.Context, item *cart.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&CartItemDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"quantity":   dto.Quantity,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart item", item.ID().String())
	}

	return nil
}

// Get retrieves a cart entry by ID.
func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart item", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// GetAllByUser retrieves every cart entry of the given user.
func (r *GormCartRepository) GetAllByUser(ctx context.Context, userID kernel.UUID) ([]*cart.Item, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "user_id = ?", userID.Bytes()).Error; err != nil {
		return nil, pgerr.Translate(err)
	}

	items := make([]*cart.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// GetByUserAndProduct retrieves the user's entry for one product.
func (r *GormCartRepository) GetByUserAndProduct(ctx context.Context, userID, productID kernel.UUID) (*cart.Item, error) {
	if err := errors.Join(userID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}

	var dto CartItemDTO
	err := r.db.WithContext(ctx).
		First(&dto, "user_id = ? AND product_id = ?", userID.Bytes(), productID.Bytes()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart item", productID.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// Delete removes a cart entry.
func (r *GormCartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&CartItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart item", id.String())
	}

	return nil
}

// DeleteByUserAndProducts removes the user's entries for the given
// products. Removing nothing is not an error; the buyer may never have
// carted what they ordered.
func (r *GormCartRepository) DeleteByUserAndProducts(ctx context.Context, userID kernel.UUID, productIDs []kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	err := r.db.WithContext(ctx).
		Delete(&CartItemDTO{}, "user_id = ? AND product_id IN ?", userID.Bytes(), raw).
		Error
	return pgerr.Translate(err)
}
