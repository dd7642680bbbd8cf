package productrepo

import (
	"context"
	"errors"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	return nil
}

// Update saves catalog field changes. An explicit column map is used so an
// emptied description still persists.
func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":        dto.Name,
			"description": dto.Description,
			"stock":       dto.Stock,
			"price":       dto.Price,
			"updated_at":  dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", p.ID().String())
	}

	return nil
}

// Get retrieves a live product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// GetAllByIDs retrieves the live products for the given ids. Ids that do
// not resolve are simply absent from the result.
func (r *GormProductRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, pgerr.Translate(err)
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// DecrementStock subtracts quantity from the product's stock with the
// non-negativity check evaluated by the database, inside the caller's
// transaction. A row that cannot cover the quantity is left untouched and
// the operation fails with Forbidden.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id kernel.UUID, quantity kernel.Quantity) error {
	if err := errors.Join(id.Validate(), quantity.Validate()); err != nil {
		return err
	}

	amount := decimal.NewFromBigInt(quantity.BigInt(), 0)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND stock >= ?", id.Bytes(), amount).
		Update("stock", gorm.Expr("stock - ?", amount))
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewForbiddenError()
	}

	return nil
}

// Delete soft-deletes the product.
func (r *GormProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ProductDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}

	return nil
}
