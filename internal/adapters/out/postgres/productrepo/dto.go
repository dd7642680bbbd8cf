// Package productrepo provides data transfer objects and mapping functions
// for catalog persistence. Listings are soft-deleted so retired products
// stay resolvable for the orders that reference them.
package productrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO represents the database structure for persisting catalog
// listings. Stock is numeric because it is an arbitrary-precision integer.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID  uuid.UUID `gorm:"type:uuid;index"`
	Name        string    `gorm:"not null"`
	Description string
	Stock       decimal.Decimal `gorm:"type:numeric"`
	Price       decimal.Decimal `gorm:"type:numeric"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product entity to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID().Bytes(),
		MerchantID:  p.MerchantID().Bytes(),
		Name:        p.Name(),
		Description: p.Description(),
		Stock:       decimal.NewFromBigInt(p.Stock().BigInt(), 0),
		Price:       p.Price(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a product entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}
	stock, err := kernel.QuantityFromString(dto.Stock.String())
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id, merchantID,
		dto.Name, dto.Description,
		stock, dto.Price,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
