// Package cartrepo provides data transfer objects and mapping functions for
// shopping cart persistence.
package cartrepo

import (
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemDTO represents the database structure for persisting cart entries.
// The merchant id is denormalized from the product at add time.
type CartItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;index"`
	MerchantID uuid.UUID       `gorm:"type:uuid"`
	Quantity   decimal.Decimal `gorm:"type:numeric"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for cart entries.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart entry to its database representation.
func fromDomain(item *cart.Item) CartItemDTO {
	return CartItemDTO{
		ID:         item.ID().Bytes(),
		UserID:     item.UserID().Bytes(),
		ProductID:  item.ProductID().Bytes(),
		MerchantID: item.MerchantID().Bytes(),
		Quantity:   decimal.NewFromBigInt(item.Quantity().BigInt(), 0),
		CreatedAt:  item.CreatedAt(),
		UpdatedAt:  item.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a cart entry.
func toDomain(dto CartItemDTO) (*cart.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.QuantityFromString(dto.Quantity.String())
	if err != nil {
		return nil, err
	}

	return cart.RestoreItem(id, userID, productID, merchantID, quantity, dto.CreatedAt, dto.UpdatedAt)
}
