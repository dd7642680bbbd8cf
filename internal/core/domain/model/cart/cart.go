// Package cart holds the shopping cart entity: a per-user staging area of
// (product, quantity) picks. Carts carry no money and no state machine; they
// only feed order placement.
package cart

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("cart Item must be created via NewItem or RestoreItem")

// Item is one cart entry. The merchant id is denormalized from the product at
// insert time so a cart can be grouped per merchant without joining products.
type Item struct {
	id         kernel.UUID
	userID     kernel.UUID
	productID  kernel.UUID
	merchantID kernel.UUID
	quantity   kernel.Quantity

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewItem creates a cart entry with a strictly positive quantity.
func NewItem(id, userID, productID, merchantID kernel.UUID, quantity kernel.Quantity) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		productID.Validate(),
		merchantID.Validate(),
		quantity.Validate(),
	); err != nil {
		return nil, err
	}
	if quantity.IsZero() {
		return nil, errs.NewValueIsInvalidError("quantity must be greater than 0")
	}

	now := time.Now().UTC()
	return &Item{
		id:            id,
		userID:        userID,
		productID:     productID,
		merchantID:    merchantID,
		quantity:      quantity,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs a cart entry from persistence.
func RestoreItem(
	id, userID, productID, merchantID kernel.UUID,
	quantity kernel.Quantity,
	createdAt, updatedAt time.Time,
) (*Item, error) {
	item, err := NewItem(id, userID, productID, merchantID, quantity)
	if err != nil {
		return nil, err
	}
	item.createdAt = createdAt
	item.updatedAt = updatedAt
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the cart entry identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// UserID returns the cart owner.
func (i *Item) UserID() kernel.UUID { return i.userID }

// ProductID returns the picked product.
func (i *Item) ProductID() kernel.UUID { return i.productID }

// MerchantID returns the product's owning merchant.
func (i *Item) MerchantID() kernel.UUID { return i.merchantID }

// Quantity returns the picked amount.
func (i *Item) Quantity() kernel.Quantity { return i.quantity }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// SetQuantity replaces the picked amount; it must stay strictly positive.
func (i *Item) SetQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	if quantity.IsZero() {
		return errs.NewValueIsInvalidError("quantity must be greater than 0")
	}
	i.quantity = quantity
	i.updatedAt = time.Now().UTC()
	return nil
}

// IsOwnedBy reports whether the given user owns this cart entry.
func (i *Item) IsOwnedBy(userID kernel.UUID) bool {
	return i.userID.IsEqual(userID)
}
