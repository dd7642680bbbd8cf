// Package product holds the catalog entity the order workflow reads stock and
// price from. Lifecycle CRUD is thin; the interesting mutation, the stock
// decrement at order time, happens conditionally inside the order placement
// transaction.
package product

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through NewProduct or RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product is a catalog entry owned by exactly one merchant.
//
// Invariants:
//   - stock is a non-negative arbitrary-precision integer
//   - price is a non-negative decimal
type Product struct {
	id          kernel.UUID
	merchantID  kernel.UUID
	name        string
	description string
	stock       kernel.Quantity
	price       decimal.Decimal

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewProduct creates a Product for the given merchant.
func NewProduct(
	id, merchantID kernel.UUID,
	name, description string,
	stock kernel.Quantity,
	price decimal.Decimal,
) (*Product, error) {
	if err := errors.Join(
		id.Validate(),
		merchantID.Validate(),
		stock.Validate(),
		validateName(name),
		validatePrice(price),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Product{
		id:            id,
		merchantID:    merchantID,
		name:          name,
		description:   description,
		stock:         stock,
		price:         price,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreProduct reconstructs a Product from persistence.
func RestoreProduct(
	id, merchantID kernel.UUID,
	name, description string,
	stock kernel.Quantity,
	price decimal.Decimal,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	p, err := NewProduct(id, merchantID, name, description, stock, price)
	if err != nil {
		return nil, err
	}
	p.createdAt = createdAt
	p.updatedAt = updatedAt
	return p, nil
}

// Validate ensures the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// MerchantID returns the owning merchant's user id.
func (p *Product) MerchantID() kernel.UUID {
	return p.merchantID
}

// Name returns the display name.
func (p *Product) Name() string {
	return p.name
}

// Description returns the catalog description.
func (p *Product) Description() string {
	return p.description
}

// Stock returns the available quantity.
func (p *Product) Stock() kernel.Quantity {
	return p.stock
}

// Price returns the unit price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsOwnedBy reports whether the given user owns this product.
func (p *Product) IsOwnedBy(userID kernel.UUID) bool {
	return p.merchantID.IsEqual(userID)
}

// CanFulfill reports whether current stock covers the requested quantity.
// This is a pre-validation check only; order placement re-verifies the
// condition inside the commit transaction because stock races with
// concurrent orders.
func (p *Product) CanFulfill(quantity kernel.Quantity) bool {
	return !p.stock.LessThan(quantity)
}

// Update replaces the mutable catalog fields.
func (p *Product) Update(name, description string, stock kernel.Quantity, price decimal.Decimal) error {
	if err := errors.Join(stock.Validate(), validateName(name), validatePrice(price)); err != nil {
		return err
	}
	p.name = name
	p.description = description
	p.stock = stock
	p.price = price
	p.updatedAt = time.Now().UTC()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price")
	}
	return nil
}
