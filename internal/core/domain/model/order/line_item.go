package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// LineItem is one (product, quantity) pair of an order. Line items are fixed
// at creation and never change afterwards.
type LineItem struct {
	productID kernel.UUID
	quantity  kernel.Quantity
}

// NewLineItem creates a line item. Quantity must be strictly positive.
func NewLineItem(productID kernel.UUID, quantity kernel.Quantity) (LineItem, error) {
	if err := errors.Join(productID.Validate(), quantity.Validate()); err != nil {
		return LineItem{}, err
	}
	if quantity.IsZero() {
		return LineItem{}, errs.NewValueIsInvalidError("quantity must be greater than 0")
	}
	return LineItem{productID: productID, quantity: quantity}, nil
}

// ProductID returns the referenced product.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Quantity returns the ordered amount.
func (li LineItem) Quantity() kernel.Quantity {
	return li.quantity
}
