package kernel

import (
	"fmt"
	"math/big"

	"marketplace/internal/pkg/errs"
)

// Quantity is a value object for arbitrary-precision non-negative integer
// amounts: product stock and order line item counts. It wraps math/big.Int
// and is immutable; arithmetic methods return new values.
//
// The zero value of Quantity is invalid and must be constructed via
// NewQuantity, QuantityFromInt64, or QuantityFromString.
type Quantity struct {
	value *big.Int
}

// NewQuantity creates a Quantity from a big.Int. The input is copied so later
// mutation of v cannot affect the quantity. Returns an error for nil or
// negative values.
func NewQuantity(v *big.Int) (Quantity, error) {
	if v == nil {
		return Quantity{}, errs.NewValueIsRequiredError("quantity")
	}
	if v.Sign() < 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is negative", v.String()))
	}
	return Quantity{value: new(big.Int).Set(v)}, nil
}

// QuantityFromInt64 creates a Quantity from an int64.
func QuantityFromInt64(v int64) (Quantity, error) {
	return NewQuantity(big.NewInt(v))
}

// QuantityFromString parses a Quantity from its decimal string representation.
// This is the form the wire and the store use, since quantities may exceed
// any machine integer.
func QuantityFromString(s string) (Quantity, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%q is not a base-10 integer", s))
	}
	return NewQuantity(v)
}

// Validate checks if the Quantity was properly constructed.
func (q Quantity) Validate() error {
	if q.value == nil {
		return errs.NewValueIsRequiredError("quantity must be created via NewQuantity, QuantityFromInt64, or QuantityFromString")
	}
	return nil
}

// String returns the decimal string representation.
func (q Quantity) String() string {
	if q.value == nil {
		return "0"
	}
	return q.value.String()
}

// BigInt returns a copy of the underlying integer.
func (q Quantity) BigInt() *big.Int {
	if q.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(q.value)
}

// IsZero reports whether the quantity equals zero.
func (q Quantity) IsZero() bool {
	return q.value == nil || q.value.Sign() == 0
}

// IsEqual compares two quantities for numeric equality.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.BigInt().Cmp(other.BigInt()) == 0
}

// LessThan reports whether q < other.
func (q Quantity) LessThan(other Quantity) bool {
	return q.BigInt().Cmp(other.BigInt()) < 0
}

// Sub returns q − other. Returns an error if the result would be negative,
// preserving the non-negativity invariant of stock.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	diff := new(big.Int).Sub(q.BigInt(), other.BigInt())
	return NewQuantity(diff)
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) Quantity {
	sum := new(big.Int).Add(q.BigInt(), other.BigInt())
	return Quantity{value: sum}
}
