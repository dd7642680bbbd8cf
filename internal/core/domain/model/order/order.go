package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate representing a buyer's purchase of one merchant's
// products. It is created exactly once by order placement and mutated only by
// the delivery state machine.
//
// Invariants:
//   - every line item belongs to the order's single merchant
//   - the buyer is never the merchant
//   - price and line items are immutable after creation
//   - the status history is append-only and non-empty; its last entry is the
//     current state
//   - a courier is set only while the order is in transit
//
// Every state machine precondition failure is reported as the same
// undifferentiated Forbidden error; the aggregate does not leak which check
// failed.
type Order struct {
	id         kernel.UUID
	buyerID    kernel.UUID
	merchantID kernel.UUID
	courierID  *kernel.UUID
	price      decimal.Decimal
	items      []LineItem
	history    StatusHistory

	// version guards the read-modify-write cycle of the state machine.
	// The store refuses an update whose version no longer matches the row.
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an Order in the initial ProcessingInMerchant state with no
// courier assigned. The price is the already-computed exact decimal total;
// placement computes it from the line items before constructing the aggregate.
func NewOrder(
	id, buyerID, merchantID kernel.UUID,
	price decimal.Decimal,
	items []LineItem,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		merchantID.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("line items")
	}
	if price.IsNegative() {
		return nil, errs.NewValueIsInvalidError("price")
	}
	if buyerID.IsEqual(merchantID) {
		return nil, errs.NewForbiddenError()
	}

	history, err := NewStatusHistory(ProcessingInMerchant)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:            id,
		buyerID:       buyerID,
		merchantID:    merchantID,
		price:         price,
		items:         append([]LineItem(nil), items...),
		history:       history,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence.
func RestoreOrder(
	id, buyerID, merchantID kernel.UUID,
	courierID *kernel.UUID,
	price decimal.Decimal,
	items []LineItem,
	history StatusHistory,
	version int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		merchantID.Validate(),
	); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		buyerID:       buyerID,
		merchantID:    merchantID,
		courierID:     courierID,
		price:         price,
		items:         append([]LineItem(nil), items...),
		history:       history,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the purchasing user's id.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// MerchantID returns the selling user's id.
func (o *Order) MerchantID() kernel.UUID {
	return o.merchantID
}

// CourierID returns the courier of record, or nil while unassigned.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Price returns the immutable order total.
func (o *Order) Price() decimal.Decimal {
	return o.price
}

// LineItems returns a copy of the ordered items.
func (o *Order) LineItems() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// History returns the status history.
func (o *Order) History() StatusHistory {
	return o.history
}

// CurrentStatus returns the last status history entry.
func (o *Order) CurrentStatus() Status {
	return o.history.Current()
}

// Version returns the optimistic concurrency version.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ConfirmProcessing is the merchant's handoff: it moves the order from
// ProcessingInMerchant to WaitingForCourier so couriers can see and claim it.
//
// The gate is ownership only: any authenticated identity whose id matches the
// order's merchant may confirm, regardless of declared role. There is no
// merchant role in the system, so ownership is the only possible check.
func (o *Order) ConfirmProcessing(actorID kernel.UUID) error {
	if !o.merchantID.IsEqual(actorID) {
		return errs.NewForbiddenError()
	}
	if o.CurrentStatus() != ProcessingInMerchant {
		return errs.NewForbiddenError()
	}

	o.history = o.history.push(WaitingForCourier)
	o.touch()
	return nil
}

// Pickup claims the order for a courier. Legal only when the actor's role may
// handle deliveries, the order is waiting for a courier, and no courier is
// set yet. On success the actor becomes the courier of record.
func (o *Order) Pickup(actor user.Actor) error {
	if !actor.Role.CanHandleDeliveries() {
		return errs.NewForbiddenError()
	}
	if o.CurrentStatus() != WaitingForCourier {
		return errs.NewForbiddenError()
	}
	if o.courierID != nil {
		return errs.NewForbiddenError()
	}

	courierID := actor.ID
	o.courierID = &courierID
	o.history = o.history.push(PickedUpByCourier)
	o.touch()
	return nil
}

// ChangeDelivery applies a courier-requested transition per AllowTransition.
//
// Side effects by requested status:
//   - ArrivedInDestination: clears the courier and reports creditsMerchant =
//     true; the caller must credit the merchant's balance by the order price
//     in the same transaction that persists this status push.
//   - ArrivedInMerchant: clears the courier and auto-chains a
//     ProcessingInMerchant entry in the same update, restarting the loop.
//   - SendBackToMerchant: keeps the courier, who still holds the package.
func (o *Order) ChangeDelivery(actor user.Actor, requested Status) (creditsMerchant bool, err error) {
	if err := requested.Validate(); err != nil {
		return false, errs.NewForbiddenError()
	}

	isCourierOfRecord := o.courierID != nil && o.courierID.IsEqual(actor.ID)
	if !AllowTransition(o.CurrentStatus(), requested, actor.Role, isCourierOfRecord) {
		return false, errs.NewForbiddenError()
	}

	o.history = o.history.push(requested)

	switch requested {
	case ArrivedInDestination:
		o.courierID = nil
		creditsMerchant = true
	case ArrivedInMerchant:
		o.history = o.history.push(ProcessingInMerchant)
		o.courierID = nil
	}

	o.touch()
	return creditsMerchant, nil
}

// VisibleToCourier reports whether a courier-facing view may include this
// order: either it is unclaimed and waiting for a courier, or the given
// courier is the courier of record.
func (o *Order) VisibleToCourier(courierID kernel.UUID) bool {
	if o.CurrentStatus() == WaitingForCourier {
		return true
	}
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

func (o *Order) touch() {
	o.version++
	o.updatedAt = time.Now().UTC()
}
