package order

import (
	"marketplace/internal/core/domain/model/user"
)

// AllowTransition is the pure decision function for courier-driven delivery
// transitions (PATCH on a delivery). It answers whether an actor may move an
// order from current to requested, given the actor's role and whether the
// actor is the courier of record on the order.
//
// The full table; every pair not listed is denied:
//
//	PickedUpByCourier  -> ArrivedInDestination  (courier of record)
//	PickedUpByCourier  -> SendBackToMerchant    (courier of record)
//	SendBackToMerchant -> ArrivedInMerchant     (courier of record)
//
// Role must be Courier or Admin in all cases. Merchant confirmation
// (ProcessingInMerchant -> WaitingForCourier) and pickup
// (WaitingForCourier -> PickedUpByCourier) are separate operations with their
// own gates and are not granted here.
//
// The function is storage-free so the table can be tested exhaustively over
// the whole status cross product.
func AllowTransition(current, requested Status, role user.Role, isCourierOfRecord bool) bool {
	if !role.CanHandleDeliveries() {
		return false
	}
	if !isCourierOfRecord {
		return false
	}

	switch current {
	case PickedUpByCourier:
		return requested == ArrivedInDestination || requested == SendBackToMerchant
	case SendBackToMerchant:
		return requested == ArrivedInMerchant
	default:
		return false
	}
}
