package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is one step in the order/delivery lifecycle. Statuses are never
// overwritten: each applied transition appends a new entry to the order's
// status history, and the last entry is the authoritative current state.
//
// Causal order of the lifecycle (not strictly linear):
//
//	WaitingForMerchantConfirmation
//	  -> ProcessingInMerchant
//	  -> WaitingForCourier
//	  -> PickedUpByCourier
//	  -> ArrivedInDestination | SendBackToMerchant
//	                            -> ArrivedInMerchant -> ProcessingInMerchant (loop)
//	  -> ArrivedInDestinationConfirmed
//
// Orders are created directly in ProcessingInMerchant;
// WaitingForMerchantConfirmation exists in the vocabulary but no transition
// produces or leaves it.
type Status string

const (
	WaitingForMerchantConfirmation Status = "WaitingForMerchantConfirmation"
	ProcessingInMerchant           Status = "ProcessingInMerchant"
	WaitingForCourier              Status = "WaitingForCourier"
	PickedUpByCourier              Status = "PickedUpByCourier"
	ArrivedInDestination           Status = "ArrivedInDestination"
	SendBackToMerchant             Status = "SendBackToMerchant"
	ArrivedInMerchant              Status = "ArrivedInMerchant"
	ArrivedInDestinationConfirmed  Status = "ArrivedInDestinationConfirmed"
)

// AllStatuses lists every defined status, in causal order. Used by the
// exhaustive transition tests and by validation.
func AllStatuses() []Status {
	return []Status{
		WaitingForMerchantConfirmation,
		ProcessingInMerchant,
		WaitingForCourier,
		PickedUpByCourier,
		ArrivedInDestination,
		SendBackToMerchant,
		ArrivedInMerchant,
		ArrivedInDestinationConfirmed,
	}
}

// ParseStatus converts a wire status tag into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	for _, known := range AllStatuses() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

// InTransit reports whether the status belongs to the subset of states during
// which a courier may be assigned to the order.
func (s Status) InTransit() bool {
	return s == PickedUpByCourier || s == SendBackToMerchant
}

func (s Status) String() string {
	return string(s)
}
