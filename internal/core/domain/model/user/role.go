package user

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the declared role of a user account. It gates the delivery
// endpoints: only couriers and admins may pick up or move orders.
// There is no merchant role; a merchant is any user who owns products.
type Role string

const (
	// RoleCustomer is the default role assigned on registration.
	RoleCustomer Role = "Customer"

	// RoleCourier marks accounts allowed to claim and move deliveries.
	RoleCourier Role = "Courier"

	// RoleAdmin has the courier privileges plus account administration.
	RoleAdmin Role = "Admin"
)

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleCourier, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// CanHandleDeliveries reports whether the role may call delivery operations.
func (r Role) CanHandleDeliveries() bool {
	return r == RoleCourier || r == RoleAdmin
}

// CanManageCatalog reports whether the role may create, edit or retire
// product listings. Couriers only move orders; they never sell.
func (r Role) CanManageCatalog() bool {
	return r == RoleCustomer || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
