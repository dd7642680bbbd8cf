package user

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// Actor is the authenticated identity attached to a request: just the id and
// role extracted from the access token. Operations that need the full account
// (e.g. the balance) load the User entity from the store.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates an Actor after validating its parts.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// User is the account entity. It owns the monetary balance the order
// workflow debits and credits.
//
// Invariants:
//   - balance is never negative after any operation
//   - email is unique across accounts (enforced by the store)
//   - role is one of the known Role values
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         Role
	balance      decimal.Decimal

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewUser creates a User with a zero balance, as registration does.
func NewUser(id kernel.UUID, name, email, passwordHash string, role Role) (*User, error) {
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
		requireNonEmpty("name", name),
		requireNonEmpty("email", email),
		requireNonEmpty("passwordHash", passwordHash),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		id:            id,
		name:          name,
		email:         email,
		passwordHash:  passwordHash,
		role:          role,
		balance:       decimal.Zero,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreUser reconstructs a User from persistence.
func RestoreUser(
	id kernel.UUID,
	name, email, passwordHash string,
	role Role,
	balance decimal.Decimal,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	if balance.IsNegative() {
		return nil, errs.NewValueIsInvalidError("balance")
	}

	return &User{
		id:            id,
		name:          name,
		email:         email,
		passwordHash:  passwordHash,
		role:          role,
		balance:       balance,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the User was created through a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the account identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the unique login email.
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the stored password hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the account role.
func (u *User) Role() Role {
	return u.role
}

// Balance returns the current monetary balance.
func (u *User) Balance() decimal.Decimal {
	return u.balance
}

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Actor returns the identity-and-role view of the account.
func (u *User) Actor() Actor {
	return Actor{ID: u.id, Role: u.role}
}

// CanAfford reports whether the balance covers the given price.
func (u *User) CanAfford(price decimal.Decimal) bool {
	return u.balance.GreaterThanOrEqual(price)
}

// Debit subtracts amount from the balance. Fails with InsufficientFund if the
// balance cannot cover it. The store additionally re-checks the condition
// inside the commit transaction, because this in-memory check races with
// concurrent orders by the same buyer.
func (u *User) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount")
	}
	if u.balance.LessThan(amount) {
		return errs.NewInsufficientFundError(u.balance.String(), amount.String())
	}
	u.balance = u.balance.Sub(amount)
	u.updatedAt = time.Now().UTC()
	return nil
}

// Credit adds amount to the balance. Used for the merchant settlement when a
// delivery reaches its destination.
func (u *User) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount")
	}
	u.balance = u.balance.Add(amount)
	u.updatedAt = time.Now().UTC()
	return nil
}

func requireNonEmpty(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
