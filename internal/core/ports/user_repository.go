package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

// UserRepository defines the persistence contract for user accounts and their
// balances.
type UserRepository interface {
	// Add persists a new account. Fails if the email is already taken.
	Add(ctx context.Context, u *user.User) error

	// Get retrieves an account by id.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves an account by its unique email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// DebitBalance atomically subtracts amount from the user's balance, but
	// only if the balance covers it. Returns an InsufficientFund error when
	// it does not at write time. Placement calls this inside the commit
	// transaction so concurrent orders by the same buyer cannot overdraw.
	DebitBalance(ctx context.Context, id kernel.UUID, amount decimal.Decimal) error

	// CreditBalance atomically adds amount to the user's balance.
	CreditBalance(ctx context.Context, id kernel.UUID, amount decimal.Decimal) error
}
