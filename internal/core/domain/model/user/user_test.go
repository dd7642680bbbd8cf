package user_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoredUser(t *testing.T, role user.Role, balance int64) *user.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := user.RestoreUser(
		kernel.NewUUID(), "alice", "alice@example.com", "$2a$10$hash",
		role, decimal.NewFromInt(balance), now, now,
	)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("should create customer with zero balance", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "bob", "bob@example.com", "hash", user.RoleCustomer)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.Balance().IsZero())
		assert.Equal(t, user.RoleCustomer, u.Role())
	})

	t.Run("should fail with invalid role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "bob", "bob@example.com", "hash", user.Role("Merchant"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should fail with empty email", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "bob", "", "hash", user.RoleCustomer)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("should fail with zero UUID", func(t *testing.T) {
		var id kernel.UUID
		_, err := user.NewUser(id, "bob", "bob@example.com", "hash", user.RoleCustomer)

		require.Error(t, err)
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("should reject negative balance", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := user.RestoreUser(
			kernel.NewUUID(), "alice", "alice@example.com", "hash",
			user.RoleCustomer, decimal.NewFromInt(-1), now, now,
		)

		require.Error(t, err)
	})
}

func TestUser_Validate(t *testing.T) {
	t.Run("nil user is invalid", func(t *testing.T) {
		var u *user.User

		assert.Equal(t, user.ErrUserIsNotConstructed, u.Validate())
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		u := &user.User{}

		assert.Equal(t, user.ErrUserIsNotConstructed, u.Validate())
	})
}

func TestUser_Debit(t *testing.T) {
	t.Run("should subtract within balance", func(t *testing.T) {
		u := restoredUser(t, user.RoleCustomer, 2000)

		err := u.Debit(decimal.NewFromInt(2000))

		require.NoError(t, err)
		assert.True(t, u.Balance().IsZero())
	})

	t.Run("should fail with InsufficientFund when balance is short", func(t *testing.T) {
		u := restoredUser(t, user.RoleCustomer, 1000)

		err := u.Debit(decimal.NewFromInt(2000))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInsufficientFund))
		assert.Equal(t, "1000", u.Balance().String())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		u := restoredUser(t, user.RoleCustomer, 1000)

		require.Error(t, u.Debit(decimal.NewFromInt(-5)))
	})
}

func TestUser_Credit(t *testing.T) {
	u := restoredUser(t, user.RoleCustomer, 100)

	require.NoError(t, u.Credit(decimal.RequireFromString("99.95")))

	assert.Equal(t, "199.95", u.Balance().String())
}

func TestRole_CanHandleDeliveries(t *testing.T) {
	assert.False(t, user.RoleCustomer.CanHandleDeliveries())
	assert.True(t, user.RoleCourier.CanHandleDeliveries())
	assert.True(t, user.RoleAdmin.CanHandleDeliveries())
}
