package userrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new account. A taken email surfaces as an invalid value, not
// as a raw constraint error.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("email", err)
		}
		return pgerr.Translate(err)
	}

	return nil
}

// Get retrieves an account by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// GetByEmail retrieves an account by its unique email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", email)
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// DebitBalance subtracts amount from the account's balance with the
// coverage check evaluated by the database, inside the caller's
// transaction. An uncovered debit leaves the row untouched and fails with
// InsufficientFund.
func (r *GormUserRepository) DebitBalance(ctx context.Context, id kernel.UUID, amount decimal.Decimal) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount")
	}

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ? AND balance >= ?", id.Bytes(), amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		var balance string
		r.db.WithContext(ctx).
			Model(&UserDTO{}).
			Where("id = ?", id.Bytes()).
			Pluck("balance", &balance)
		return errs.NewInsufficientFundError(balance, amount.String())
	}

	return nil
}

// CreditBalance adds amount to the account's balance.
func (r *GormUserRepository) CreditBalance(ctx context.Context, id kernel.UUID, amount decimal.Decimal) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount")
	}

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}

	return nil
}
