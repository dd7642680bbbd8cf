// Package userrepo provides data transfer objects and mapping functions for
// account persistence, including the monetary balance the order workflow
// debits and credits.
package userrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserDTO represents the database structure for persisting accounts.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:text;not null"`
	Balance      decimal.Decimal `gorm:"type:numeric"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user entity to its database representation.
func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		Balance:      u.Balance(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a user entity.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		dto.Name, dto.Email, dto.PasswordHash,
		user.Role(dto.Role), dto.Balance,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
