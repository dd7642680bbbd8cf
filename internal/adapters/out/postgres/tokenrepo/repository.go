// Package tokenrepo persists refresh tokens by their jti so the auth flow
// can revoke and rotate them individually.
package tokenrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenDTO represents the database structure for persisting refresh
// tokens.
type RefreshTokenDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for refresh tokens.
func (RefreshTokenDTO) TableName() string {
	return "refresh_tokens"
}

// GormTokenRepository implements TokenRepository using GORM.
type GormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a new GORM token repository.
func NewGormTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

// Add saves a newly issued refresh token.
func (r *GormTokenRepository) Add(ctx context.Context, token auth.RefreshToken) error {
	if err := errors.Join(token.ID.Validate(), token.UserID.Validate()); err != nil {
		return err
	}

	dto := RefreshTokenDTO{
		ID:        token.ID.Bytes(),
		UserID:    token.UserID.Bytes(),
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a refresh token by its jti.
func (r *GormTokenRepository) Get(ctx context.Context, id kernel.UUID) (auth.RefreshToken, error) {
	if err := id.Validate(); err != nil {
		return auth.RefreshToken{}, err
	}

	var dto RefreshTokenDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.RefreshToken{}, errs.NewObjectNotFoundError("refresh token", id.String())
		}
		return auth.RefreshToken{}, pgerr.Translate(err)
	}

	tokenID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return auth.RefreshToken{}, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return auth.RefreshToken{}, err
	}

	return auth.RefreshToken{
		ID:        tokenID,
		UserID:    userID,
		ExpiresAt: dto.ExpiresAt,
		CreatedAt: dto.CreatedAt,
	}, nil
}

// Delete revokes a refresh token.
func (r *GormTokenRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RefreshTokenDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("refresh token", id.String())
	}

	return nil
}

// DeleteExpired removes every token whose expiry is at or before now.
func (r *GormTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&RefreshTokenDTO{}, "expires_at <= ?", now)
	if result.Error != nil {
		return 0, pgerr.Translate(result.Error)
	}

	return result.RowsAffected, nil
}
