package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetAccountQueryIsNotConstructed = errors.New(
	"GetAccountQuery must be created via NewGetAccountQuery constructor",
)

// AccountView is the authenticated user's own profile. The password hash
// never leaves the store.
type AccountView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// GetAccountQuery retrieves the calling user's own account.
type GetAccountQuery struct {
	userID kernel.UUID

	isConstructed bool
}

// NewGetAccountQuery creates a query for the caller's profile.
func NewGetAccountQuery(userID kernel.UUID) (GetAccountQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetAccountQuery{}, err
	}
	return GetAccountQuery{userID: userID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAccountQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetAccountQueryIsNotConstructed
	}
	return nil
}

// GetAccountQueryHandler reads the caller's profile including the current
// balance.
type GetAccountQueryHandler struct {
	db *gorm.DB
}

// NewGetAccountQueryHandler creates a handler for profile reads.
// Requires a GORM database connection for query execution.
func NewGetAccountQueryHandler(db *gorm.DB) GetAccountQueryHandler {
	return GetAccountQueryHandler{db: db}
}

// Handle executes the profile query.
func (h GetAccountQueryHandler) Handle(ctx context.Context, query GetAccountQuery) (AccountView, error) {
	if err := query.Validate(); err != nil {
		return AccountView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			role,
			balance,
			created_at
		FROM users
		WHERE id = ?
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return AccountView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return AccountView{}, err
		}
		return AccountView{}, errs.NewObjectNotFoundError("user", query.userID)
	}

	var (
		id        uuid.UUID
		name      string
		email     string
		role      string
		balance   decimal.Decimal
		createdAt time.Time
	)
	if err = rows.Scan(&id, &name, &email, &role, &balance, &createdAt); err != nil {
		return AccountView{}, err
	}

	return AccountView{
		ID:        id.String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Balance:   balance.String(),
		CreatedAt: createdAt,
	}, nil
}
