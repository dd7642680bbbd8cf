// Package queries contains read-only operations that project stored state
// into transport-facing views. Handlers read the database directly instead
// of going through aggregates, keeping the read side of the CQRS split
// independent of the write-side repositories.
package queries

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusEntryView is one row of an order's append-only status history.
type StatusEntryView struct {
	Type string    `json:"type"`
	Date time.Time `json:"date"`
}

// ProductLineView is one ordered product. Quantity is decimal-string encoded
// because it is arbitrary precision.
type ProductLineView struct {
	ID       string `json:"id"`
	Quantity string `json:"quantity"`
}

// OrderView is the stored order projected for transport. The full view
// carries line items; delivery-facing projections leave Products empty.
type OrderView struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	MerchantID string            `json:"merchant_id"`
	CourierID  *string           `json:"courier_id"`
	Price      string            `json:"price"`
	Status     []StatusEntryView `json:"status"`
	Products   []ProductLineView `json:"products,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

const orderViewColumns = `
	id,
	user_id,
	merchant_id,
	courier_id,
	price,
	status_history,
	products,
	created_at,
	updated_at
`

// scanOrderView reads one row produced by a SELECT over orderViewColumns.
// withProducts controls whether line items make it into the view; the
// delivery projection deliberately drops them.
func scanOrderView(rows *sql.Rows, withProducts bool) (OrderView, error) {
	var (
		id         uuid.UUID
		userID     uuid.UUID
		merchantID uuid.UUID
		courierID  uuid.NullUUID
		price      decimal.Decimal
		statusRaw  []byte
		productRaw []byte
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := rows.Scan(
		&id,
		&userID,
		&merchantID,
		&courierID,
		&price,
		&statusRaw,
		&productRaw,
		&createdAt,
		&updatedAt,
	); err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:         id.String(),
		UserID:     userID.String(),
		MerchantID: merchantID.String(),
		Price:      price.String(),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
	if courierID.Valid {
		s := courierID.UUID.String()
		view.CourierID = &s
	}

	if err := json.Unmarshal(statusRaw, &view.Status); err != nil {
		return OrderView{}, err
	}
	if withProducts {
		if err := json.Unmarshal(productRaw, &view.Products); err != nil {
			return OrderView{}, err
		}
	}

	return view, nil
}
