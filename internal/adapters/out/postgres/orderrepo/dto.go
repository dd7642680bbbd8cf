// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Orders are stored as one row per aggregate: line items
// and the status history live in jsonb columns because they are immutable or
// append-only and always loaded together with the order, while the current
// status is denormalized into its own column so the delivery board can query
// unclaimed orders without unpacking json.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Version backs the optimistic write condition on updates.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;index"`
	MerchantID    uuid.UUID       `gorm:"type:uuid;index"`
	CourierID     *uuid.UUID      `gorm:"type:uuid;index"`
	Price         decimal.Decimal `gorm:"type:numeric"`
	CurrentStatus string          `gorm:"type:text;index"`
	StatusHistory StatusHistoryJSON
	Products      LineItemsJSON
	Version       int64 `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusEntryJSON is one status history element as stored in jsonb.
type StatusEntryJSON struct {
	Type string    `json:"type"`
	Date time.Time `json:"date"`
}

// StatusHistoryJSON stores the append-only status history as a jsonb array.
type StatusHistoryJSON []StatusEntryJSON

// Value implements driver.Valuer.
func (h StatusHistoryJSON) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan implements sql.Scanner.
func (h *StatusHistoryJSON) Scan(value any) error {
	return scanJSON(value, h)
}

// GormDataType tells GORM to create the column as jsonb.
func (StatusHistoryJSON) GormDataType() string {
	return "jsonb"
}

// LineItemJSON is one ordered product as stored in jsonb. Quantity is
// decimal-string encoded because it is arbitrary precision.
type LineItemJSON struct {
	ID       uuid.UUID `json:"id"`
	Quantity string    `json:"quantity"`
}

// LineItemsJSON stores the immutable line items as a jsonb array.
type LineItemsJSON []LineItemJSON

// Value implements driver.Valuer.
func (l LineItemsJSON) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *LineItemsJSON) Scan(value any) error {
	return scanJSON(value, l)
}

// GormDataType tells GORM to create the column as jsonb.
func (LineItemsJSON) GormDataType() string {
	return "jsonb"
}

func scanJSON(value, dest any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	entries := aggregate.History().Entries()
	history := make(StatusHistoryJSON, 0, len(entries))
	for _, entry := range entries {
		history = append(history, StatusEntryJSON{
			Type: string(entry.Type),
			Date: entry.Date,
		})
	}

	lineItems := aggregate.LineItems()
	products := make(LineItemsJSON, 0, len(lineItems))
	for _, item := range lineItems {
		products = append(products, LineItemJSON{
			ID:       item.ProductID().Bytes(),
			Quantity: item.Quantity().String(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		UserID:        aggregate.BuyerID().Bytes(),
		MerchantID:    aggregate.MerchantID().Bytes(),
		CourierID:     courierID,
		Price:         aggregate.Price(),
		CurrentStatus: string(aggregate.CurrentStatus()),
		StatusHistory: history,
		Products:      products,
		Version:       int64(aggregate.Version()),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	entries := make([]order.StatusEntry, 0, len(dto.StatusHistory))
	for _, entry := range dto.StatusHistory {
		status, statusErr := order.ParseStatus(entry.Type)
		if statusErr != nil {
			return nil, statusErr
		}
		entries = append(entries, order.StatusEntry{Type: status, Date: entry.Date})
	}
	history, err := order.RestoreStatusHistory(entries)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Products))
	for _, line := range dto.Products {
		productID, lineErr := kernel.UUIDFromBytes(line.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		quantity, lineErr := kernel.QuantityFromString(line.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		item, lineErr := order.NewLineItem(productID, quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, buyerID, merchantID, courierID,
		dto.Price, items, history,
		int(dto.Version), dto.CreatedAt, dto.UpdatedAt,
	)
}
