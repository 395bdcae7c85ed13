package domain

import (
	"errors"
	"time"
)

var ErrInventoryItemNotFound = errors.New("inventory item not found")

// InventoryItem tracks stock of a raw material (e.g. flour in kg).
type InventoryItem struct {
	ID                string    `json:"id" bson:"_id"`
	UserID            string    `json:"user_id" bson:"user_id"`
	Name              string    `json:"name" bson:"name"`
	Quantity          float64   `json:"quantity" bson:"quantity"`
	Unit              string    `json:"unit" bson:"unit"`
	LowStockThreshold float64   `json:"low_stock_threshold" bson:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

// IsLowStock reports whether the item is at or below its alert threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
