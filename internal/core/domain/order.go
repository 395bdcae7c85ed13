package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a customer order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

var ErrOrderNotFound = errors.New("order not found")

// Order is a customer order for confectionery products.
type Order struct {
	ID           string      `json:"id" bson:"_id"`
	UserID       string      `json:"user_id" bson:"user_id"`
	Customer     string      `json:"customer" bson:"customer"`
	Products     string      `json:"products" bson:"products"`
	DeliveryDate string      `json:"delivery_date" bson:"delivery_date"`
	Value        float64     `json:"value" bson:"value"`
	Status       OrderStatus `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
