package domain

import (
	"errors"
	"time"
)

var ErrExpenseNotFound = errors.New("expense not found")

// Expense is a single cost entry recorded by a user.
type Expense struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Date        string    `json:"date" bson:"date"`
	Type        string    `json:"type" bson:"type"`
	Value       float64   `json:"value" bson:"value"`
	Supplier    string    `json:"supplier" bson:"supplier"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
