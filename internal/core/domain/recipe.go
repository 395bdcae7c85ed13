package domain

import (
	"errors"
	"time"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// Ingredient is one line of a recipe.
type Ingredient struct {
	Name     string  `json:"name" bson:"name"`
	Quantity float64 `json:"quantity" bson:"quantity"`
	Unit     string  `json:"unit" bson:"unit"`
}

// Recipe is a product recipe owned by a user.
type Recipe struct {
	ID          string       `json:"id" bson:"_id"`
	UserID      string       `json:"user_id" bson:"user_id"`
	Name        string       `json:"name" bson:"name"`
	Ingredients []Ingredient `json:"ingredients" bson:"ingredients"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}
