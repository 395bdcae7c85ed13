package domain

import (
	"errors"
	"time"
)

// PlanTier is the subscription level gating per-resource quotas.
type PlanTier string

const (
	PlanFree       PlanTier = "free"
	PlanPro        PlanTier = "pro"
	PlanEnterprise PlanTier = "enterprise"
)

// Valid reports whether p is one of the known tiers.
func (p PlanTier) Valid() bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// PlanAction names a quota-gated create operation.
type PlanAction string

const (
	ActionCreateExpense PlanAction = "create_expense"
	ActionCreateOrder   PlanAction = "create_order"
	ActionCreateRecipe  PlanAction = "create_recipe"
)

// Unlimited marks a ceiling with no enforcement.
const Unlimited = -1

// PlanLimits holds the per-entity count ceilings of a tier.
type PlanLimits struct {
	Expenses int
	Orders   int
	Recipes  int
}

var planLimits = map[PlanTier]PlanLimits{
	PlanFree:       {Expenses: 100, Orders: 50, Recipes: 10},
	PlanPro:        {Expenses: 1000, Orders: 500, Recipes: 100},
	PlanEnterprise: {Expenses: Unlimited, Orders: Unlimited, Recipes: Unlimited},
}

// Limits returns the ceilings for p. Unknown tiers get the free limits.
func (p PlanTier) Limits() PlanLimits {
	if l, ok := planLimits[p]; ok {
		return l
	}
	return planLimits[PlanFree]
}

// Ceiling returns the count ceiling for action, or Unlimited for actions
// that are not quota-gated.
func (l PlanLimits) Ceiling(action PlanAction) int {
	switch action {
	case ActionCreateExpense:
		return l.Expenses
	case ActionCreateOrder:
		return l.Orders
	case ActionCreateRecipe:
		return l.Recipes
	}
	return Unlimited
}

var ErrUserNotFound = errors.New("user profile not found")

// Preferences are per-user UI/locale settings.
type Preferences struct {
	Language      string `json:"language" bson:"language"`
	Timezone      string `json:"timezone" bson:"timezone"`
	Notifications bool   `json:"notifications" bson:"notifications"`
}

// DefaultPreferences returns the preferences applied to new profiles.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:      "pt-BR",
		Timezone:      "America/Sao_Paulo",
		Notifications: true,
	}
}

// UserProfile is the root document of a user's namespace. Every other
// entity belongs to exactly one UID.
type UserProfile struct {
	UID            string      `json:"uid" bson:"_id"`
	Email          string      `json:"email" bson:"email"`
	DisplayName    string      `json:"display_name" bson:"display_name"`
	PhotoURL       string      `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	Plan           PlanTier    `json:"plan" bson:"plan"`
	Preferences    Preferences `json:"preferences" bson:"preferences"`
	SubscriptionID string      `json:"subscription_id,omitempty" bson:"subscription_id,omitempty"`
	CustomerID     string      `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
	LastLogin      time.Time   `json:"last_login" bson:"last_login"`
	UpdatedAt      time.Time   `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
